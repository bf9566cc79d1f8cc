package studio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/eshaffer321/studio-go/internal/auth"
	"github.com/eshaffer321/studio-go/internal/gateway"
	"github.com/eshaffer321/studio-go/internal/refresh"
	"github.com/eshaffer321/studio-go/internal/session"
	"github.com/eshaffer321/studio-go/internal/transport"
	internalTypes "github.com/eshaffer321/studio-go/internal/types"
	"github.com/getsentry/sentry-go"
)

const (
	// DefaultBaseURL is the deployed studio API origin
	DefaultBaseURL = internalTypes.DefaultBaseURL

	// DevelopmentBaseURL is the local development proxy
	DevelopmentBaseURL = internalTypes.DevelopmentBaseURL

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = internalTypes.DefaultTimeout
)

// Client is the studio API client
type Client struct {
	// Service interfaces
	Auth       AuthService
	Users      UserService
	Trainers   TrainerService
	Services   CatalogService
	Schedules  ScheduleService
	Bookings   BookingService
	Reviews    ReviewService
	Attendance AttendanceService

	// Internal fields
	baseURL    string
	httpClient *http.Client
	transport  Transport
	gateway    *gateway.Gateway
	identity   *auth.Service
	store      *session.Store
	guard      *Guard
	options    *ClientOptions
}

// ClientOptions configures the client
type ClientOptions struct {
	// BaseURL overrides the default API base URL
	BaseURL string

	// HTTPClient allows using a custom HTTP client. It needs a cookie jar for
	// session cookies; one is added when missing.
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// LoginPath is where an unrecoverable auth failure navigates
	LoginPath string

	// DefaultPath is the authenticated landing area used by the guard
	DefaultPath string

	// Navigator applies navigation effects in the host application
	Navigator Navigator

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures rate-limit retries
	RetryConfig *internalTypes.RetryConfig

	// RateLimiter for client-side rate limiting
	RateLimiter RateLimiter

	// Hooks for observability
	Hooks *internalTypes.Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger = internalTypes.Logger

// RateLimiter interface for rate limiting
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// Navigator moves the host application to another view
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(path string)

// Navigate calls f(path)
func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// Transport issues a single API call
type Transport interface {
	Do(ctx context.Context, call *internalTypes.Call, result interface{}) error
}

// NewClient creates a new studio client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}

		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}

		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}

		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		if err := sentry.Init(sentryOpts); err != nil {
			// Log error but don't fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	// Set defaults
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if opts.HTTPClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		opts.HTTPClient.Jar = jar
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	trans := transport.NewRESTTransport(&transport.Options{
		BaseURL:     opts.BaseURL,
		HTTPClient:  opts.HTTPClient,
		RetryConfig: opts.RetryConfig,
		Logger:      opts.Logger,
		Hooks:       opts.Hooks,
	})

	c := newClient(opts, trans)
	c.baseURL = opts.BaseURL
	c.httpClient = opts.HTTPClient

	return c, nil
}

// newClient wires the session core and services around a transport
func newClient(opts *ClientOptions, trans Transport) *Client {
	if opts.LoginPath == "" {
		opts.LoginPath = internalTypes.DefaultLoginPath
	}
	if opts.DefaultPath == "" {
		opts.DefaultPath = internalTypes.DefaultAreaPath
	}

	identity := auth.NewService(trans, opts.Logger)
	store := session.NewStore()

	c := &Client{
		transport: trans,
		identity:  identity,
		store:     store,
		guard:     NewGuard(opts.LoginPath, opts.DefaultPath),
		options:   opts,
		gateway: gateway.New(gateway.Options{
			Doer:       trans,
			Refresher:  identity,
			State:      refresh.NewState(),
			LoginPath:  opts.LoginPath,
			Logger:     opts.Logger,
			OnRejected: store.Clear,
		}),
	}

	c.initServices()

	return c
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Auth = &authService{client: c}
	c.Users = &userService{resource: newResource[User](c, "/users", "user")}
	c.Trainers = &trainerService{resource: newResource[Trainer](c, "/trainers", "trainer")}
	c.Services = &catalogService{resource: newResource[GymService](c, "/services", "service")}
	c.Schedules = &scheduleService{resource: newResource[Schedule](c, "/schedules", "schedule")}
	c.Bookings = &bookingService{resource: newResource[Booking](c, "/bookings", "booking")}
	c.Reviews = &reviewService{resource: newResource[Review](c, "/reviews", "review")}
	c.Attendance = &attendanceService{resource: newResource[AttendanceRecord](c, "/attendance", "attendance record")}
}

// Session returns the current session snapshot
func (c *Client) Session() Session {
	return c.store.Snapshot()
}

// Subscribe streams session snapshots, see Guard.Watch
func (c *Client) Subscribe() (<-chan Session, func()) {
	return c.store.Subscribe()
}

// Guard returns the access guard configured for this client
func (c *Client) Guard() *Guard {
	return c.guard
}

// Authorize evaluates the guard against the current session
func (c *Client) Authorize(required Role) Decision {
	return c.guard.Authorize(c.store.Snapshot(), required)
}

// request sends call through the session gateway and applies any effect it
// returns
func (c *Client) request(ctx context.Context, call *internalTypes.Call, result interface{}) error {
	// Rate limiting
	if c.options.RateLimiter != nil {
		if err := c.options.RateLimiter.Wait(ctx); err != nil {
			captureException(ctx, err, nil)
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	start := time.Now()
	effect, err := c.gateway.Do(ctx, call, result)
	duration := time.Since(start)

	c.apply(ctx, effect)

	if err != nil && reportable(err) {
		captureException(ctx, err, func(scope *sentry.Scope) {
			scope.SetTag("api.method", call.Method)
			scope.SetTag("api.path", call.Path)
			scope.SetContext("api", map[string]interface{}{
				"request_id": call.RequestID(),
				"refreshes":  call.Refreshes(),
				"duration":   duration.String(),
			})
		})
	}

	return err
}

// apply performs a gateway effect. The session itself is dropped by the
// refresh that was rejected, before any caller sees the effect.
func (c *Client) apply(ctx context.Context, effect gateway.Effect) {
	if !effect.IsNavigate() {
		return
	}

	addBreadcrumb(ctx, &sentry.Breadcrumb{
		Category: "auth",
		Message:  "Session rejected, navigating to " + effect.Path,
		Level:    sentry.LevelInfo,
	})

	if c.options.Logger != nil {
		c.options.Logger.Info("Navigating after session loss", "path", effect.Path)
	}

	if c.options.Navigator != nil {
		c.options.Navigator.Navigate(effect.Path)
	}
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	// Flush Sentry events with a 2 second timeout
	sentry.Flush(2 * time.Second)
}

// reportable filters out failures that are ordinary session states
func reportable(err error) bool {
	return !errors.Is(err, ErrUnauthenticated) &&
		!errors.Is(err, context.Canceled)
}

func captureException(ctx context.Context, err error, configure func(scope *sentry.Scope)) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if configure != nil {
			configure(scope)
		}
		hub.CaptureException(err)
	})
}

func addBreadcrumb(ctx context.Context, crumb *sentry.Breadcrumb) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.AddBreadcrumb(crumb, nil)
}
