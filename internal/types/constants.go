package types

import (
	"errors"
	"time"
)

const (
	// DefaultBaseURL is the deployed studio API origin
	DefaultBaseURL = "https://api.studiodesk.app"

	// DevelopmentBaseURL is the local development proxy path
	DevelopmentBaseURL = "http://localhost:5173/api"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string
	UserAgent = "studio-go/1.0.0"

	// DefaultLoginPath is where an unrecoverable auth failure sends the user
	DefaultLoginPath = "/login"

	// DefaultAreaPath is the authenticated landing area
	DefaultAreaPath = "/dashboard"

	// DefaultMaxRetries bounds rate-limit retries (1 + DefaultMaxRetries attempts)
	DefaultMaxRetries = 3

	// DefaultRetryWait is the first rate-limit backoff step; it doubles per attempt
	DefaultRetryWait = 1 * time.Second

	// DefaultMaxWait caps a single rate-limit backoff
	DefaultMaxWait = 30 * time.Second
)

// Auth endpoints
const (
	LoginPath    = "/auth/login"
	RegisterPath = "/auth/register"
	LogoutPath   = "/auth/logout"
	RefreshPath  = "/auth/refresh"
	MePath       = "/auth/me"
	ProfilePath  = "/auth/profile"
)

// Failure taxonomy
var (
	// ErrUnauthenticated is returned when the credential is missing or no longer valid
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when the user lacks permission for the resource
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = errors.New("rate limited")

	// ErrNetworkUnavailable is returned when the API could not be reached
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrServerError is returned when the API answers with a non-auth error status
	ErrServerError = errors.New("server error")

	// ErrMalformedResponse is returned when a response body cannot be decoded
	ErrMalformedResponse = errors.New("malformed response")
)

// Refresh failure reasons
var (
	// ErrNoRefreshCredential means no refresh cookie was ever present
	ErrNoRefreshCredential = errors.New("no refresh credential")

	// ErrCredentialRejected means the refresh credential is invalid or expired
	ErrCredentialRejected = errors.New("refresh credential rejected")
)
