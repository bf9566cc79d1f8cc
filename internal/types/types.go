package types

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Role is the closed set of studio roles. The zero value is "no role".
type Role uint8

const (
	RoleNone Role = iota
	RoleCustomer
	RoleAdmin
	RoleTrainer
)

// Roles lists every valid role
var Roles = []Role{RoleCustomer, RoleAdmin, RoleTrainer}

// String returns the wire name of the role
func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleAdmin:
		return "admin"
	case RoleTrainer:
		return "trainer"
	case RoleNone:
		return ""
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// Valid reports whether r is one of the studio roles
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin || r == RoleTrainer
}

// ParseRole parses a wire role name
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer":
		return RoleCustomer, nil
	case "admin":
		return RoleAdmin, nil
	case "trainer":
		return RoleTrainer, nil
	}
	return RoleNone, fmt.Errorf("unknown role %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", r)
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// User is the identity record of an authenticated session
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  Role   `json:"role"`
	Email string `json:"email,omitempty"`
}

// Session is the in-memory authentication state
type Session struct {
	User    *User
	Loading bool
}

// IsAuthenticated reports whether a user is present
func (s Session) IsAuthenticated() bool {
	return s.User != nil
}

// Call is one logical outbound API call. A Call is replayed at most once
// after a successful refresh, with the same body and request id.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}

	// Silent calls may refresh but never ask for navigation
	Silent bool

	requestID string
	payload   []byte
	encoded   bool
	refreshes int
}

// NewCall creates a call
func NewCall(method, path string, body interface{}) *Call {
	return &Call{Method: method, Path: path, Body: body}
}

// RequestID returns the id shared by every attempt of this call
func (c *Call) RequestID() string {
	return c.requestID
}

// SetRequestID assigns the request id once
func (c *Call) SetRequestID(id string) {
	if c.requestID == "" {
		c.requestID = id
	}
}

// Payload returns the JSON body, marshalling it on first use so that a replay
// sends identical bytes.
func (c *Call) Payload() ([]byte, error) {
	if c.encoded {
		return c.payload, nil
	}
	if c.Body != nil {
		data, err := json.Marshal(c.Body)
		if err != nil {
			return nil, err
		}
		c.payload = data
	}
	c.encoded = true
	return c.payload, nil
}

// Refreshes returns how many refresh cycles this call has gone through
func (c *Call) Refreshes() int {
	return c.refreshes
}

// MarkRefreshed records a refresh cycle
func (c *Call) MarkRefreshed() {
	c.refreshes++
}

// String renders "METHOD /path"
func (c *Call) String() string {
	return c.Method + " " + c.Path
}

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// RetryConfig configures rate-limit retry behavior
type RetryConfig struct {
	MaxRetries int           `json:"maxRetries"`
	RetryWait  time.Duration `json:"retryWait"`
	MaxWait    time.Duration `json:"maxWait"`
}

// DefaultRetryConfig returns the 1s doubling, three retry policy
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries: DefaultMaxRetries,
		RetryWait:  DefaultRetryWait,
		MaxWait:    DefaultMaxWait,
	}
}

// Hooks provides lifecycle hooks for requests
type Hooks struct {
	OnRequest  func(ctx context.Context, req *http.Request)
	OnResponse func(ctx context.Context, resp *http.Response, duration time.Duration)
	OnError    func(ctx context.Context, err error)
}
