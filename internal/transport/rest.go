package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/eshaffer321/studio-go/internal/types"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const (
	requestIDHeader = "X-Request-ID"
	contentType     = "application/json"
)

// RESTTransport issues JSON calls against the studio API. Session
// credentials travel as cookies in the HTTP client's jar.
type RESTTransport struct {
	baseURL     string
	httpClient  *http.Client
	retryClient *retryablehttp.Client
	headers     map[string]string
	logger      types.Logger
	hooks       *types.Hooks
}

// NewRESTTransport creates a new REST transport
func NewRESTTransport(opts *Options) *RESTTransport {
	if opts == nil {
		opts = &Options{}
	}

	// Set defaults
	if opts.BaseURL == "" {
		opts.BaseURL = types.DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		jar, _ := cookiejar.New(nil)
		opts.HTTPClient = &http.Client{
			Timeout: types.DefaultTimeout,
			Jar:     jar,
		}
	}

	retryConfig := opts.RetryConfig
	if retryConfig == nil {
		retryConfig = types.DefaultRetryConfig()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = opts.HTTPClient
	retryClient.RetryMax = retryConfig.MaxRetries
	retryClient.RetryWaitMin = retryConfig.RetryWait
	retryClient.RetryWaitMax = retryConfig.MaxWait
	retryClient.CheckRetry = RateLimitPolicy
	retryClient.Backoff = RetryAfterBackoff
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	if opts.Logger != nil {
		retryClient.Logger = &retryLogger{logger: opts.Logger}
	}

	// Set default headers
	headers := map[string]string{
		"Accept":     contentType,
		"User-Agent": types.UserAgent,
	}

	// Merge custom headers
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &RESTTransport{
		baseURL:     opts.BaseURL,
		httpClient:  opts.HTTPClient,
		retryClient: retryClient,
		headers:     headers,
		logger:      opts.Logger,
		hooks:       opts.Hooks,
	}
}

// Do performs a single attempt of call, including any rate-limit retries,
// and decodes a successful JSON response into result.
func (t *RESTTransport) Do(ctx context.Context, call *types.Call, result interface{}) error {
	payload, err := call.Payload()
	if err != nil {
		return errors.Wrap(err, "failed to marshal request")
	}

	call.SetRequestID(uuid.NewString())

	target := t.baseURL + call.Path
	if len(call.Query) > 0 {
		target += "?" + call.Query.Encode()
	}

	var body interface{}
	if len(payload) > 0 {
		body = payload
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, call.Method, target, body)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(requestIDHeader, call.RequestID())

	if t.hooks != nil && t.hooks.OnRequest != nil {
		t.hooks.OnRequest(ctx, req.Request)
	}

	if t.logger != nil {
		t.logger.Debug("API request", "method", call.Method, "path", call.Path, "request_id", call.RequestID())
	}

	start := time.Now()
	resp, err := t.retryClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		err = t.networkError(ctx, call, err)
		if t.hooks != nil && t.hooks.OnError != nil {
			t.hooks.OnError(ctx, err)
		}
		return err
	}
	defer resp.Body.Close()

	if t.hooks != nil && t.hooks.OnResponse != nil {
		t.hooks.OnResponse(ctx, resp, duration)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &types.Error{
			Code:      "NETWORK_UNAVAILABLE",
			Message:   fmt.Sprintf("failed to read response: %v", err),
			RequestID: call.RequestID(),
			Err:       types.ErrNetworkUnavailable,
		}
	}

	if t.logger != nil {
		t.logger.Debug("API response", "path", call.Path, "status", resp.StatusCode, "duration", duration, "size", len(respBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := t.handleHTTPError(resp.StatusCode, respBody)
		err.RequestID = call.RequestID()
		return err
	}

	if result == nil || len(respBody) == 0 || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return &types.Error{
			Code:       "MALFORMED_RESPONSE",
			Message:    fmt.Sprintf("failed to decode %s response: %v", call, err),
			StatusCode: resp.StatusCode,
			RequestID:  call.RequestID(),
			Err:        types.ErrMalformedResponse,
		}
	}

	return nil
}

// networkError maps a transport failure. Context cancellation is returned as
// is so callers can match context.Canceled.
func (t *RESTTransport) networkError(ctx context.Context, call *types.Call, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Wrapf(ctxErr, "%s aborted", call)
	}
	if t.logger != nil {
		t.logger.Warn("API unreachable", "path", call.Path, "error", err)
	}
	return &types.Error{
		Code:      "NETWORK_UNAVAILABLE",
		Message:   fmt.Sprintf("%s: %v", call, err),
		RequestID: call.RequestID(),
		Err:       types.ErrNetworkUnavailable,
	}
}

// handleHTTPError maps a non-2xx status onto the failure taxonomy. A
// server-provided error code is kept in Details["code"].
func (t *RESTTransport) handleHTTPError(statusCode int, body []byte) *types.Error {
	// Try to parse error response
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}

	_ = json.Unmarshal(body, &errResp)

	msg := errResp.Message
	if msg == "" {
		msg = errResp.Error
	}

	apiErr := statusError(statusCode, msg)
	if errResp.Code != "" {
		apiErr.Details = map[string]interface{}{"code": errResp.Code}
	}
	return apiErr
}

func statusError(statusCode int, msg string) *types.Error {
	withDefault := func(def string) string {
		if msg != "" {
			return msg
		}
		return def
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return &types.Error{
			Code:       "UNAUTHENTICATED",
			Message:    withDefault("not authenticated"),
			StatusCode: statusCode,
			Err:        types.ErrUnauthenticated,
		}
	case http.StatusForbidden:
		return &types.Error{
			Code:       "FORBIDDEN",
			Message:    withDefault("forbidden"),
			StatusCode: statusCode,
			Err:        types.ErrForbidden,
		}
	case http.StatusTooManyRequests:
		return &types.Error{
			Code:       "RATE_LIMITED",
			Message:    withDefault("too many requests"),
			StatusCode: statusCode,
			Err:        types.ErrRateLimited,
		}
	case http.StatusBadRequest:
		return &types.Error{
			Code:       "BAD_REQUEST",
			Message:    withDefault("bad request"),
			StatusCode: statusCode,
			Err:        types.ErrServerError,
		}
	case http.StatusNotFound:
		return &types.Error{
			Code:       "NOT_FOUND",
			Message:    withDefault("resource not found"),
			StatusCode: statusCode,
			Err:        types.ErrServerError,
		}
	default:
		if statusCode >= 500 {
			// Create base message with status code and description
			baseMsg := fmt.Sprintf("server error: %d", statusCode)
			if desc := httpStatusDescription(statusCode); desc != "" {
				baseMsg = fmt.Sprintf("server error: %d (%s)", statusCode, desc)
			}

			if msg != "" {
				baseMsg = fmt.Sprintf("%s: %s", baseMsg, msg)
			}

			return &types.Error{
				Code:       "SERVER_ERROR",
				Message:    baseMsg,
				StatusCode: statusCode,
				Err:        types.ErrServerError,
			}
		}
		return &types.Error{
			Code:       "HTTP_ERROR",
			Message:    withDefault(fmt.Sprintf("HTTP error: %d", statusCode)),
			StatusCode: statusCode,
			Err:        types.ErrServerError,
		}
	}
}

// httpStatusDescription returns a human-readable description for common
// upstream failures, including the Cloudflare 52x range.
func httpStatusDescription(statusCode int) string {
	descriptions := map[int]string{
		500: "Internal Server Error",
		501: "Not Implemented",
		502: "Bad Gateway",
		503: "Service Unavailable",
		504: "Gateway Timeout",
		520: "Web Server Error",
		521: "Web Server Is Down",
		522: "Connection Timed Out",
		523: "Origin Is Unreachable",
		524: "A Timeout Occurred",
		525: "SSL Handshake Failed",
		526: "Invalid SSL Certificate",
	}
	return descriptions[statusCode]
}

// Options for REST transport
type Options struct {
	BaseURL     string
	HTTPClient  *http.Client
	Headers     map[string]string
	RetryConfig *types.RetryConfig
	Logger      types.Logger
	Hooks       *types.Hooks
}

// retryLogger adapts our logger to retryablehttp
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
