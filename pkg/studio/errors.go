package studio

import (
	"context"
	"errors"

	internalTypes "github.com/eshaffer321/studio-go/internal/types"
)

var (
	// ErrUnauthenticated is returned when the session is missing or could not be renewed
	ErrUnauthenticated = internalTypes.ErrUnauthenticated

	// ErrForbidden is returned when the user's role may not perform the call
	ErrForbidden = internalTypes.ErrForbidden

	// ErrRateLimited is returned once rate-limit retries are exhausted
	ErrRateLimited = internalTypes.ErrRateLimited

	// ErrNetworkUnavailable is returned when the API cannot be reached
	ErrNetworkUnavailable = internalTypes.ErrNetworkUnavailable

	// ErrServerError is returned for any other error status
	ErrServerError = internalTypes.ErrServerError

	// ErrMalformedResponse is returned when a response cannot be decoded
	ErrMalformedResponse = internalTypes.ErrMalformedResponse

	// ErrNoRefreshCredential is returned by a refresh when no credential was ever present
	ErrNoRefreshCredential = internalTypes.ErrNoRefreshCredential

	// ErrCredentialRejected is returned by a refresh when the credential is invalid or expired
	ErrCredentialRejected = internalTypes.ErrCredentialRejected
)

// Error represents an API error
type Error = internalTypes.Error

// FailureKind is the closed set of failures a UI reacts to
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureUnauthenticated
	FailureForbidden
	FailureRateLimited
	FailureNetworkUnavailable
	FailureServerError
	FailureMalformedResponse
	FailureCancelled
	FailureUnknown
)

// String returns a short name for the failure
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureUnauthenticated:
		return "unauthenticated"
	case FailureForbidden:
		return "forbidden"
	case FailureRateLimited:
		return "rate_limited"
	case FailureNetworkUnavailable:
		return "network_unavailable"
	case FailureServerError:
		return "server_error"
	case FailureMalformedResponse:
		return "malformed_response"
	case FailureCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by the client onto a FailureKind
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrNoRefreshCredential),
		errors.Is(err, ErrCredentialRejected):
		return FailureUnauthenticated
	case errors.Is(err, ErrForbidden):
		return FailureForbidden
	case errors.Is(err, ErrRateLimited):
		return FailureRateLimited
	case errors.Is(err, ErrNetworkUnavailable):
		return FailureNetworkUnavailable
	case errors.Is(err, ErrServerError):
		return FailureServerError
	case errors.Is(err, ErrMalformedResponse):
		return FailureMalformedResponse
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return FailureCancelled
	}
	return FailureUnknown
}

// StatusCode returns the HTTP status behind err, or 0
func StatusCode(err error) int {
	return internalTypes.StatusCode(err)
}

// IsAuthError checks if error is authentication related
func IsAuthError(err error) bool {
	return Classify(err) == FailureUnauthenticated
}

// IsRetryable reports whether trying again later may succeed
func IsRetryable(err error) bool {
	switch Classify(err) {
	case FailureRateLimited, FailureNetworkUnavailable:
		return true
	case FailureServerError:
		return StatusCode(err) >= 500
	}
	return false
}
