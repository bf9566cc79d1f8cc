package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/eshaffer321/studio-go/internal/types"
	pkgerrors "github.com/pkg/errors"
)

// Doer issues a single call without any session recovery
type Doer interface {
	Do(ctx context.Context, call *types.Call, result interface{}) error
}

// RegisterParams is the sign-up payload
type RegisterParams struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Pin   string `json:"pin"`
	Email string `json:"email,omitempty"`
}

// userResponse is the envelope returned by the identity endpoints
type userResponse struct {
	User *types.User `json:"user"`
}

// Service handles the identity lifecycle endpoints. None of its calls go
// through session recovery.
type Service struct {
	doer   Doer
	logger types.Logger
}

// NewService creates a new auth service
func NewService(doer Doer, logger types.Logger) *Service {
	return &Service{
		doer:   doer,
		logger: logger,
	}
}

// Login exchanges phone and PIN for a session cookie pair
func (s *Service) Login(ctx context.Context, phone, pin string) (*types.User, error) {
	if s.logger != nil {
		s.logger.Debug("Login request", "phone", maskPhone(phone))
	}

	body := map[string]string{
		"phone": phone,
		"pin":   pin,
	}

	user, err := s.userCall(ctx, types.NewCall(http.MethodPost, types.LoginPath, body))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "login failed")
	}

	if s.logger != nil {
		s.logger.Info("Login successful", "user_id", user.ID, "role", user.Role.String())
	}

	return user, nil
}

// Register creates an account and signs it in
func (s *Service) Register(ctx context.Context, params *RegisterParams) (*types.User, error) {
	if params == nil {
		return nil, pkgerrors.New("register params are required")
	}

	user, err := s.userCall(ctx, types.NewCall(http.MethodPost, types.RegisterPath, params))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "register failed")
	}

	if s.logger != nil {
		s.logger.Info("Registration successful", "user_id", user.ID)
	}

	return user, nil
}

// Logout ends the server-side session
func (s *Service) Logout(ctx context.Context) error {
	if err := s.doer.Do(ctx, types.NewCall(http.MethodPost, types.LogoutPath, nil), nil); err != nil {
		return pkgerrors.Wrap(err, "logout failed")
	}

	if s.logger != nil {
		s.logger.Info("Logged out")
	}

	return nil
}

// Refresh renews the session from the refresh cookie. Failures are
// classified with ClassifyRefreshError.
func (s *Service) Refresh(ctx context.Context) error {
	err := s.doer.Do(ctx, types.NewCall(http.MethodPost, types.RefreshPath, nil), nil)
	if err == nil {
		if s.logger != nil {
			s.logger.Debug("Session refreshed")
		}
		return nil
	}

	err = ClassifyRefreshError(err)
	if s.logger != nil {
		s.logger.Warn("Session refresh failed", "error", err)
	}
	return err
}

func (s *Service) userCall(ctx context.Context, call *types.Call) (*types.User, error) {
	var resp userResponse
	if err := s.doer.Do(ctx, call, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &types.Error{
			Code:    "MALFORMED_RESPONSE",
			Message: "no user in " + call.Path + " response",
			Err:     types.ErrMalformedResponse,
		}
	}
	return resp.User, nil
}

// missingCredentialCodes are server codes meaning no refresh cookie was sent
var missingCredentialCodes = map[string]bool{
	"NO_REFRESH_TOKEN":      true,
	"REFRESH_TOKEN_MISSING": true,
	"MISSING_REFRESH_TOKEN": true,
}

// ClassifyRefreshError tags a refresh failure with ErrNoRefreshCredential or
// ErrCredentialRejected. Rate limiting, network and server failures are
// returned unchanged.
func ClassifyRefreshError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *types.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case errors.Is(err, types.ErrRateLimited),
		errors.Is(err, types.ErrNetworkUnavailable),
		errors.Is(err, types.ErrNoRefreshCredential),
		errors.Is(err, types.ErrCredentialRejected):
		return err
	case apiErr.StatusCode == http.StatusBadRequest || reportsMissingCredential(apiErr):
		return &types.Error{
			Code:       "NO_REFRESH_CREDENTIAL",
			Message:    apiErr.Message,
			StatusCode: apiErr.StatusCode,
			RequestID:  apiErr.RequestID,
			Err:        types.ErrNoRefreshCredential,
		}
	case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
		return &types.Error{
			Code:       "CREDENTIAL_REJECTED",
			Message:    apiErr.Message,
			StatusCode: apiErr.StatusCode,
			RequestID:  apiErr.RequestID,
			Err:        types.ErrCredentialRejected,
		}
	}
	return err
}

// IsUnauthenticatedRefresh reports whether a classified refresh error still
// counts as an authentication failure
func IsUnauthenticatedRefresh(err error) bool {
	return errors.Is(err, types.ErrNoRefreshCredential) || errors.Is(err, types.ErrCredentialRejected)
}

func reportsMissingCredential(apiErr *types.Error) bool {
	if apiErr.StatusCode != http.StatusUnauthorized {
		return false
	}
	if code, ok := apiErr.Details["code"].(string); ok && missingCredentialCodes[strings.ToUpper(code)] {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "no refresh token") ||
		strings.Contains(msg, "refresh token missing") ||
		strings.Contains(msg, "refresh token not provided")
}

// maskPhone keeps the last three digits for logs
func maskPhone(phone string) string {
	if len(phone) <= 3 {
		return "***"
	}
	return strings.Repeat("*", len(phone)-3) + phone[len(phone)-3:]
}
