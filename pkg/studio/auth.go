package studio

import (
	"context"
	"net/http"

	internalTypes "github.com/eshaffer321/studio-go/internal/types"
	"github.com/pkg/errors"
)

// authService implements the AuthService interface
type authService struct {
	client *Client
}

type userEnvelope struct {
	User *User `json:"user"`
}

// Bootstrap performs the silent "who am I" check
func (a *authService) Bootstrap(ctx context.Context) *User {
	a.client.store.BeginBootstrap()

	call := internalTypes.NewCall(http.MethodGet, internalTypes.MePath, nil)
	call.Silent = true

	var resp userEnvelope
	if err := a.client.request(ctx, call, &resp); err != nil || resp.User == nil {
		if a.client.options.Logger != nil {
			a.client.options.Logger.Debug("Bootstrap found no session", "reason", Classify(err).String())
		}
		a.client.store.FinishBootstrap(nil)
		return nil
	}

	a.client.store.FinishBootstrap(resp.User)
	return resp.User
}

// Profile fetches the signed-in user
func (a *authService) Profile(ctx context.Context) (*User, error) {
	var resp userEnvelope
	if err := a.client.request(ctx, internalTypes.NewCall(http.MethodGet, internalTypes.ProfilePath, nil), &resp); err != nil {
		return nil, errors.Wrap(err, "failed to get profile")
	}
	if resp.User == nil {
		return nil, &Error{Code: "MALFORMED_RESPONSE", Message: "no user in profile response", Err: ErrMalformedResponse}
	}

	a.client.store.SetUser(resp.User)
	return resp.User, nil
}

// Login performs authentication
func (a *authService) Login(ctx context.Context, phone, pin string) (*User, error) {
	user, err := a.client.identity.Login(ctx, phone, pin)
	if err != nil {
		return nil, err
	}

	a.client.store.SetUser(user)
	return user, nil
}

// Register creates an account and signs it in
func (a *authService) Register(ctx context.Context, params *RegisterParams) (*User, error) {
	user, err := a.client.identity.Register(ctx, params)
	if err != nil {
		return nil, err
	}

	a.client.store.SetUser(user)
	return user, nil
}

// Logout ends the session
func (a *authService) Logout(ctx context.Context) error {
	err := a.client.identity.Logout(ctx)
	a.client.store.Clear()
	return err
}
