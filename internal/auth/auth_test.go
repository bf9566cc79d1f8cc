package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/eshaffer321/studio-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDoer is a mock implementation of the Doer interface
type MockDoer struct {
	mock.Mock
}

func (m *MockDoer) Do(ctx context.Context, call *types.Call, result interface{}) error {
	args := m.Called(ctx, call.Method+" "+call.Path, call.Body)

	// If mock provides result data, unmarshal it
	if args.Get(0) != nil && result != nil {
		if err := json.Unmarshal([]byte(args.Get(0).(string)), result); err != nil {
			return err
		}
	}

	return args.Error(1)
}

func TestService_Login(t *testing.T) {
	doer := new(MockDoer)
	service := NewService(doer, nil)

	doer.On("Do", mock.Anything, "POST /auth/login", map[string]string{"phone": "0211234567", "pin": "1234"}).
		Return(`{"user": {"id": "u-1", "name": "Lena", "phone": "0211234567", "role": "customer"}}`, nil)

	user, err := service.Login(context.Background(), "0211234567", "1234")

	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, types.RoleCustomer, user.Role)
	doer.AssertExpectations(t)
}

func TestService_Login_Rejected(t *testing.T) {
	doer := new(MockDoer)
	service := NewService(doer, nil)

	doer.On("Do", mock.Anything, "POST /auth/login", mock.Anything).
		Return(nil, &types.Error{Code: "UNAUTHENTICATED", Message: "wrong pin", StatusCode: 401, Err: types.ErrUnauthenticated})

	user, err := service.Login(context.Background(), "0211234567", "0000")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
	assert.Contains(t, err.Error(), "login failed")
}

func TestService_Register_MissingUser(t *testing.T) {
	doer := new(MockDoer)
	service := NewService(doer, nil)

	doer.On("Do", mock.Anything, "POST /auth/register", mock.Anything).Return(`{"ok": true}`, nil)

	_, err := service.Register(context.Background(), &RegisterParams{Name: "Ana", Phone: "0219999999", Pin: "4321"})

	assert.ErrorIs(t, err, types.ErrMalformedResponse)
}

func TestService_Logout(t *testing.T) {
	doer := new(MockDoer)
	service := NewService(doer, nil)

	doer.On("Do", mock.Anything, "POST /auth/logout", nil).Return(nil, nil)

	require.NoError(t, service.Logout(context.Background()))
	doer.AssertExpectations(t)
}

func TestService_Refresh_Classifies(t *testing.T) {
	doer := new(MockDoer)
	service := NewService(doer, nil)

	doer.On("Do", mock.Anything, "POST /auth/refresh", nil).
		Return(nil, &types.Error{Code: "UNAUTHENTICATED", Message: "invalid token", StatusCode: 401, Err: types.ErrUnauthenticated})

	err := service.Refresh(context.Background())

	assert.ErrorIs(t, err, types.ErrCredentialRejected)
	assert.True(t, IsUnauthenticatedRefresh(err))
}

func TestClassifyRefreshError(t *testing.T) {
	unauth := func(msg string, details map[string]interface{}) error {
		return &types.Error{Code: "UNAUTHENTICATED", Message: msg, StatusCode: 401, Details: details, Err: types.ErrUnauthenticated}
	}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "400 no refresh token",
			err:  &types.Error{Code: "BAD_REQUEST", Message: "no refresh token", StatusCode: 400, Err: types.ErrServerError},
			want: types.ErrNoRefreshCredential,
		},
		{
			name: "401 no refresh token message",
			err:  unauth("No refresh token provided", nil),
			want: types.ErrNoRefreshCredential,
		},
		{
			name: "401 missing code",
			err:  unauth("unauthorized", map[string]interface{}{"code": "refresh_token_missing"}),
			want: types.ErrNoRefreshCredential,
		},
		{
			name: "401 invalid token",
			err:  unauth("invalid token", nil),
			want: types.ErrCredentialRejected,
		},
		{
			name: "403 expired",
			err:  &types.Error{Code: "FORBIDDEN", Message: "refresh token expired", StatusCode: 403, Err: types.ErrForbidden},
			want: types.ErrCredentialRejected,
		},
		{
			name: "rate limited stays rate limited",
			err:  &types.Error{Code: "RATE_LIMITED", StatusCode: 429, Err: types.ErrRateLimited},
			want: types.ErrRateLimited,
		},
		{
			name: "network stays network",
			err:  &types.Error{Code: "NETWORK_UNAVAILABLE", Err: types.ErrNetworkUnavailable},
			want: types.ErrNetworkUnavailable,
		},
		{
			name: "server error stays server error",
			err:  &types.Error{Code: "SERVER_ERROR", StatusCode: 502, Err: types.ErrServerError},
			want: types.ErrServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyRefreshError(tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}

	plain := errors.New("boom")
	assert.Same(t, plain, ClassifyRefreshError(plain))
	assert.NoError(t, ClassifyRefreshError(nil))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "*******567", maskPhone("0211234567"))
	assert.Equal(t, "***", maskPhone("12"))
}
