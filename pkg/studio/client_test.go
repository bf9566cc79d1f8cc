package studio

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	internalTypes "github.com/eshaffer321/studio-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionCookie = "access_token"

// studioBackend is a minimal cookie-session backend. Requests carrying the
// current access cookie are authenticated; /auth/refresh answers with the
// configured status and body.
type studioBackend struct {
	mu            sync.Mutex
	token         string
	refreshStatus int
	refreshBody   string
	refreshDelay  time.Duration
	hits          map[string]int
}

func newStudioBackend() *studioBackend {
	return &studioBackend{
		token:         "fresh-1",
		refreshStatus: http.StatusOK,
		hits:          make(map[string]int),
	}
}

func (b *studioBackend) count(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[route]
}

func (b *studioBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path

	b.mu.Lock()
	b.hits[route]++
	token := b.token
	status, body, delay := b.refreshStatus, b.refreshBody, b.refreshDelay
	b.mu.Unlock()

	authed := false
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value == token {
		authed = true
	}

	w.Header().Set("Content-Type", "application/json")

	switch route {
	case "POST /auth/login":
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: token, Path: "/"})
		fmt.Fprint(w, `{"user": {"id": "u-1", "name": "Noa", "phone": "0521234567", "role": "customer"}}`)
		return
	case "POST /auth/logout":
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
		fmt.Fprint(w, `{"message": "logged out"}`)
		return
	case "POST /auth/refresh":
		time.Sleep(delay)
		if status != http.StatusOK {
			w.WriteHeader(status)
			fmt.Fprint(w, body)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: token, Path: "/"})
		fmt.Fprint(w, `{"user": {"id": "u-1", "name": "Noa", "phone": "0521234567", "role": "customer"}}`)
		return
	}

	if !authed {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Access token expired"}`)
		return
	}

	switch route {
	case "GET /auth/me", "GET /auth/profile":
		fmt.Fprint(w, `{"user": {"id": "u-1", "name": "Noa", "phone": "0521234567", "role": "customer"}}`)
	case "GET /bookings":
		fmt.Fprint(w, `[{"id": "b-1", "scheduleId": "s-1", "status": "confirmed"}, {"id": "b-2", "scheduleId": "s-2", "status": "pending"}]`)
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "not found"}`)
	}
}

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

func newTestClient(t *testing.T, backend *studioBackend) (*Client, *recordingNavigator) {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	nav := &recordingNavigator{}
	client, err := NewClient(&ClientOptions{
		BaseURL:   server.URL,
		Navigator: nav,
		RetryConfig: &internalTypes.RetryConfig{
			MaxRetries: 3,
			RetryWait:  time.Millisecond,
			MaxWait:    5 * time.Millisecond,
		},
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client, nav
}

func TestClient_ExpiredSessionIsRecovered(t *testing.T) {
	backend := newStudioBackend()
	client, nav := newTestClient(t, backend)

	bookings, err := client.Bookings.List(context.Background())

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "b-1", bookings[0].ID)
	assert.Equal(t, 2, backend.count("GET /bookings"))
	assert.Equal(t, 1, backend.count("POST /auth/refresh"))
	assert.Empty(t, nav.Paths())
}

func TestClient_MissingRefreshCredentialStaysPut(t *testing.T) {
	backend := newStudioBackend()
	backend.refreshStatus = http.StatusBadRequest
	backend.refreshBody = `{"message": "No refresh token provided"}`
	client, nav := newTestClient(t, backend)

	_, err := client.Bookings.List(context.Background())

	require.Error(t, err)
	assert.Equal(t, FailureUnauthenticated, Classify(err))
	assert.Equal(t, 1, backend.count("GET /bookings"))
	assert.Empty(t, nav.Paths())
}

func TestClient_RejectedRefreshNavigatesToLogin(t *testing.T) {
	backend := newStudioBackend()
	client, nav := newTestClient(t, backend)

	_, err := client.Auth.Login(context.Background(), "0521234567", "1234")
	require.NoError(t, err)
	require.True(t, client.Session().IsAuthenticated())

	// the server rotates its key: the cookie is stale and cannot be refreshed
	backend.mu.Lock()
	backend.token = "fresh-2"
	backend.refreshStatus = http.StatusUnauthorized
	backend.refreshBody = `{"message": "Invalid refresh token"}`
	backend.mu.Unlock()

	_, err = client.Bookings.List(context.Background())

	require.Error(t, err)
	assert.Equal(t, FailureUnauthenticated, Classify(err))
	assert.Equal(t, []string{"/login"}, nav.Paths())
	assert.False(t, client.Session().IsAuthenticated())
	assert.Equal(t, RedirectToLogin, client.Authorize(RoleCustomer).Kind)
}

func TestClient_RejectedRefreshClearsSessionAfterCallerGaveUp(t *testing.T) {
	backend := newStudioBackend()
	client, nav := newTestClient(t, backend)

	_, err := client.Auth.Login(context.Background(), "0521234567", "1234")
	require.NoError(t, err)

	backend.mu.Lock()
	backend.token = "fresh-2"
	backend.refreshStatus = http.StatusUnauthorized
	backend.refreshBody = `{"message": "Invalid refresh token"}`
	backend.refreshDelay = 200 * time.Millisecond
	backend.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Bookings.List(ctx)

	require.Error(t, err)
	assert.Equal(t, FailureCancelled, Classify(err))
	assert.Eventually(t, func() bool { return !client.Session().IsAuthenticated() }, time.Second, 5*time.Millisecond)
	assert.Empty(t, nav.Paths())
}

func TestClient_ConcurrentExpiryRefreshesOnce(t *testing.T) {
	backend := newStudioBackend()
	backend.refreshDelay = 100 * time.Millisecond
	client, nav := newTestClient(t, backend)

	const callers = 5
	var wg sync.WaitGroup
	var failures atomic.Int32
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Bookings.List(context.Background()); err != nil {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, failures.Load())
	assert.Equal(t, 1, backend.count("POST /auth/refresh"))
	assert.Equal(t, 2*callers, backend.count("GET /bookings"))
	assert.Empty(t, nav.Paths())
}

func TestClient_ConcurrentRejectionNavigatesOnce(t *testing.T) {
	backend := newStudioBackend()
	backend.refreshStatus = http.StatusUnauthorized
	backend.refreshBody = `{"message": "Refresh token expired"}`
	backend.refreshDelay = 100 * time.Millisecond
	client, nav := newTestClient(t, backend)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Bookings.List(context.Background())
			assert.Equal(t, FailureUnauthenticated, Classify(err))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, backend.count("POST /auth/refresh"))
	assert.Equal(t, []string{"/login"}, nav.Paths())
}

func TestClient_BootstrapIsSilent(t *testing.T) {
	backend := newStudioBackend()
	backend.refreshStatus = http.StatusUnauthorized
	backend.refreshBody = `{"message": "Invalid refresh token"}`
	client, nav := newTestClient(t, backend)

	assert.Equal(t, ShowLoadingPlaceholder, client.Authorize(RoleCustomer).Kind)

	user := client.Auth.Bootstrap(context.Background())

	assert.Nil(t, user)
	assert.Empty(t, nav.Paths())
	assert.False(t, client.Session().Loading)
	assert.Equal(t, 1, backend.count("POST /auth/refresh"))
	assert.Equal(t, RedirectToLogin, client.Authorize(RoleCustomer).Kind)
}

func TestClient_BootstrapRestoresSession(t *testing.T) {
	backend := newStudioBackend()
	client, _ := newTestClient(t, backend)

	user := client.Auth.Bootstrap(context.Background())

	require.NotNil(t, user)
	assert.Equal(t, RoleCustomer, user.Role)
	assert.Equal(t, Render, client.Authorize(RoleCustomer).Kind)
	assert.Equal(t, RedirectToDefaultArea, client.Authorize(RoleAdmin).Kind)
	assert.Equal(t, "/dashboard", client.Authorize(RoleAdmin).Path)
}

func TestClient_LoginIsNeverRecovered(t *testing.T) {
	backend := newStudioBackend()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backend.mu.Lock()
		backend.hits[r.Method+" "+r.URL.Path]++
		backend.mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Invalid phone or PIN"}`)
	}))
	defer server.Close()

	nav := &recordingNavigator{}
	client, err := NewClient(&ClientOptions{BaseURL: server.URL, Navigator: nav})
	require.NoError(t, err)

	_, err = client.Auth.Login(context.Background(), "0521234567", "0000")

	require.Error(t, err)
	assert.Equal(t, FailureUnauthenticated, Classify(err))
	assert.Equal(t, 1, backend.count("POST /auth/login"))
	assert.Zero(t, backend.count("POST /auth/refresh"))
	assert.Empty(t, nav.Paths())
	assert.False(t, client.Session().IsAuthenticated())
}

func TestClient_LogoutClearsSession(t *testing.T) {
	backend := newStudioBackend()
	client, _ := newTestClient(t, backend)

	_, err := client.Auth.Login(context.Background(), "0521234567", "1234")
	require.NoError(t, err)

	sessions, cancel := client.Subscribe()
	defer cancel()
	<-sessions

	require.NoError(t, client.Auth.Logout(context.Background()))

	select {
	case s := <-sessions:
		assert.False(t, s.IsAuthenticated())
	case <-time.After(time.Second):
		t.Fatal("no session update after logout")
	}
	assert.Equal(t, RedirectToLogin, client.Authorize(NoRoleRequired).Kind)
}

func TestClient_NavigatorFunc(t *testing.T) {
	var got string
	var nav Navigator = NavigatorFunc(func(path string) { got = path })

	nav.Navigate("/login")

	assert.Equal(t, "/login", got)
}
