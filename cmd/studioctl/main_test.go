package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eshaffer321/studio-go/pkg/studio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) *studio.Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"user": {"id": "u-2", "name": "Maya", "phone": "0539876543", "role": "trainer"}}`)
	})
	mux.HandleFunc("/schedules", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": "s-1", "date": "2025-09-01", "startTime": "07:00", "endTime": "08:00", "capacity": 10, "bookedCount": 3}]`)
	})
	mux.HandleFunc("/bookings/b-1/cancel", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		fmt.Fprint(w, `{"id": "b-1", "status": "cancelled"}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := studio.NewClient(&studio.ClientOptions{BaseURL: server.URL})
	require.NoError(t, err)
	require.NotNil(t, client.Auth.Bootstrap(context.Background()))

	return client
}

func TestRun(t *testing.T) {
	client := newClient(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"whoami"}, "Maya (trainer) 0539876543\n"},
		{[]string{"guard", "trainer"}, "render\n"},
		{[]string{"guard", "admin"}, "redirect_to_default_area /dashboard\n"},
		{[]string{"cancel", "b-1"}, "cancelled b-1\n"},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		require.NoError(t, run(context.Background(), client, tt.args, &out), tt.args)
		assert.Equal(t, tt.want, out.String(), tt.args)
	}
}

func TestRun_Schedules(t *testing.T) {
	client := newClient(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), client, []string{"schedules", "2025-09-01"}, &out))

	assert.Contains(t, out.String(), "s-1")
	assert.Contains(t, out.String(), "7/10")
}

func TestRun_Errors(t *testing.T) {
	client := newClient(t)

	for _, args := range [][]string{nil, {"guard", "owner"}, {"book"}, {"schedules", "soon"}, {"dance"}} {
		assert.Error(t, run(context.Background(), client, args, &bytes.Buffer{}), args)
	}
}
