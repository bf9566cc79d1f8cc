package transport

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryAfterBackoff(t *testing.T) {
	tooMany := func(retryAfter string) *http.Response {
		resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}
		if retryAfter != "" {
			resp.Header.Set("Retry-After", retryAfter)
		}
		return resp
	}

	tests := []struct {
		name    string
		attempt int
		resp    *http.Response
		want    time.Duration
	}{
		{"first retry doubles from one second", 0, tooMany(""), time.Second},
		{"second retry", 1, tooMany(""), 2 * time.Second},
		{"third retry", 2, tooMany(""), 4 * time.Second},
		{"capped at max", 10, tooMany(""), 30 * time.Second},
		{"server hint in seconds", 0, tooMany("7"), 7 * time.Second},
		{"server hint wins over exponential", 3, tooMany("2"), 2 * time.Second},
		{"server hint capped at max", 0, tooMany("3600"), 30 * time.Second},
		{"huge server hint capped at max", 0, tooMany("99999999999999999"), 30 * time.Second},
		{"past HTTP date retries immediately", 0, tooMany("Mon, 02 Jan 2006 15:04:05 GMT"), 0},
		{"garbage hint falls back", 1, tooMany("soon"), 2 * time.Second},
		{"no response", 1, nil, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RetryAfterBackoff(time.Second, 30*time.Second, tt.attempt, tt.resp)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRetryAfter_HTTPDate(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	wait, ok := parseRetryAfter(now.Add(5*time.Second).Format(http.TimeFormat), now)
	assert.True(t, ok)
	assert.Equal(t, 5*time.Second, wait)

	wait, ok = parseRetryAfter(now.Add(-time.Minute).Format(http.TimeFormat), now)
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), wait)

	wait, ok = parseRetryAfter("9223372036854775807", now)
	assert.True(t, ok)
	assert.Positive(t, wait)

	_, ok = parseRetryAfter("-3", now)
	assert.False(t, ok)
}

func TestRateLimitPolicy(t *testing.T) {
	ctx := context.Background()

	retry, err := RateLimitPolicy(ctx, &http.Response{StatusCode: http.StatusTooManyRequests}, nil)
	assert.True(t, retry)
	assert.NoError(t, err)

	retry, err = RateLimitPolicy(ctx, &http.Response{StatusCode: http.StatusServiceUnavailable}, nil)
	assert.False(t, retry)
	assert.NoError(t, err)

	retry, err = RateLimitPolicy(ctx, nil, errors.New("connection refused"))
	assert.False(t, retry)
	assert.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	retry, err = RateLimitPolicy(cancelled, &http.Response{StatusCode: http.StatusTooManyRequests}, nil)
	assert.False(t, retry)
	assert.ErrorIs(t, err, context.Canceled)
}
