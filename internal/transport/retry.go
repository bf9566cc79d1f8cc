package transport

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RateLimitPolicy retries only "too many requests". Network failures and
// every other status are left to the caller.
func RateLimitPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil || resp == nil {
		return false, nil
	}
	return resp.StatusCode == http.StatusTooManyRequests, nil
}

// RetryAfterBackoff waits for the server's Retry-After hint when present,
// otherwise min doubled per attempt. Either way the wait is capped at max.
func RetryAfterBackoff(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		if wait, ok := parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()); ok {
			if wait > max {
				return max
			}
			return wait
		}
	}

	wait := min
	for i := 0; i < attemptNum; i++ {
		wait *= 2
		if wait >= max || wait <= 0 {
			return max
		}
	}
	if wait > max {
		return max
	}
	return wait
}

// maxRetryAfterSeconds is the largest hint that fits in a time.Duration
const maxRetryAfterSeconds = int64(math.MaxInt64 / time.Second)

// parseRetryAfter accepts delay-seconds or an HTTP date
func parseRetryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		if secs < 0 {
			return 0, false
		}
		if secs > maxRetryAfterSeconds {
			return time.Duration(math.MaxInt64), true
		}
		return time.Duration(secs) * time.Second, true
	}

	at, err := http.ParseTime(value)
	if err != nil {
		return 0, false
	}
	wait := at.Sub(now)
	if wait < 0 {
		wait = 0
	}
	return wait, true
}
