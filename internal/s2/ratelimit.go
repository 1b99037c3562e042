package s2

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRequestsPerSecond paces outbound calls below the API's shared
	// pool limit.
	DefaultRequestsPerSecond = 10.0
	// DefaultBurst allows a short burst, e.g. the two requests of a
	// citations-and-references lookup.
	DefaultBurst = 5
)

// newLimiter returns nil when pacing is disabled (rps <= 0).
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// waitForSlot blocks until the local limiter grants a request. The client
// never queues past the caller's deadline: when the wait cannot finish in time
// the call fails as rate-limited instead of retrying later.
func waitForSlot(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	err := limiter.Wait(ctx)
	if err == nil {
		return nil
	}
	if ctxErr := contextError(ctx.Err()); ctxErr != nil {
		return ctxErr
	}
	return &APIError{
		Kind:    KindRateLimited,
		Message: "local request budget exhausted before the deadline",
		Err:     err,
	}
}

// contextError maps a context failure to the error taxonomy.
func contextError(err error) *APIError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return &APIError{Kind: KindTimeout, Message: "no response within the request timeout", Err: err}
	case errors.Is(err, context.Canceled):
		return &APIError{Kind: KindCancelled, Message: "request cancelled by caller", Err: err}
	default:
		return nil
	}
}

// parseRetryAfter reads a Retry-After header given either as delta-seconds or
// as an HTTP date. It returns zero when the header is absent or unusable.
func parseRetryAfter(header string, now time.Time) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil {
		if d := at.Sub(now); d > 0 {
			return d.Round(time.Second)
		}
	}
	return 0
}
