package s2

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies every failure surfaced by the client.
type ErrorKind string

const (
	KindInvalidArgument ErrorKind = "invalid-argument"
	KindNotFound        ErrorKind = "not-found"
	KindRateLimited     ErrorKind = "rate-limited"
	KindUpstreamFailure ErrorKind = "upstream-failure"
	KindTimeout         ErrorKind = "timeout"
	KindCancelled       ErrorKind = "cancelled"
)

// Sentinel errors usable with errors.Is. An *APIError matches the sentinel of
// its kind.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found in Semantic Scholar")
	ErrRateLimited     = errors.New("Semantic Scholar rate limit exceeded")
	ErrUpstreamFailure = errors.New("Semantic Scholar upstream failure")
	ErrTimeout         = errors.New("Semantic Scholar request timed out")
	ErrCancelled       = errors.New("Semantic Scholar request cancelled")
)

var kindSentinels = map[ErrorKind]error{
	KindInvalidArgument: ErrInvalidArgument,
	KindNotFound:        ErrNotFound,
	KindRateLimited:     ErrRateLimited,
	KindUpstreamFailure: ErrUpstreamFailure,
	KindTimeout:         ErrTimeout,
	KindCancelled:       ErrCancelled,
}

// APIError is the normalized failure returned by every client operation.
type APIError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int           // HTTP status, zero when no response was received
	RetryAfter time.Duration // Only set for KindRateLimited when the API sent a hint
	Err        error         // Underlying cause, if any
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.RetryAfter > 0 {
		msg = fmt.Sprintf("%s, retry after %s", msg, e.RetryAfter)
	}
	return msg
}

// Unwrap exposes the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of the same kind.
func (e *APIError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func invalidArgument(format string, args ...any) *APIError {
	return &APIError{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) *APIError {
	return &APIError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func upstreamFailure(err error, format string, args ...any) *APIError {
	return &APIError{Kind: KindUpstreamFailure, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or "" when err is not an *APIError.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// RetryAfterOf returns the retry hint carried by a rate-limited error.
func RetryAfterOf(err error) (time.Duration, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind == KindRateLimited && apiErr.RetryAfter > 0 {
		return apiErr.RetryAfter, true
	}
	return 0, false
}

// IsNotFound returns true if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsInvalidArgument returns true if the caller supplied bad input.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsTimeout returns true if the request exceeded its deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
