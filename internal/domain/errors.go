package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAuthFailed covers 401/403-class responses. Always fatal to the
	// run; retrying with the same credentials cannot succeed.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNotFound is a 404 on a mutation: the message no longer exists
	// (a ghost), which is an outcome, not an error condition.
	ErrNotFound = errors.New("message not found")

	// ErrInvalidConfig is raised at startup, before any remote call.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTokenNotFound means no token source in the chain produced one.
	ErrTokenNotFound = errors.New("no auth token found")
)

// RateLimitedError is a 429 carrying the service-provided minimum wait.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// IndexingError is a 202 on search: the channel's search index is still
// warming up and the service hints how long to wait.
type IndexingError struct {
	RetryAfter time.Duration
}

func (e *IndexingError) Error() string {
	return fmt.Sprintf("search index not ready, retry after %s", e.RetryAfter)
}

// TransientError is any other non-2xx response or transport failure.
// Retried with backoff up to the configured bound.
type TransientError struct {
	Status int
	Err    error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transient remote failure: %v", e.Err)
	}
	return fmt.Sprintf("transient remote failure: status %d", e.Status)
}

func (e *TransientError) Unwrap() error { return e.Err }
