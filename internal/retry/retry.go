// Package retry provides bounded retries with exponential backoff for
// store operations that can fail transiently.
package retry

import (
	"errors"
	"net"
	"strings"
	"time"
)

const (
	// DefaultAttempts is the total number of tries, including the first.
	DefaultAttempts = 3
	// DefaultBaseDelay is the delay before the first retry; it doubles on
	// each subsequent retry.
	DefaultBaseDelay = 100 * time.Millisecond
)

// Do runs fn up to attempts times, sleeping baseDelay, 2*baseDelay, ... between
// tries. Only transient errors are retried; anything else surfaces immediately.
func Do(attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	delay := baseDelay
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(delay)
			delay *= 2
		}
		err = fn()
		if err == nil || !IsTransient(err) {
			return err
		}
	}
	return err
}

var transientFragments = []string{
	"connection reset",
	"connection refused",
	"broken pipe",
	"i/o timeout",
	"database is locked", // SQLite under concurrent access
}

// IsTransient reports whether an error looks like a recoverable store or
// network failure. The whole unwrap chain is inspected: service layers wrap
// driver errors in types whose Error() hides the cause, so matching only the
// outermost message would miss them. Constraint violations and malformed
// queries are not transient and must never be retried.
func IsTransient(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	for ; err != nil; err = errors.Unwrap(err) {
		msg := err.Error()
		for _, s := range transientFragments {
			if strings.Contains(msg, s) {
				return true
			}
		}
	}
	return false
}
