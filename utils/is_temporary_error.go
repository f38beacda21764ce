package utils

import (
	"context"
	"errors"
)

// IsTemporaryErr reports whether a transport error is worth another attempt.
// Cancelled or expired contexts never are; errors exposing Temporary() decide
// for themselves; anything else is treated as a transient network issue.
func IsTemporaryErr(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr interface{ Temporary() bool }
	if errors.As(err, &netErr) {
		return netErr.Temporary()
	}
	return true
}
