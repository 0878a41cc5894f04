package retailsql

import "time"

// ErrorClassifier decides whether a store error is worth another attempt.
type ErrorClassifier interface {
	// IsTransient reports whether err is temporary (server starting up, file locked).
	IsTransient(err error) bool
}

// BackoffStrategy paces retries of a store operation.
type BackoffStrategy interface {
	// NextDelay returns the wait before retry number attempt (zero-indexed).
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns how many retries are allowed (0 = none, -1 = unlimited).
	MaxAttempts() int
}
