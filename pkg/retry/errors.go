package retry

import (
	"fmt"

	"github.com/kdevan/doccrawl/pkg/failure"
)

type RetryErrorCause string

const (
	ErrZeroAttempt       = "zero attempt"
	ErrExhaustedAttempts = "exhausted attempt"
)

type RetryError struct {
	Message   string
	Retryable bool
	Cause     RetryErrorCause
	// LastErr is the classified error the final attempt failed with. It is
	// deliberately not exposed via Unwrap: callers that want to tell a
	// retry-exhaustion from a direct failure still see a *RetryError via
	// errors.As, same as before this field existed. It exists so
	// task-specific detail the last attempt carried (e.g. a 429's
	// Retry-After) isn't lost once retries exhaust; callers that need it
	// read LastErr directly.
	LastErr failure.ClassifiedError
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("retry error: %s, %s", e.Cause, e.Message)
}

func (e *RetryError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *RetryError) IsRetryable() bool {
	return e.Retryable
}

// Is allows errors.Is to match RetryError types
func (e *RetryError) Is(target error) bool {
	_, ok := target.(*RetryError)
	return ok
}
