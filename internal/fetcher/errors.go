package fetcher

import (
	"fmt"
	"time"

	"github.com/kdevan/doccrawl/internal/metadata"
	"github.com/kdevan/doccrawl/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseTimeout               = "timeout"
	ErrCauseNetworkFailure        = "network issues"
	ErrCauseReadResponseBodyError = "failed to read response body"
	ErrCauseContentTypeInvalid    = "non-HTML content"
	ErrCauseRedirectLimitExceeded = "reached redirect limit"
	ErrCauseRequestPageForbidden  = "forbidden"
	ErrCauseRequestTooMany        = "too many requests"
	ErrCauseRequest5xx            = "5xx"
	ErrCauseRepeated403           = "repeated 403s"
)

type FetchError struct {
	Message   string
	Retryable bool
	Cause     FetchErrorCause
	// retryAfter is the duration a 429 response's Retry-After header asked
	// the caller to wait, or zero if absent/not a 429.
	retryAfter time.Duration
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher error: %s", e.Cause)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is retryable
func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// RetryAfter returns the wait a 429's Retry-After header asked for, zero
// if none applied. Implements the rate limiter's retry-after floor contract
// (pkg/limiter.ConcurrentRateLimiter.Report) via internal/engine.
func (e *FetchError) RetryAfter() time.Duration {
	return e.retryAfter
}

// NewFetchErrorForTest creates a FetchError with a Retry-After floor for
// testing purposes, since retryAfter is otherwise only set by performFetch
// parsing a real response header.
func NewFetchErrorForTest(cause FetchErrorCause, retryable bool, retryAfter time.Duration) *FetchError {
	return &FetchError{Cause: cause, Retryable: retryable, retryAfter: retryAfter}
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseTimeout:
		return metadata.CauseNetworkFailure
	case ErrCauseRequestTooMany:
		return metadata.CausePolicyDisallow
	case ErrCauseRepeated403:
		return metadata.CausePolicyDisallow
	default:
		return metadata.CauseUnknown
	}
}
