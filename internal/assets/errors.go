package assets

import (
	"fmt"

	"github.com/kdevan/doccrawl/internal/metadata"
	"github.com/kdevan/doccrawl/pkg/failure"
)

type AssetsErrorCause string

const (
	ErrCauseImageDownloadFailure  AssetsErrorCause = "failed to download image"
	ErrCauseNetworkFailure        AssetsErrorCause = "network failure"
	ErrCauseRequest5xx            AssetsErrorCause = "server error"
	ErrCauseRequestTooMany        AssetsErrorCause = "rate limited"
	ErrCauseRequestPageForbidden  AssetsErrorCause = "access forbidden"
	ErrCauseRedirectLimitExceeded AssetsErrorCause = "redirect limit exceeded"
	ErrCauseReadResponseBodyError AssetsErrorCause = "failed to read response body"
	ErrCauseAssetTooLarge         AssetsErrorCause = "asset exceeds max size"
	ErrCauseHashError             AssetsErrorCause = "failed to hash asset content"
	ErrCausePathError             AssetsErrorCause = "failed to prepare asset directory"
	ErrCauseWriteFailure          AssetsErrorCause = "failed to write asset to disk"
	ErrCauseDiskFull              AssetsErrorCause = "disk full"
)

type AssetsError struct {
	Message   string
	Retryable bool
	Cause     AssetsErrorCause
}

func (e *AssetsError) Error() string {
	return fmt.Sprintf("assets error: %s", e.Cause)
}

func (e *AssetsError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapAssetsErrorToMetadataCause maps assets-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapAssetsErrorToMetadataCause(err AssetsError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseImageDownloadFailure, ErrCauseNetworkFailure, ErrCauseRequest5xx,
		ErrCauseRequestTooMany, ErrCauseRedirectLimitExceeded, ErrCauseReadResponseBodyError:
		return metadata.CauseNetworkFailure
	case ErrCauseRequestPageForbidden:
		return metadata.CausePolicyDisallow
	case ErrCauseAssetTooLarge:
		return metadata.CauseContentInvalid
	case ErrCauseHashError:
		return metadata.CauseInvariantViolation
	case ErrCausePathError, ErrCauseWriteFailure, ErrCauseDiskFull:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
