package engine

import (
	"errors"

	"github.com/kdevan/doccrawl/pkg/failure"
)

// ErrNoSeedURLs is returned by Run when the resolved Config carries no seed
// URLs to start from. config.Config.Build already guards against this at
// construction time; this is a defensive second check at the engine's own
// entry point.
var ErrNoSeedURLs = errors.New("engine: no seed URLs configured")

// EngineError wraps an unrecoverable condition detected by the engine
// itself (as opposed to one of its collaborators), such as an admitted
// frontier entry carrying an unparseable canonical URL.
type EngineError struct {
	Message string
}

func (e *EngineError) Error() string {
	return e.Message
}

func (e *EngineError) Severity() failure.Severity {
	return failure.SeverityFatal
}
