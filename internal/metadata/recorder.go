package metadata

import (
	"log/slog"
	"sync"
	"time"
)

/*
Metadata Collected
- Fetch timestamps
- HTTP status codes
- Content hashes
- Crawl depth

Logging Goals
- Debuggable crawl behavior
- Post-run auditability
- Failure diagnostics

Structured logging is preferred.

Allowed:
- Primitive values
- Timestamps
- URLs (as values, not objects with behavior)
- Hashes
- Status codes
- Durations
- Identifiers (page ID, crawl ID)
*/

// Recorder is the default MetadataSink. It writes every observation through
// a structured logger and keeps running counters for RecordFinalCrawlStats
// to report against. Stats() is the only read path, and it is for
// reporting only - nothing upstream may use it to decide whether to keep
// crawling.
type Recorder struct {
	log *slog.Logger

	mu            sync.Mutex
	pagesFetched  int
	errorsSeen    int
	assetsFetched int
}

// NewRecorder builds a Recorder that logs through logger. A nil logger
// falls back to slog.Default().
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{log: logger}
}

func (r *Recorder) RecordFetch(fetchUrl string, httpStatus int, duration time.Duration, contentType string, retryCount int, crawlDepth int) {
	r.mu.Lock()
	r.pagesFetched++
	r.mu.Unlock()

	r.log.Info("fetch",
		slog.String("url", fetchUrl),
		slog.Int("status", httpStatus),
		slog.Duration("duration", duration),
		slog.String("content_type", contentType),
		slog.Int("retry_count", retryCount),
		slog.Int("depth", crawlDepth),
	)
}

func (r *Recorder) RecordAssetFetch(fetchUrl string, httpStatus int, duration time.Duration, retryCount int) {
	r.mu.Lock()
	r.assetsFetched++
	r.mu.Unlock()

	r.log.Info("asset_fetch",
		slog.String("url", fetchUrl),
		slog.Int("status", httpStatus),
		slog.Duration("duration", duration),
		slog.Int("retry_count", retryCount),
	)
}

func (r *Recorder) RecordError(observedAt time.Time, packageName string, action string, cause ErrorCause, errorString string, attrs []Attribute) {
	r.mu.Lock()
	r.errorsSeen++
	r.mu.Unlock()

	args := make([]any, 0, 10+len(attrs)*2)
	args = append(args,
		slog.Time("observed_at", observedAt),
		slog.String("package", packageName),
		slog.String("action", action),
		slog.Int("cause", int(cause)),
		slog.String("error", errorString),
	)
	for _, a := range attrs {
		args = append(args, slog.String(string(a.Key), a.Value))
	}
	r.log.Error("crawl_error", args...)
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	args := make([]any, 0, 4+len(attrs)*2)
	args = append(args, slog.String("kind", string(kind)), slog.String("path", path))
	for _, a := range attrs {
		args = append(args, slog.String(string(a.Key), a.Value))
	}
	r.log.Info("artifact_written", args...)
}

func (r *Recorder) RecordFinalCrawlStats(totalPages int, totalErrors int, totalAssets int, duration time.Duration) {
	stats := crawlStats{
		totalPages:  totalPages,
		totalErrors: totalErrors,
		totalAssets: totalAssets,
		durationMs:  duration.Milliseconds(),
	}
	r.log.Info("crawl_complete",
		slog.Int("total_pages", stats.totalPages),
		slog.Int("total_errors", stats.totalErrors),
		slog.Int("total_assets", stats.totalAssets),
		slog.Int64("duration_ms", stats.durationMs),
	)
}

// Stats is a point-in-time snapshot of counters observed so far, for the
// CLI's progress display only.
func (r *Recorder) Stats() (pagesFetched, errorsSeen, assetsFetched int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pagesFetched, r.errorsSeen, r.assetsFetched
}
