package limiter

import "time"

// Outcome classifies the result of a single fetch attempt against a host,
// for the purposes of adaptive pacing. It deliberately mirrors only the
// HTTP status-class groupings the rate limiter cares about, not the full
// error-kind taxonomy in pkg/failure/internal/metadata.
type Outcome int

const (
	OutcomeSuccess          Outcome = iota // 2xx/3xx
	OutcomeTooManyRequests                 // 429
	OutcomeServerError                     // 5xx, and deadline/timeout elapse
	OutcomeClientError                     // any other 4xx
)

// HostState is the adaptive pacing state the rate limiter tracks per host.
type HostState struct {
	LastPermitAt      time.Time
	NextPermitAt      time.Time
	ConsecutiveErrors int
	TotalErrors       int
	EWMALatency       time.Duration
	CurrentDelay      time.Duration
	CrawlDelayFloor   time.Duration
}

type hostRecord struct {
	state HostState
}
