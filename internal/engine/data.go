package engine

import (
	"net/http"
	"net/url"
	"time"

	"github.com/kdevan/doccrawl/internal/config"
	"github.com/kdevan/doccrawl/internal/fetcher"
	"github.com/kdevan/doccrawl/internal/frontier"
	"github.com/kdevan/doccrawl/internal/storage"
	"github.com/kdevan/doccrawl/pkg/failure"
	"github.com/kdevan/doccrawl/pkg/limiter"
	"github.com/kdevan/doccrawl/pkg/retry"
	"github.com/kdevan/doccrawl/pkg/timeutil"
	"github.com/kdevan/doccrawl/pkg/urlutil"
)

// redirectCapFunc builds an http.Client.CheckRedirect that stops following
// once cap hops have been made, handing the last 3xx response back to the
// caller (fetcher/html.go's 300-399 branch turns that into a
// FetchError{Cause: ErrCauseRedirectLimitExceeded}) instead of erroring out
// of Client.Do entirely. cap<=0 leaves Go's built-in 10-redirect default in
// place.
func redirectCapFunc(cap int) func(req *http.Request, via []*http.Request) error {
	if cap <= 0 {
		return nil
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= cap {
			return http.ErrUseLastResponse
		}
		return nil
	}
}

// Stats is the terminal summary of a completed Run, returned to the caller
// in addition to whatever was already pushed through CrawlFinalizer.
type Stats struct {
	PagesCrawled int
	PagesFailed  int
	PagesSkipped int
	Duplicates   int
	Assets       int
	WriteResults []storage.WriteResult
	Duration     time.Duration
}

// retryParamFrom builds the retry.RetryParam every fetch/asset/render call
// shares, straight from the resolved Config.
func retryParamFrom(cfg config.Config) retry.RetryParam {
	return retry.NewRetryParam(
		cfg.BaseDelay(),
		cfg.Jitter(),
		cfg.RandomSeed(),
		cfg.MaxAttempt(),
		timeutil.NewBackoffParam(
			cfg.BackoffInitialDuration(),
			cfg.BackoffMultiplier(),
			cfg.BackoffMaxDuration(),
		),
	)
}

// priorityForDepth maps a discovered child's depth to a frontier.Priority
// according to cfg.Strategy(). bfs favors shallower pages (priority worsens
// with depth, approximating breadth-first service order); dfs favors deeper
// pages (priority improves with depth, approximating depth-first); hybrid
// (and any unset/unrecognised strategy) keeps every non-seed entry at a
// single fixed tier, same as the teacher's original unconditional priority,
// leaving ordering to discovery order and the retry-demotion the frontier
// already does on its own.
func priorityForDepth(strategy config.CrawlStrategy, depth uint) frontier.Priority {
	switch strategy {
	case config.StrategyBFS:
		return clampPriority(int(frontier.PriorityHigh) + int(depth))
	case config.StrategyDFS:
		return clampPriority(int(frontier.PriorityDeferred) - int(depth))
	default:
		return frontier.PriorityNormal
	}
}

func clampPriority(p int) frontier.Priority {
	if p < int(frontier.PriorityCritical) {
		return frontier.PriorityCritical
	}
	if p > int(frontier.PriorityDeferred) {
		return frontier.PriorityDeferred
	}
	return frontier.Priority(p)
}

// scopePolicyFrom derives the frontier's admission policy from Config.
func scopePolicyFrom(cfg config.Config) frontier.ScopePolicy {
	return frontier.ScopePolicy{
		MaxDepth:            uint(cfg.MaxDepth()),
		AllowedHosts:        cfg.AllowedHosts(),
		IncludeSubdomains:   cfg.IncludeSubdomains(),
		FollowExternalLinks: cfg.FollowExternalLinks(),
	}
}

// fetchErrorFrom recovers the *fetcher.FetchError an attempt actually failed
// with, whether it reached the engine directly (a non-retryable failure) or
// wrapped in a *retry.RetryError (retries exhausted). errors.As can't do this
// unwrap itself: RetryError deliberately has no Unwrap method, so that the
// fetcher package's own retry-vs-direct-failure error recording keeps seeing
// a concrete *retry.RetryError via errors.As rather than the cause it wraps.
func fetchErrorFrom(err failure.ClassifiedError) *fetcher.FetchError {
	switch e := err.(type) {
	case *fetcher.FetchError:
		return e
	case *retry.RetryError:
		if fetchErr, ok := e.LastErr.(*fetcher.FetchError); ok {
			return fetchErr
		}
	}
	return nil
}

// classifyOutcome maps a fetch/render result to the rate limiter's Outcome
// vocabulary. Only the four status groupings the limiter paces against are
// distinguished; anything unrecognised degrades to OutcomeClientError,
// matching "no backoff signal, but not a success either".
func classifyOutcome(err failure.ClassifiedError) limiter.Outcome {
	if err == nil {
		return limiter.OutcomeSuccess
	}
	fetchErr := fetchErrorFrom(err)
	if fetchErr == nil {
		return limiter.OutcomeClientError
	}
	switch fetchErr.Cause {
	case fetcher.ErrCauseRequestTooMany:
		return limiter.OutcomeTooManyRequests
	case fetcher.ErrCauseRequest5xx, fetcher.ErrCauseTimeout:
		return limiter.OutcomeServerError
	default:
		return limiter.OutcomeClientError
	}
}

// retryAfterFrom extracts the Retry-After floor a 429 asked for, if the
// failure carries one, so Report can pin the host's next permit no earlier
// than the server demanded.
func retryAfterFrom(err failure.ClassifiedError) time.Duration {
	if fetchErr := fetchErrorFrom(err); fetchErr != nil {
		return fetchErr.RetryAfter()
	}
	return 0
}

// isTransient reports whether a failure is worth re-queueing through the
// frontier's bounded retry budget, as opposed to giving up on the URL.
func isTransient(err failure.ClassifiedError) bool {
	return err.Severity() == failure.SeverityRecoverable
}

// resolveDiscoveredLinks turns the sanitizer's document-relative hrefs into
// canonical, absolute URLs relative to the page they were found on. Scope
// enforcement (host allowlist, subdomains, external links) is the
// frontier's job via ScopePolicy, not this function's.
func resolveDiscoveredLinks(pageURL url.URL, discovered []url.URL) []url.URL {
	resolved := make([]url.URL, 0, len(discovered))
	for _, link := range discovered {
		absolute := urlutil.Resolve(link, pageURL.Scheme, pageURL.Host)
		resolved = append(resolved, urlutil.Canonicalize(absolute))
	}
	return resolved
}
