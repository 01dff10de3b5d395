package robots

/*
Responsibilities

- Fetch robots.txt per host
- Cache rules for crawl duration, honouring a TTL (and a separate, longer
  TTL for negative results - hosts with no robots.txt at all)
- Coalesce concurrent fetches for a host not yet in cache via singleflight
- Enforce allow/disallow rules before enqueue

Robots checks occur before a URL enters the frontier.
*/

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/kdevan/doccrawl/internal/metadata"
	"github.com/kdevan/doccrawl/internal/robots/cache"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTTL         = time.Hour
	defaultNegativeTTL = 24 * time.Hour
)

// cacheEnvelope is what CachedRobot actually stores in the string-keyed
// cache.Cache - the raw RobotsResponse plus the bookkeeping needed to
// decide when it goes stale. The underlying cache.Cache implementations
// know nothing about TTLs; CachedRobot owns that policy.
type cacheEnvelope struct {
	Response   RobotsResponse `json:"response"`
	FetchedAt  time.Time      `json:"fetched_at"`
	ExpiresAt  time.Time      `json:"expires_at"`
	HTTPStatus int            `json:"http_status"`
}

// CachedRobot is the Robot collaborator: a robots.txt-aware admission gate
// consulted once per URL before it may enter the frontier.
type CachedRobot struct {
	fetcher     *RobotsFetcher
	cache       cache.Cache
	sink        metadata.MetadataSink
	userAgent   string
	ttl         time.Duration
	negativeTTL time.Duration
	group       *singleflight.Group
}

// NewCachedRobot constructs a CachedRobot that reports observations to sink.
// Call Init or InitWithCache before use.
func NewCachedRobot(sink metadata.MetadataSink) CachedRobot {
	return CachedRobot{sink: sink}
}

// Init wires userAgent and an in-memory cache with the default TTLs.
func (r *CachedRobot) Init(userAgent string) {
	r.InitWithCache(userAgent, cache.NewMemoryCache())
}

// InitWithCache wires userAgent and a caller-supplied cache, for tests or
// alternate cache backends.
func (r *CachedRobot) InitWithCache(userAgent string, c cache.Cache) {
	r.userAgent = userAgent
	r.cache = c
	r.ttl = defaultTTL
	r.negativeTTL = defaultNegativeTTL
	r.fetcher = NewRobotsFetcher(r.sink, userAgent, nil)
	r.group = &singleflight.Group{}
}

// SetTTLs overrides the default robots_ttl / negative_robots_ttl.
func (r *CachedRobot) SetTTLs(ttl, negativeTTL time.Duration) {
	if ttl > 0 {
		r.ttl = ttl
	}
	if negativeTTL > 0 {
		r.negativeTTL = negativeTTL
	}
}

// Decide answers whether u may be crawled under the robots.txt rules for
// its host, fetching (and caching) that host's robots.txt on first use.
func (r *CachedRobot) Decide(u url.URL) (Decision, *RobotsError) {
	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}
	host := u.Host
	if host == "" {
		return Decision{}, &RobotsError{
			Message:   "url has no host",
			Retryable: false,
			Cause:     ErrCauseInvalidRobotsUrl,
		}
	}

	response, fetchedAt, rerr := r.responseFor(context.Background(), scheme, host)
	if rerr != nil {
		r.recordError(rerr)
		return Decision{}, rerr
	}

	rs := MapResponseToRuleSet(response, r.userAgent, fetchedAt)

	path := u.Path
	if path == "" {
		path = "/"
	}

	if !rs.hasGroups {
		return Decision{Url: u, Allowed: true, Reason: EmptyRuleSet}, nil
	}
	if !rs.matchedGroup {
		return Decision{Url: u, Allowed: true, Reason: UserAgentNotMatched}, nil
	}

	allowed, matched := rs.decidePath(path)
	reason := DisallowedByRobots
	switch {
	case !matched:
		reason = NoMatchingRules
		allowed = true
	case allowed:
		reason = AllowedByRobots
	}

	var delay time.Duration
	if d := rs.CrawlDelay(); d != nil {
		delay = *d
	}

	return Decision{Url: u, Allowed: allowed, Reason: reason, CrawlDelay: delay}, nil
}

// Sitemaps returns the sitemap URLs host's robots.txt advertised via
// "Sitemap:" directives, fetching (and caching) that host's robots.txt on
// first use same as Decide. Returns nil if the host has none on record.
func (r *CachedRobot) Sitemaps(host string) []string {
	response, _, rerr := r.responseFor(context.Background(), "https", host)
	if rerr != nil {
		r.recordError(rerr)
		return nil
	}
	return response.Sitemaps
}

// responseFor returns the cached robots.txt response for host if it is
// still fresh, otherwise fetches it (coalescing concurrent callers for the
// same host) and caches the result under the appropriate TTL.
func (r *CachedRobot) responseFor(ctx context.Context, scheme, host string) (RobotsResponse, time.Time, *RobotsError) {
	key := cacheKey(scheme, host)

	if raw, ok := r.cache.Get(key); ok {
		var env cacheEnvelope
		if err := json.Unmarshal([]byte(raw), &env); err == nil && time.Now().Before(env.ExpiresAt) {
			return env.Response, env.FetchedAt, nil
		}
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		result, rerr := r.fetcher.Fetch(ctx, scheme, host)
		if rerr != nil {
			return RobotsFetchResult{}, rerr
		}
		r.store(key, result)
		return result, nil
	})
	if err != nil {
		rerr, ok := err.(*RobotsError)
		if !ok {
			rerr = &RobotsError{Message: err.Error(), Retryable: true, Cause: ErrCauseHttpFetchFailure}
		}
		return RobotsResponse{}, time.Time{}, rerr
	}

	result := v.(RobotsFetchResult)
	return result.Response, result.FetchedAt, nil
}

func (r *CachedRobot) store(key string, result RobotsFetchResult) {
	ttl := r.ttl
	if result.Response.IsEmpty() {
		ttl = r.negativeTTL
	}
	env := cacheEnvelope{
		Response:   result.Response,
		FetchedAt:  result.FetchedAt,
		ExpiresAt:  result.FetchedAt.Add(ttl),
		HTTPStatus: result.HTTPStatus,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return
	}
	r.cache.Put(key, string(data))
}

func (r *CachedRobot) recordError(rerr *RobotsError) {
	if r.sink == nil {
		return
	}
	r.sink.RecordError(time.Now(), "robots", "decide", mapRobotsErrorToMetadataCause(rerr), rerr.Error(), nil)
}

// decidePath resolves the longest-matching allow/disallow rule for path,
// Allow winning ties, per the extended robots.txt syntax (wildcard "*" and
// end-of-string anchor "$").
func (rs ruleSet) decidePath(path string) (allowed bool, matched bool) {
	bestLen := -1

	consider := func(rules []pathRule, allow bool) {
		for _, pr := range rules {
			re := compileRobotsPattern(pr.prefix)
			if !re.MatchString(path) {
				continue
			}
			length := len(pr.prefix)
			if length > bestLen || (length == bestLen && allow) {
				bestLen = length
				allowed = allow
				matched = true
			}
		}
	}

	consider(rs.disallowRules, false)
	consider(rs.allowRules, true)
	return allowed, matched
}

func compileRobotsPattern(pattern string) *regexp.Regexp {
	endAnchor := strings.HasSuffix(pattern, "$")
	if endAnchor {
		pattern = strings.TrimSuffix(pattern, "$")
	}

	var sb strings.Builder
	sb.WriteString("^")
	for _, ch := range pattern {
		if ch == '*' {
			sb.WriteString(".*")
		} else {
			sb.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	if endAnchor {
		sb.WriteString("$")
	}
	return regexp.MustCompile(sb.String())
}
