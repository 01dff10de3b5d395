package engine

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/kdevan/doccrawl/internal/assets"
	"github.com/kdevan/doccrawl/internal/config"
	"github.com/kdevan/doccrawl/internal/dedup"
	"github.com/kdevan/doccrawl/internal/extractor"
	"github.com/kdevan/doccrawl/internal/fetcher"
	"github.com/kdevan/doccrawl/internal/frontier"
	"github.com/kdevan/doccrawl/internal/mdconvert"
	"github.com/kdevan/doccrawl/internal/metadata"
	"github.com/kdevan/doccrawl/internal/normalize"
	"github.com/kdevan/doccrawl/internal/renderer"
	"github.com/kdevan/doccrawl/internal/robots"
	"github.com/kdevan/doccrawl/internal/sanitizer"
	"github.com/kdevan/doccrawl/internal/storage"
	"github.com/kdevan/doccrawl/pkg/failure"
	"github.com/kdevan/doccrawl/pkg/hashutil"
	"github.com/kdevan/doccrawl/pkg/limiter"
	"github.com/kdevan/doccrawl/pkg/urlutil"
	"golang.org/x/sync/errgroup"
)

/*
Responsibilities

- Own the crawl lifecycle: seed the frontier, run a bounded worker pool
  against it, and stop when the frontier goes quiescent or max_pages is hit.
- Be the sole control-plane authority: every admission, retry, and
  termination decision is made here, never by a pipeline stage.
- Run the per-URL pipeline in the fixed order robots -> rate limiter ->
  fetch/render -> extract -> sanitize -> link discovery -> dedup ->
  convert -> resolve assets -> normalize -> write, feeding children back
  into the frontier. Dedup fingerprints the text of the sanitized content
  node, not the raw fetched body, and runs after link discovery, so a
  duplicate page still contributes its children.

Non-goal

- Deciding per-request HTTP semantics (headers, redirects, retries): that
  stays inside fetcher/renderer. The engine only classifies their outcome
  for rate-limiter feedback and frontier retry bookkeeping.
*/

const defaultMaxAssetSize = 25 * 1024 * 1024

// crawlerVersion is stamped into every document's frontmatter.
const crawlerVersion = "docs-crawler/1.0"

// robot is the subset of CachedRobot the engine depends on, narrowed so
// tests can inject a fake without standing up real HTTP.
type robot interface {
	Decide(u url.URL) (robots.Decision, *robots.RobotsError)
}

// domExtractor is the subset of DomExtractor the engine depends on.
type domExtractor interface {
	Extract(sourceUrl url.URL, htmlByte []byte) (extractor.ExtractionResult, failure.ClassifiedError)
}

// deduplicator is the subset of ConcurrentDeduplicator the engine depends on.
type deduplicator interface {
	Observe(url string, text string) dedup.Observation
}

// Engine coordinates one crawl end to end.
type Engine struct {
	cfg config.Config

	metadataSink   metadata.MetadataSink
	crawlFinalizer metadata.CrawlFinalizer

	robot                  robot
	rateLimiter            limiter.RateLimiter
	htmlFetcher            fetcher.Fetcher
	renderer               renderer.Renderer
	dedup                  deduplicator
	domExtractor           domExtractor
	htmlSanitizer          sanitizer.Sanitizer
	markdownConversionRule mdconvert.ConvertRule
	assetResolver          assets.Resolver
	markdownConstraint     normalize.Constraint
	storageSink            storage.Sink

	frontier *frontier.PriorityFrontier
}

// New wires an Engine from cfg using the module's production
// implementations: Recorder for observability, CachedRobot for robots.txt,
// ConcurrentRateLimiter for pacing, HtmlFetcher/StaticFallbackRenderer for
// the fetch/render facade, ConcurrentDeduplicator for near-duplicate
// detection, and the extract/sanitize/convert/resolve/normalize/write
// chain built in the prior sessions.
func New(cfg config.Config, logSink metadata.MetadataSink) *Engine {
	if logSink == nil {
		logSink = metadata.NewRecorder(nil)
	}
	crawlFinalizer, _ := logSink.(metadata.CrawlFinalizer)

	httpClient := &http.Client{
		Timeout:       cfg.Timeout(),
		CheckRedirect: redirectCapFunc(cfg.RedirectCap()),
	}

	cachedRobot := robots.NewCachedRobot(logSink)
	cachedRobot.Init(cfg.UserAgent())
	cachedRobot.SetTTLs(cfg.RobotsTTL(), cfg.NegativeRobotsTTL())

	rateLimiter := limiter.NewConcurrentRateLimiter(cfg.BaseDelay(), cfg.MaxDelay())
	rateLimiter.SetAdaptive(cfg.AdaptiveDelay())

	htmlFetcher := fetcher.NewHtmlFetcher(logSink)
	htmlFetcher.Init(httpClient, cfg.UserAgent())

	staticRenderer := renderer.NewStaticFallbackRenderer(&htmlFetcher)

	dd := dedup.New(dedup.Param{
		SimilarityThreshold: cfg.SimilarityThreshold(),
		MinDedupChars:       cfg.MinDedupChars(),
		Capacity:            cfg.DedupStoreCapacity(),
	})

	ext := extractor.NewDomExtractor(logSink).WithExtractParam(extractParamFrom(cfg))
	htmlSanitizer := sanitizer.NewHTMLSanitizer(logSink)
	conversionRule := mdconvert.NewRule(logSink)
	resolver := assets.NewLocalResolver(logSink, httpClient, cfg.UserAgent())
	markdownConstraint := normalize.NewMarkdownConstraint(logSink)
	storageSink := storage.NewLocalSink(logSink)

	fr := frontier.New(scopePolicyFrom(cfg), uint(cfg.MaxAttempt()))

	return &Engine{
		cfg:                    cfg,
		metadataSink:           logSink,
		crawlFinalizer:         crawlFinalizer,
		robot:                  &cachedRobot,
		rateLimiter:            rateLimiter,
		htmlFetcher:            &htmlFetcher,
		renderer:               staticRenderer,
		dedup:                  dd,
		domExtractor:           &ext,
		htmlSanitizer:          &htmlSanitizer,
		markdownConversionRule: conversionRule,
		assetResolver:          &resolver,
		markdownConstraint:     &markdownConstraint,
		storageSink:            storageSink,
		frontier:               fr,
	}
}

// extractParamFrom carries the Config's extraction-tuning fields into an
// extractor.ExtractParam, the same fields DefaultExtractParam seeds.
func extractParamFrom(cfg config.Config) extractor.ExtractParam {
	return extractor.ExtractParam{
		BodySpecificityBias:  cfg.BodySpecificityBias(),
		LinkDensityThreshold: cfg.LinkDensityThreshold(),
		ScoreMultiplier: extractor.ContentScoreMultiplier{
			NonWhitespaceDivisor: cfg.ScoreMultiplierNonWhitespaceDivisor(),
			Paragraphs:           cfg.ScoreMultiplierParagraphs(),
			Headings:             cfg.ScoreMultiplierHeadings(),
			CodeBlocks:           cfg.ScoreMultiplierCodeBlocks(),
			ListItems:            cfg.ScoreMultiplierListItems(),
		},
		Threshold: extractor.MeaningfulThreshold{
			MinNonWhitespace:    cfg.ThresholdMinNonWhitespace(),
			MinHeadings:         cfg.ThresholdMinHeadings(),
			MinParagraphsOrCode: cfg.ThresholdMinParagraphsOrCode(),
			MaxLinkDensity:      cfg.ThresholdMaxLinkDensity(),
		},
	}
}

// Run seeds the frontier from cfg's seed URLs and drives a worker pool of
// cfg.Concurrency() goroutines over it until the frontier is quiescent, a
// worker hits a fatal error, or ctx is cancelled. It returns once every
// worker has exited.
func (e *Engine) Run(ctx context.Context) (Stats, error) {
	start := time.Now()

	if len(e.cfg.SeedURLs()) == 0 {
		return Stats{}, ErrNoSeedURLs
	}

	for _, seed := range e.cfg.SeedURLs() {
		canonicalSeed := canonicalizeSeed(seed)
		e.frontier.Add(frontier.FrontierEntry{
			URL:      canonicalSeed,
			Depth:    0,
			Priority: frontier.PriorityCritical,
		})
	}

	group, groupCtx := errgroup.WithContext(ctx)
	concurrency := e.cfg.Concurrency()
	if concurrency < 1 {
		concurrency = 1
	}

	var pagesCrawled, pagesFailed, pagesSkipped, duplicates, assetsWritten int
	var writeResults []storage.WriteResult
	var mu sync.Mutex

	maxPages := e.cfg.MaxPages()

	for i := 0; i < concurrency; i++ {
		group.Go(func() error {
			for {
				entry, err := e.frontier.Next(groupCtx)
				if err != nil {
					if errors.Is(err, frontier.ErrShutdown) || groupCtx.Err() != nil {
						return nil
					}
					return err
				}

				mu.Lock()
				overBudget := maxPages > 0 && pagesCrawled >= maxPages
				mu.Unlock()
				if overBudget {
					e.frontier.Complete(entry.URL)
					e.frontier.Shutdown()
					continue
				}

				outcome := e.processEntry(groupCtx, entry)

				mu.Lock()
				switch outcome.result {
				case processSuccess:
					pagesCrawled++
					assetsWritten += outcome.assetsWritten
					if outcome.writeResult != nil {
						writeResults = append(writeResults, *outcome.writeResult)
					}
					e.frontier.Complete(entry.URL)
				case processDuplicate:
					duplicates++
					e.frontier.Complete(entry.URL)
				case processSkipped:
					pagesSkipped++
					e.frontier.Complete(entry.URL)
				case processTransientFailure:
					if e.frontier.Fail(entry.URL, true) {
						pagesFailed++
					}
				case processPermanentFailure:
					pagesFailed++
					e.frontier.Fail(entry.URL, false)
				}
				for _, child := range outcome.children {
					e.frontier.Add(child)
				}
				reachedBudget := maxPages > 0 && pagesCrawled >= maxPages
				mu.Unlock()

				if reachedBudget {
					e.frontier.Shutdown()
				}
				if e.frontier.Quiescent() {
					e.frontier.Shutdown()
				}
			}
		})
	}

	runErr := group.Wait()

	if ferr := e.storageSink.Flush(); ferr != nil && runErr == nil {
		runErr = ferr
	}

	duration := time.Since(start)
	if e.crawlFinalizer != nil {
		e.crawlFinalizer.RecordFinalCrawlStats(pagesCrawled, pagesFailed, assetsWritten, duration)
	}

	stats := Stats{
		PagesCrawled: pagesCrawled,
		PagesFailed:  pagesFailed,
		PagesSkipped: pagesSkipped,
		Duplicates:   duplicates,
		Assets:       assetsWritten,
		WriteResults: writeResults,
		Duration:     duration,
	}
	return stats, runErr
}

type processResultKind int

const (
	processSuccess processResultKind = iota
	processDuplicate
	processSkipped
	processTransientFailure
	processPermanentFailure
)

type processOutcome struct {
	result        processResultKind
	children      []frontier.FrontierEntry
	writeResult   *storage.WriteResult
	assetsWritten int
}

// processEntry runs the full single-page pipeline for one frontier entry.
// It never returns an error for ordinary pipeline failures - those are
// reported via metadataSink by each collaborator and folded into the
// returned processOutcome for the caller to act on.
func (e *Engine) processEntry(ctx context.Context, entry frontier.FrontierEntry) processOutcome {
	target, err := url.Parse(entry.URL)
	if err != nil {
		e.recordEngineError("processEntry", entry.URL, "admitted frontier entry carries an unparseable URL: "+err.Error())
		return processOutcome{result: processPermanentFailure}
	}

	if e.cfg.RespectRobots() {
		decision, rerr := e.robot.Decide(*target)
		if rerr != nil {
			if rerr.Severity() == failure.SeverityRecoverable {
				return processOutcome{result: processTransientFailure}
			}
			return processOutcome{result: processPermanentFailure}
		}
		if decision.CrawlDelay > 0 {
			e.rateLimiter.SetCrawlDelay(target.Host, decision.CrawlDelay)
		}
		if !decision.Allowed {
			return processOutcome{result: processSkipped}
		}
	}

	if err := e.rateLimiter.Acquire(ctx, target.Host); err != nil {
		return processOutcome{result: processTransientFailure}
	}

	result, ferr := e.fetchOrRender(ctx, int(entry.Depth), *target)
	e.rateLimiter.Report(target.Host, classifyOutcome(ferr), retryAfterFrom(ferr))
	if ferr != nil {
		if isTransient(ferr) {
			return processOutcome{result: processTransientFailure}
		}
		return processOutcome{result: processPermanentFailure}
	}

	if fetcher.IsBlocked(result) {
		return processOutcome{result: processTransientFailure}
	}

	extraction, eerr := e.domExtractor.Extract(*target, result.Body())
	if eerr != nil {
		if isTransient(eerr) {
			return processOutcome{result: processTransientFailure}
		}
		return processOutcome{result: processPermanentFailure}
	}

	sanitized, serr := e.htmlSanitizer.Sanitize(extraction.ContentNode)
	if serr != nil {
		if isTransient(serr) {
			return processOutcome{result: processTransientFailure}
		}
		return processOutcome{result: processPermanentFailure}
	}

	children := e.discoverChildren(*target, sanitized.GetDiscoveredURLs(), entry.Depth+1)

	if e.cfg.EnableDedup() {
		observation := e.dedup.Observe(target.String(), contentText(sanitized.GetContentNode()))
		if observation.Verdict != dedup.VerdictNew {
			return processOutcome{result: processDuplicate, children: children}
		}
	}

	markdownDoc, cerr := e.markdownConversionRule.Convert(sanitized)
	if cerr != nil {
		if isTransient(cerr) {
			return processOutcome{result: processTransientFailure, children: children}
		}
		return processOutcome{result: processPermanentFailure, children: children}
	}

	resolveParam := assets.NewResolveParam(e.cfg.OutputDir(), defaultMaxAssetSize)
	assetfulDoc, aerr := e.assetResolver.Resolve(ctx, *target, markdownDoc, resolveParam, retryParamFrom(e.cfg))
	assetsWritten := 0
	if aerr == nil {
		assetsWritten = len(assetfulDoc.LocalAssets())
	} else if !isTransient(aerr) {
		// Missing assets are reported, not fatal (spec: "Missing assets
		// reported, not fatal"); proceed with whatever content came back.
		assetfulDoc = assets.NewAssetfulMarkdownDoc(markdownDoc.GetMarkdownContent(), nil, nil, nil)
	} else {
		return processOutcome{result: processTransientFailure, children: children}
	}

	normalizeParam := normalize.NewNormalizeParam(
		crawlerVersion,
		result.FetchedAt(),
		hashutil.HashAlgoBLAKE3,
		int(entry.Depth),
		e.cfg.AllowedPathPrefix(),
	)
	normalizedDoc, nerr := e.markdownConstraint.Normalize(*target, assetfulDoc, normalizeParam)
	if nerr != nil {
		if isTransient(nerr) {
			return processOutcome{result: processTransientFailure, children: children}
		}
		return processOutcome{result: processPermanentFailure, children: children}
	}

	if e.cfg.DryRun() {
		return processOutcome{result: processSuccess, children: children, assetsWritten: assetsWritten}
	}

	writeResult, werr := e.storageSink.Write(e.cfg.OutputDir(), normalizedDoc, hashutil.HashAlgoBLAKE3)
	if werr != nil {
		if isTransient(werr) {
			return processOutcome{result: processTransientFailure, children: children}
		}
		return processOutcome{result: processPermanentFailure, children: children}
	}

	return processOutcome{
		result:        processSuccess,
		children:      children,
		writeResult:   &writeResult,
		assetsWritten: assetsWritten,
	}
}

// fetchOrRender serves target through whichever leg of the fetch/render
// facade cfg.RenderMode selects. In auto mode a static fetch is tried
// first and promoted to a render pass only when NeedsRender judges the
// static response too sparse to be the real document.
func (e *Engine) fetchOrRender(ctx context.Context, depth int, target url.URL) (fetcher.FetchResult, failure.ClassifiedError) {
	retryParam := retryParamFrom(e.cfg)

	switch e.cfg.RenderMode() {
	case config.RenderJavascript:
		return e.renderer.Render(ctx, depth, target, retryParam)
	case config.RenderStatic:
		return e.htmlFetcher.Fetch(ctx, depth, target, retryParam)
	default:
		result, err := e.htmlFetcher.Fetch(ctx, depth, target, retryParam)
		if err != nil {
			return result, err
		}
		if renderer.NeedsRender(result, countAnchors(result.Body())) {
			if rendered, rerr := e.renderer.Render(ctx, depth, target, retryParam); rerr == nil {
				return rendered, nil
			}
		}
		return result, nil
	}
}

// discoverChildren resolves the sanitizer's document-relative hrefs against
// pageURL and turns them into frontier entries at the next depth. Links are
// harvested even from pages later judged duplicates, so traversal breadth
// does not depend on content novelty.
func (e *Engine) discoverChildren(pageURL url.URL, discovered []url.URL, depth uint) []frontier.FrontierEntry {
	resolved := resolveDiscoveredLinks(pageURL, discovered)
	priority := priorityForDepth(e.cfg.Strategy(), depth)
	children := make([]frontier.FrontierEntry, 0, len(resolved))
	for _, child := range resolved {
		children = append(children, frontier.FrontierEntry{
			URL:      child.String(),
			Depth:    depth,
			Priority: priority,
			Parent:   pageURL.String(),
		})
	}
	return children
}

func (e *Engine) recordEngineError(action, rawURL, message string) {
	e.metadataSink.RecordError(
		time.Now(),
		"engine",
		action,
		metadata.CauseInvariantViolation,
		message,
		[]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, rawURL)},
	)
}

// canonicalizeSeed normalises a configured seed URL the same way every
// discovered link is normalised, so the frontier's dedup set treats a seed
// and a later-discovered link to the same page as identical.
func canonicalizeSeed(seed url.URL) string {
	return urlutil.Canonicalize(seed).String()
}

// contentText flattens a sanitized content node to plain text for the
// deduplicator's shingling, matching the same node the markdown converter
// reads from. A nil node (structurally invalid document) yields "".
func contentText(node *html.Node) string {
	if node == nil {
		return ""
	}
	return goquery.NewDocumentFromNode(node).Text()
}

// countAnchors gives fetchOrRender a cheap pre-extraction estimate of a
// static response's link density, without paying for a full DOM parse that
// the auto-render decision may end up discarding.
func countAnchors(body []byte) int {
	return bytes.Count(bytes.ToLower(body), []byte("<a "))
}
