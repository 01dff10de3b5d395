package renderer

import (
	"context"
	"net/url"

	"github.com/kdevan/doccrawl/internal/fetcher"
	"github.com/kdevan/doccrawl/pkg/failure"
	"github.com/kdevan/doccrawl/pkg/retry"
)

/*
Responsibilities

- Satisfy the render-capable leg of the fetch/render facade for pages a
  static fetch judged too sparse to be the real document.
- Report the same FetchResult shape the static fetcher reports, so the
  engine can treat both legs identically past this point.

Non-goal

- Actual JavaScript execution. No headless browser backend ships in this
  module; a Renderer implementation plugs in behind this interface the
  same way the spec treats the renderer as a black box satisfying
  Render(url) -> (html, outcome). Swapping in a chromedp/playwright-backed
  Renderer is a drop-in change that touches nothing else in the engine.
*/

// Renderer is the JS-capable leg of the fetch/render facade. Implementations
// must honor ctx cancellation and report outcomes the same way the static
// fetcher does, so the rate limiter sees a uniform signal regardless of
// which leg served a given URL.
type Renderer interface {
	Render(
		ctx context.Context,
		crawlDepth int,
		target url.URL,
		retryParam retry.RetryParam,
	) (fetcher.FetchResult, failure.ClassifiedError)
}

// StaticFallbackRenderer is the renderer shipped with this module. It has
// no JavaScript engine behind it: it re-runs the static fetch path and
// reports the result, which is the correct behavior for documentation
// sites served as plain HTML (the overwhelming majority of the crawl
// target population) and a safe degradation for anything else. It exists
// so render_mode=auto/javascript have a concrete, always-available
// collaborator to call instead of the engine special-casing "no renderer
// configured".
type StaticFallbackRenderer struct {
	fetcher fetcher.Fetcher
}

// NewStaticFallbackRenderer wires a Renderer around an already-initialized
// fetcher.Fetcher (same httpClient/userAgent Init as the static leg uses).
func NewStaticFallbackRenderer(htmlFetcher fetcher.Fetcher) StaticFallbackRenderer {
	return StaticFallbackRenderer{fetcher: htmlFetcher}
}

func (r StaticFallbackRenderer) Render(
	ctx context.Context,
	crawlDepth int,
	target url.URL,
	retryParam retry.RetryParam,
) (fetcher.FetchResult, failure.ClassifiedError) {
	return r.fetcher.Fetch(ctx, crawlDepth, target, retryParam)
}

// NeedsRender applies the auto render-mode heuristic: a static fetch is
// promoted to a render attempt when the body is smaller than 512 bytes or
// contains no outgoing links. It does not look at the content-type or
// parse the body, so a large HTML page with links but an empty DOM is not
// promoted. The decision is per-URL and must never feed back into
// rate-limit pacing.
func NeedsRender(result fetcher.FetchResult, linkCount int) bool {
	const minBodyBytes = 512
	if result.SizeByte() < minBodyBytes {
		return true
	}
	if linkCount == 0 {
		return true
	}
	return false
}

