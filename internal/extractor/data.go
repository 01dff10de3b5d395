package extractor

import "golang.org/x/net/html"

// ExtractionResult holds the extraction outcome.
// DocumentRoot is the original parsed HTML document.
// ContentNode is the extracted meaningful content node (semantic container).
type ExtractionResult struct {
	DocumentRoot *html.Node
	ContentNode  *html.Node
}

// ContentScoreMultiplier weights each structural signal the layer-3
// content-density fallback counts when scoring a candidate container.
type ContentScoreMultiplier struct {
	NonWhitespaceDivisor float64
	Paragraphs           float64
	Headings             float64
	CodeBlocks           float64
	ListItems            float64
}

// MeaningfulThreshold gates whether a candidate node carries enough
// signal to be considered real content rather than navigation chrome.
type MeaningfulThreshold struct {
	MinNonWhitespace    int
	MinHeadings         int
	MinParagraphsOrCode int
	MaxLinkDensity      float64
}

// ExtractParam tunes the heuristic layer-3 scoring pass: how strongly a
// child container must outscore <body> to be preferred, and the scoring
// weights the content-density fallback uses when no semantic container or
// known documentation selector matched.
type ExtractParam struct {
	// BodySpecificityBias is the threshold for preferring a child container
	// over <body>. A child is preferred when its score is >= BodySpecificityBias * bodyScore.
	BodySpecificityBias float64
	// LinkDensityThreshold is the link-text-to-total-text ratio above which
	// a penalty is applied to a candidate's score.
	LinkDensityThreshold float64

	ScoreMultiplier ContentScoreMultiplier
	Threshold       MeaningfulThreshold
}

// DefaultExtractParam mirrors the weights calculateContentScore and
// isMeaningful used before they took an ExtractParam.
func DefaultExtractParam() ExtractParam {
	return ExtractParam{
		BodySpecificityBias:  0.75,
		LinkDensityThreshold: 0.80,
		ScoreMultiplier: ContentScoreMultiplier{
			NonWhitespaceDivisor: 50.0,
			Paragraphs:           5.0,
			Headings:             10.0,
			CodeBlocks:           15.0,
			ListItems:            2.0,
		},
		Threshold: MeaningfulThreshold{
			MinNonWhitespace:    50,
			MinHeadings:         0,
			MinParagraphsOrCode: 1,
			MaxLinkDensity:      0.8,
		},
	}
}
