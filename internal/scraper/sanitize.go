package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// noiseSelectors name the DOM nodes stripped before selector-based
// extraction runs. Raw HTML is kept separately and unmodified: the
// JSON-LD and embedded-script strategies need the pre-removal markup.
var noiseSelectors = []string{
	"script",
	"style",
	"noscript",
	"nav",
	"footer",
	"header",
	".cookie-banner",
	".popup",
	".advertisement",
	".modal",
	".overlay",
	"[class*='cookie-consent']",
	"[id*='cookie-banner']",
}

// scrubPolicy strips any markup remnants from extracted text snippets.
var scrubPolicy = bluemonday.StrictPolicy()

// Sanitize removes non-content nodes from the document in place.
func Sanitize(doc *goquery.Document) {
	doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
}

// scrubText removes residual markup from a text snippet.
func scrubText(s string) string {
	return scrubPolicy.Sanitize(s)
}

// BuildInput parses raw HTML into the uniform extractor seam: a
// sanitized document plus the untouched raw text and the normalized
// body text derived from the sanitized DOM.
func BuildInput(rawHTML string) (*Input, error) {
	doc, err := LoadHTML(rawHTML)
	if err != nil {
		return nil, err
	}
	Sanitize(doc)

	body := NormalizeWhitespace(doc.Find("body").Text())

	return &Input{
		Doc:       doc,
		RawHTML:   rawHTML,
		BodyText:  body,
		LowerText: strings.ToLower(body),
	}, nil
}
