package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Focused selector groups per page type. The page type only tunes
// which DOM regions feed the key-points text; it never branches
// pricing, feature or signal extraction.
var (
	pricingFocusSelectors = []string{
		".pricing, .price, .plan, .tier, .package, .subscription",
		"[class*='pricing'], [class*='price'], [class*='plan']",
		"[data-testid*='pricing'], [data-testid*='plan']",
		".billing, .cost, .fee",
	}

	productFocusSelectors = []string{
		"main, .main-content, .content, [role='main']",
		".hero, .banner, .intro",
		".features, .benefits, .capabilities, .overview",
		"h1, h2, h3",
		".description, .summary, .product-info, .about",
	}

	docFocusSelectors = []string{
		".documentation, .docs, .api-docs",
		".guide, .tutorial, .getting-started",
		".integration, .developer, .dev-docs",
		"article, .article",
		".content-area, .doc-content, .readme",
	}

	generalFocusSelectors = []string{"main", ".main", ".content", "[role='main']", ".container"}
)

// generalFallbackMinChars is the threshold below which a type-focused
// extraction is considered to have missed and the general path runs.
const generalFallbackMinChars = 300

// extractContent produces the page-level textual summary.
func extractContent(cfg Config, in *Input, pageType string) ContentSummary {
	doc := in.Doc

	title := NormalizeWhitespace(doc.Find("title").First().Text())
	if title == "" {
		title = NormalizeWhitespace(doc.Find("h1").First().Text())
	}

	summary := ContentSummary{
		Title:         title,
		Description:   doc.Find("meta[name='description']").AttrOr("content", ""),
		Keywords:      doc.Find("meta[name='keywords']").AttrOr("content", ""),
		OGTitle:       doc.Find("meta[property='og:title']").AttrOr("content", ""),
		OGDescription: doc.Find("meta[property='og:description']").AttrOr("content", ""),
		Headlines:     extractHeadlines(cfg, doc),
		WordCount:     len(strings.Fields(in.BodyText)),
	}

	focused := focusedText(doc, pageType)
	if len(focused) < generalFallbackMinChars {
		focused = generalText(doc)
	}
	summary.KeyPoints = TruncateText(NormalizeWhitespace(scrubText(focused)), cfg.KeyPointsMaxChars)

	return summary
}

// extractHeadlines collects h1-h4 text within the configured length
// window. Too-short navigational fragments and too-long paragraph
// text are both rejected.
func extractHeadlines(cfg Config, doc *goquery.Document) []string {
	var headlines []string

	for level := 1; level <= 4; level++ {
		doc.Find(fmt.Sprintf("h%d", level)).Each(func(i int, s *goquery.Selection) {
			text := NormalizeWhitespace(s.Text())
			if len(text) >= cfg.HeadlineMinLen && len(text) <= cfg.HeadlineMaxLen {
				headlines = append(headlines, text)
			}
		})
	}

	headlines = Deduplicate(headlines)
	if len(headlines) > cfg.HeadlineCap {
		headlines = headlines[:cfg.HeadlineCap]
	}
	if headlines == nil {
		headlines = []string{}
	}
	return headlines
}

// focusedText gathers text from the selector group matching the page
// type label.
func focusedText(doc *goquery.Document, pageType string) string {
	var selectors []string
	switch pageType {
	case "Pricing Page":
		selectors = pricingFocusSelectors
	case "Main Product Page", "Product Page":
		selectors = productFocusSelectors
	case "Knowledge Center", "Documentation":
		selectors = docFocusSelectors
	default:
		return ""
	}

	var sb strings.Builder
	for _, selector := range selectors {
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 3 && len(text) < 1000 {
				sb.WriteString(text)
				sb.WriteString("\n")
			}
		})
	}
	return sb.String()
}

// generalText falls back to the first substantial main-content area,
// then the whole body.
func generalText(doc *goquery.Document) string {
	for _, selector := range generalFocusSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if len(text) > 200 {
			return text
		}
	}
	return strings.TrimSpace(doc.Find("body").Text())
}
