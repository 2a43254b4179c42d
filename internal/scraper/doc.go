// Package scraper implements the competitive-intelligence extraction engine.
//
// Given raw HTML fetched from an arbitrary third-party site, the engine
// produces a structured record of pricing, features, integrations and
// competitive signals. This package is organized into specialized modules:
//   - fetch: deadline-bounded HTML retrieval with browser-like headers
//   - sanitize: DOM noise removal ahead of selector-based extraction
//   - pricing: five independent pricing strategies plus gating detection
//   - features: keyword-driven feature and integration detection
//   - signals: rule-based competitive threat/strength statements
//   - content: title, headlines and body-text summarization
//   - postprocess: deduplication, validation and model classification
//
// Built on specialized libraries:
//   - goquery: jQuery-like CSS selectors
//   - htmlquery: XPath queries over the unsanitized markup
//   - bluemonday: snippet sanitization
//   - chardet: character encoding detection
//   - sonic: JSON decoding of JSON-LD and script-embedded objects
//
// No single extraction heuristic is reliable in isolation, so every
// strategy runs unconditionally and the post-processor reconciles their
// noisy outputs deterministically.
//
// Example Usage:
//
//	engine := scraper.NewEngine(scraper.DefaultConfig(), scraper.DefaultFetchConfig(), logger)
//	record, err := engine.Scrape(ctx, "https://example.com/pricing", "Pricing Page")
package scraper
