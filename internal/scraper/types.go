package scraper

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

const (
	// MaxHTMLSize limits HTML input to 10MB to prevent memory exhaustion
	MaxHTMLSize = 10 * 1024 * 1024

	// contextSnippetLen bounds the surrounding-text snippet stored on
	// each pricing record
	contextSnippetLen = 120
)

// Input is the uniform seam consumed by every extractor: the sanitized
// document for selector-based strategies, the unmodified raw HTML for
// strategies that mine script content, and the normalized body text.
type Input struct {
	Doc       *goquery.Document
	RawHTML   string
	BodyText  string
	LowerText string
}

// Config holds the extraction tuning constants.
type Config struct {
	CoreFeatureCap    int
	IntegrationCap    int
	CapabilityCap     int
	HeadlineCap       int
	HeadlineMinLen    int
	HeadlineMaxLen    int
	KeyPointsMaxChars int
	ElementScanCap    int
	MaxPrice          float64
}

// DefaultConfig returns production extraction limits.
func DefaultConfig() Config {
	return Config{
		CoreFeatureCap:    20,
		IntegrationCap:    15,
		CapabilityCap:     15,
		HeadlineCap:       15,
		HeadlineMinLen:    10,
		HeadlineMaxLen:    120,
		KeyPointsMaxChars: 2500,
		ElementScanCap:    2500,
		MaxPrice:          100000,
	}
}

// ValidationError reports input rejected before any parsing runs.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ParseError reports HTML that could not be parsed at all. Per-strategy
// parse failures never surface here; they downgrade to debug entries.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse html: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// ValidateHTML checks HTML size and returns error if too large.
func ValidateHTML(html string) error {
	if len(html) == 0 {
		return &ValidationError{Reason: "html content required"}
	}
	if len(html) > MaxHTMLSize {
		return &ValidationError{Reason: fmt.Sprintf("html exceeds maximum size of %d bytes", MaxHTMLSize)}
	}
	return nil
}

// DetectCharset detects and returns charset from HTML bytes.
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// LoadHTML loads HTML with automatic charset detection.
func LoadHTML(htmlStr string) (*goquery.Document, error) {
	if err := ValidateHTML(htmlStr); err != nil {
		return nil, err
	}

	data := []byte(htmlStr)
	detectedCharset := DetectCharset(data)

	reader := bytes.NewReader(data)
	utf8Reader, err := charset.NewReader(reader, detectedCharset)
	if err != nil {
		// Fallback to direct parsing
		utf8Reader = strings.NewReader(htmlStr)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return doc, nil
}

// NormalizeWhitespace collapses multiple spaces into one.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateText truncates text to max length with ellipsis.
func TruncateText(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// Deduplicate removes duplicate strings while preserving order.
func Deduplicate(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}

// regexCache caches compiled patterns shared by all engine instances.
var regexCache sync.Map

// cachedRegex returns a compiled regex, compiling at most once per
// pattern. Patterns are package constants, so compilation errors are
// programmer errors and panic.
func cachedRegex(pattern string) *regexp.Regexp {
	if cached, ok := regexCache.Load(pattern); ok {
		return cached.(*regexp.Regexp)
	}
	re := regexp.MustCompile(pattern)
	regexCache.Store(pattern, re)
	return re
}

// contextSnippet normalizes and bounds the text surrounding a match.
func contextSnippet(s string) string {
	return TruncateText(NormalizeWhitespace(s), contextSnippetLen)
}
