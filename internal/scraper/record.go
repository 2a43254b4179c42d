package scraper

import "time"

// Pricing record sources, in post-processing priority order.
const (
	SourceJSONLD      = "json-ld"
	SourceTable       = "html-table"
	SourcePricingCard = "html-pricing-card"
	SourceTextPattern = "text-pattern"
	SourceJSObject    = "javascript-object"
	SourceJSRegex     = "javascript-regex"
	SourceSalesforce  = "salesforce-pattern"
)

// Billing cycles.
const (
	BillingMonthly = "monthly"
	BillingYearly  = "yearly"
	BillingUnknown = "unknown"
)

// Pricing models assigned by the post-processor.
const (
	ModelContactSales = "contact-sales"
	ModelTransparent  = "transparent"
	ModelUnknown      = "unknown"
)

// PricingRecord is a single extracted price observation.
type PricingRecord struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Context  string `json:"context"`
	Billing  string `json:"billing"`
	Source   string `json:"source"`
	RawMatch string `json:"rawMatch"`
}

// Key returns the composite dedup key. No two records in a final
// result share a key.
func (p PricingRecord) Key() string {
	return p.Amount + "|" + p.Currency + "|" + p.Billing
}

// Pricing aggregates all price observations for a page.
type Pricing struct {
	Model        string          `json:"model"`
	ActualPrices []PricingRecord `json:"actualPrices"`
}

// FeatureSet holds detected product capabilities. Lists are
// deduplicated, insertion-ordered and capped; once a cap is reached
// further matches are dropped, not replaced.
type FeatureSet struct {
	Core         []string `json:"core"`
	Integrations []string `json:"integrations"`
	Capabilities []string `json:"capabilities"`
}

// CompetitiveSignals holds canned statements emitted by triggered
// rules, in rule order.
type CompetitiveSignals struct {
	ImmediateThreats []string `json:"immediateThreats"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
}

// ContentSummary holds page-level textual content.
type ContentSummary struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Keywords      string   `json:"keywords,omitempty"`
	OGTitle       string   `json:"ogTitle,omitempty"`
	OGDescription string   `json:"ogDescription,omitempty"`
	Headlines     []string `json:"headlines"`
	KeyPoints     string   `json:"keyPoints"`
	WordCount     int      `json:"wordCount"`
}

// Metadata carries extraction diagnostics and gating flags.
type Metadata struct {
	ExtractionMethods []string `json:"extractionMethods"`
	DebugInfo         []string `json:"debugInfo"`
	JavascriptParsed  bool     `json:"javascriptParsed"`
	IsGated           bool     `json:"isGated"`
	GatedReason       string   `json:"gatedReason,omitempty"`
}

// Record is the Intelligence Record: the single aggregate output of one
// scrape invocation. It is constructed fresh per invocation, each field
// is written once by its owning extractor, the pricing sub-fields are
// rewritten by the post-processor, and the record is immutable once
// returned.
type Record struct {
	URL       string             `json:"url"`
	PageType  string             `json:"pageType"`
	ScrapeID  string             `json:"scrapeId"`
	Timestamp time.Time          `json:"timestamp"`
	Pricing   Pricing            `json:"pricing"`
	Features  FeatureSet         `json:"features"`
	Signals   CompetitiveSignals `json:"signals"`
	Content   ContentSummary     `json:"content"`
	Metadata  Metadata           `json:"metadata"`
	Summary   Summary            `json:"summary"`
}

// Summary is derived from the assembled record.
type Summary struct {
	TotalPrices      int  `json:"totalPrices"`
	PricingAvailable bool `json:"pricingAvailable"`
	FeatureCount     int  `json:"featureCount"`
	IntegrationCount int  `json:"integrationCount"`
	ThreatCount      int  `json:"threatCount"`
	JavascriptData   bool `json:"javascriptData"`
}
