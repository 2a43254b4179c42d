package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Curated domain vocabulary for the CPQ/quote-to-cash category.
const (
	coreFeaturePattern = `(?i)\b(cpq|configure[ ,-]?price[ ,-]?quote|quot(?:e|ing)|proposal|contract(?:s)?(?: management)?|billing|invoic(?:e|ing)|subscription|revenue recognition|approval workflow|workflow|e-?signature|document generation|pricing rules|product catalog|guided selling|renewal(?:s)?|discount(?:ing)?|price book)\b`

	integrationPattern = `(?i)\b(salesforce|hubspot|netsuite|quickbooks|stripe|docusign|slack|dynamics 365|microsoft dynamics|sap|oracle|zapier|workday|zuora|avalara|pandadoc|conga|dealhub)\b`

	capabilityPattern = `(?i)^(automate|generate|create|build|track|manage|configure|customize|streamline|integrate|sync|approve|send|sign|close|accelerate|eliminate|reduce)\b`
)

const (
	featurePhraseMinLen = 5
	featurePhraseMaxLen = 150
)

// cappedList appends with set semantics: deduplicated, insertion
// ordered, and dropped (not replaced) once the cap is reached.
type cappedList struct {
	items []string
	seen  map[string]bool
	cap   int
}

func newCappedList(cap int) *cappedList {
	return &cappedList{items: []string{}, seen: make(map[string]bool), cap: cap}
}

func (l *cappedList) add(item string) {
	key := strings.ToLower(strings.TrimSpace(item))
	if key == "" || l.seen[key] || len(l.items) >= l.cap {
		return
	}
	l.seen[key] = true
	l.items = append(l.items, strings.TrimSpace(item))
}

// extractFeatures scans list items first, then falls back to a bounded
// full-element scan. The element cap bounds worst-case latency on
// pathological pages.
func extractFeatures(cfg Config, in *Input) FeatureSet {
	core := newCappedList(cfg.CoreFeatureCap)
	integrations := newCappedList(cfg.IntegrationCap)
	capabilities := newCappedList(cfg.CapabilityCap)

	classify := func(text string) {
		text = NormalizeWhitespace(text)
		if len(text) < featurePhraseMinLen || len(text) > featurePhraseMaxLen {
			return
		}
		if cachedRegex(coreFeaturePattern).MatchString(text) {
			core.add(text)
		}
		for _, vendor := range cachedRegex(integrationPattern).FindAllString(text, -1) {
			integrations.add(vendor)
		}
		if cachedRegex(capabilityPattern).MatchString(text) {
			capabilities.add(text)
		}
	}

	in.Doc.Find("li").Each(func(i int, s *goquery.Selection) {
		classify(s.Text())
	})

	scanned := 0
	in.Doc.Find("p, h2, h3, h4, td, span, div").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if scanned >= cfg.ElementScanCap {
			return false
		}
		scanned++
		classify(s.Text())
		return true
	})

	return FeatureSet{
		Core:         core.items,
		Integrations: integrations.items,
		Capabilities: capabilities.items,
	}
}
