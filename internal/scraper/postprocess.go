package scraper

import (
	"sort"
	"strconv"
)

// sourceRank orders pricing sources for deduplication: structured
// sources beat regex-derived ones when strategies disagree about the
// same (amount, currency, billing) key. This is a deliberate priority,
// not an artifact of execution order.
var sourceRank = map[string]int{
	SourceJSONLD:      0,
	SourceTable:       1,
	SourcePricingCard: 2,
	SourceTextPattern: 3,
	SourceJSObject:    4,
	SourceJSRegex:     5,
	SourceSalesforce:  6,
}

// postProcess validates, deduplicates and classifies the raw strategy
// output. It is idempotent: applying it twice yields the same set as
// applying it once.
func postProcess(cfg Config, records []PricingRecord, gated bool) Pricing {
	valid := make([]PricingRecord, 0, len(records))
	for _, r := range records {
		if validAmount(r.Amount, cfg.MaxPrice) {
			valid = append(valid, r)
		}
	}

	// Stable sort keeps strategy order within a rank, so ties stay
	// deterministic.
	sort.SliceStable(valid, func(i, j int) bool {
		return sourceRank[valid[i].Source] < sourceRank[valid[j].Source]
	})

	deduped := make([]PricingRecord, 0, len(valid))
	seen := make(map[string]bool, len(valid))
	for _, r := range valid {
		if key := r.Key(); !seen[key] {
			seen[key] = true
			deduped = append(deduped, r)
		}
	}

	model := ModelUnknown
	switch {
	case gated:
		model = ModelContactSales
	case len(deduped) > 0:
		model = ModelTransparent
	}

	return Pricing{Model: model, ActualPrices: deduped}
}

// validAmount guards against mis-parsed phone numbers, years and
// similar junk being mistaken for prices.
func validAmount(amount string, max float64) bool {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return false
	}
	return v > 0 && v < max
}
