package scraper

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/bytedance/sonic"
)

// Pricing extraction patterns. Amounts allow an optional thousands
// separator and 2-decimal cents.
const (
	currencyAmountPattern = `[$€£]\s?\d+(?:,\d{3})*(?:\.\d{2})?`
	pricingCardPattern    = `([$€£]\s?\d[\d,]*(?:\.\d{2})?)\s*(?:per\s+user|/\s*user)?\s*(?:per\s+month|/\s*mo(?:nth)?\b)`
	perUserMonthPattern   = `([$€£]\s?\d[\d,]*(?:\.\d{2})?)\s*(?:per|/)\s*user\s*(?:per|/)\s*mo(?:nth)?\b`
	currencyPeriodPattern = `([$€£]\s?\d[\d,]*(?:\.\d{2})?)\s*(?:per|/)\s*(month|mo|year|yr|annum)\b`
	startingFromPattern   = `(?i)starting\s+(?:from|at)\s+([$€£]\s?\d[\d,]*(?:\.\d{2})?)`
	salesforcePattern     = `(\d[\d,]*(?:\.\d{2})?)\s*(USD|EUR|GBP)\s*/\s*user\s*/\s*mo(?:nth)?\b`
	bareAmountPattern     = `^\s*[$€£]?\s*\d[\d,]*(?:\.\d+)?\s*$`

	jsObjectAssignPattern = `(?s)(?:window\.|var\s+|let\s+|const\s+)[A-Za-z_$][\w$.]*\s*=\s*(\{.*?\})\s*;`
	jsKeyValuePattern     = `"([A-Za-z_-]*(?:[Pp]rice|[Cc]ost|[Aa]mount)[A-Za-z_-]*)"\s*:\s*"?([$€£]?\d[\d,]*(?:\.\d{2})?)"?`

	jsonLDScriptXPath = `//script[@type='application/ld+json']`
)

// gatingPhrases are checked against lowercased body text. The first
// match becomes the gated reason. Gating and numeric prices are
// independent facts: both may be true on the same page.
var gatingPhrases = []string{
	"contact sales",
	"request pricing",
	"custom pricing",
	"contact us for pricing",
	"talk to sales",
	"request a quote",
	"get a quote",
	"pricing on request",
}

// strategyYield pairs a strategy name with its raw record count.
type strategyYield struct {
	name  string
	count int
}

// pricingResult accumulates the output of the pricing strategies.
type pricingResult struct {
	records  []PricingRecord
	methods  []string
	yields   []strategyYield
	debug    []string
	jsParsed bool
	gated    bool
	reason   string
}

// pricingStrategy is one entry in the ordered strategy table. Every
// strategy runs unconditionally and appends into the shared result;
// none short-circuits the others.
type pricingStrategy struct {
	name string
	run  func(cfg Config, in *Input, res *pricingResult)
}

var pricingStrategies = []pricingStrategy{
	{"table-scan", scanTables},
	{"pricing-card-scan", scanPricingCards},
	{"text-pattern-scan", scanTextPatterns},
	{"json-ld-scan", scanJSONLD},
	{"embedded-script-scan", scanEmbeddedScripts},
}

// extractPricing runs the full strategy table over the input.
func extractPricing(cfg Config, in *Input) *pricingResult {
	res := &pricingResult{}
	for _, s := range pricingStrategies {
		before := len(res.records)
		s.run(cfg, in, res)
		yield := len(res.records) - before
		res.methods = append(res.methods, fmt.Sprintf("%s: %d prices", s.name, yield))
		res.yields = append(res.yields, strategyYield{name: s.name, count: yield})
	}

	if gated, reason := detectGating(in.LowerText); gated {
		res.gated = true
		res.reason = reason
	}
	return res
}

// detectGating checks lowercased body text against the fixed phrase
// list. It is independent of whether numeric prices were found.
func detectGating(lowerText string) (bool, string) {
	for _, phrase := range gatingPhrases {
		if strings.Contains(lowerText, phrase) {
			return true, phrase
		}
	}
	return false, ""
}

// scanTables scans every table whose aggregate text mentions pricing
// for currency-amount patterns in its cells.
func scanTables(cfg Config, in *Input, res *pricingResult) {
	re := cachedRegex(currencyAmountPattern)

	in.Doc.Find("table").Each(func(i int, table *goquery.Selection) {
		tableText := strings.ToLower(table.Text())
		if !strings.Contains(tableText, "price") &&
			!strings.Contains(tableText, "plan") &&
			!strings.Contains(tableText, "cost") {
			return
		}

		billing := inferBilling(tableText)

		table.Find("td, th").Each(func(j int, cell *goquery.Selection) {
			cellText := cell.Text()
			for _, match := range re.FindAllString(cellText, -1) {
				amount, ok := normalizeAmount(match)
				if !ok {
					continue
				}
				res.records = append(res.records, PricingRecord{
					Amount:   amount,
					Currency: currencyFromSymbol(match),
					Context:  contextSnippet(scrubText(cellText)),
					Billing:  billing,
					Source:   SourceTable,
					RawMatch: match,
				})
			}
		})
	})
}

// scanPricingCards scans elements styled as pricing cards for a
// "$N user/month"-shaped pattern. The pattern implies monthly billing.
func scanPricingCards(cfg Config, in *Input, res *pricingResult) {
	re := cachedRegex(pricingCardPattern)
	selector := "[class*='price'], [class*='plan'], [class*='pricing'], [id*='price'], [id*='plan']"

	scanned := 0
	in.Doc.Find(selector).EachWithBreak(func(i int, card *goquery.Selection) bool {
		if scanned >= cfg.ElementScanCap {
			return false
		}
		scanned++

		cardText := card.Text()
		for _, match := range re.FindAllStringSubmatch(cardText, -1) {
			amount, ok := normalizeAmount(match[1])
			if !ok {
				continue
			}
			res.records = append(res.records, PricingRecord{
				Amount:   amount,
				Currency: currencyFromSymbol(match[1]),
				Context:  contextSnippet(scrubText(cardText)),
				Billing:  BillingMonthly,
				Source:   SourcePricingCard,
				RawMatch: match[0],
			})
		}
		return true
	})
}

// textPattern is one ordered regex over the full body text.
type textPattern struct {
	pattern string
	source  string
	billing func(match []string) string
}

var textPatterns = []textPattern{
	{perUserMonthPattern, SourceTextPattern, func([]string) string { return BillingMonthly }},
	{currencyPeriodPattern, SourceTextPattern, func(m []string) string { return inferBilling(m[2]) }},
	{startingFromPattern, SourceTextPattern, func([]string) string { return BillingUnknown }},
	{salesforcePattern, SourceSalesforce, func([]string) string { return BillingMonthly }},
}

// scanTextPatterns runs the ordered regex list over the body text.
func scanTextPatterns(cfg Config, in *Input, res *pricingResult) {
	for _, tp := range textPatterns {
		re := cachedRegex(tp.pattern)
		for _, match := range re.FindAllStringSubmatch(in.BodyText, -1) {
			amount, ok := normalizeAmount(match[1])
			if !ok {
				continue
			}
			currency := currencyFromSymbol(match[1])
			if tp.source == SourceSalesforce {
				currency = match[2]
			}
			res.records = append(res.records, PricingRecord{
				Amount:   amount,
				Currency: currency,
				Context:  surroundingText(in.BodyText, match[0]),
				Billing:  tp.billing(match),
				Source:   tp.source,
				RawMatch: match[0],
			})
		}
	}
}

// scanJSONLD parses every JSON-LD script block in the raw HTML and
// walks it for Product/Service offers. The raw markup is used because
// the sanitizer has already removed script nodes from the document.
func scanJSONLD(cfg Config, in *Input, res *pricingResult) {
	root, err := htmlquery.Parse(strings.NewReader(in.RawHTML))
	if err != nil {
		res.debug = append(res.debug, fmt.Sprintf("json-ld: html parse failed: %v", err))
		return
	}

	for _, node := range htmlquery.Find(root, jsonLDScriptXPath) {
		payload := strings.TrimSpace(htmlquery.InnerText(node))
		if payload == "" {
			continue
		}

		var data interface{}
		if err := sonic.UnmarshalString(payload, &data); err != nil {
			res.debug = append(res.debug, fmt.Sprintf("json-ld: malformed block: %v", err))
			continue
		}

		walkJSONLD(data, res)
	}
}

// walkJSONLD recursively searches decoded JSON-LD for Product or
// Service nodes carrying offers.
func walkJSONLD(node interface{}, res *pricingResult) {
	switch v := node.(type) {
	case []interface{}:
		for _, item := range v {
			walkJSONLD(item, res)
		}
	case map[string]interface{}:
		if isProductType(v["@type"]) {
			emitOffers(v, res)
		}
		for _, child := range v {
			walkJSONLD(child, res)
		}
	}
}

func isProductType(t interface{}) bool {
	switch v := t.(type) {
	case string:
		return v == "Product" || v == "Service"
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && (s == "Product" || s == "Service") {
				return true
			}
		}
	}
	return false
}

// emitOffers emits one record per offer with a parseable price.
func emitOffers(product map[string]interface{}, res *pricingResult) {
	name, _ := product["name"].(string)

	var offers []interface{}
	switch v := product["offers"].(type) {
	case []interface{}:
		offers = v
	case map[string]interface{}:
		offers = []interface{}{v}
	default:
		return
	}

	for _, raw := range offers {
		offer, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		amount, ok := jsonAmount(offer["price"])
		if !ok {
			continue
		}

		currency := "USD"
		if c, ok := offer["priceCurrency"].(string); ok {
			if c = strings.ToUpper(c); c == "USD" || c == "EUR" || c == "GBP" {
				currency = c
			}
		}

		res.records = append(res.records, PricingRecord{
			Amount:   amount,
			Currency: currency,
			Context:  contextSnippet("structured data offer " + name),
			Billing:  BillingUnknown,
			Source:   SourceJSONLD,
			RawMatch: amount,
		})
	}
}

// scanEmbeddedScripts regex-scans the raw HTML for JS object
// assignments and bare price-flavored key/value pairs. Script content
// is mined as static text, never executed.
func scanEmbeddedScripts(cfg Config, in *Input, res *pricingResult) {
	assignRe := cachedRegex(jsObjectAssignPattern)
	for _, match := range assignRe.FindAllStringSubmatch(in.RawHTML, -1) {
		var obj map[string]interface{}
		if err := sonic.UnmarshalString(match[1], &obj); err != nil {
			res.debug = append(res.debug, fmt.Sprintf("embedded-script: object parse failed: %v", err))
			continue
		}
		res.jsParsed = true
		walkScriptObject("", obj, res)
	}

	kvRe := cachedRegex(jsKeyValuePattern)
	for _, match := range kvRe.FindAllStringSubmatch(in.RawHTML, -1) {
		amount, ok := normalizeAmount(match[2])
		if !ok {
			continue
		}
		res.records = append(res.records, PricingRecord{
			Amount:   amount,
			Currency: currencyFromSymbol(match[2]),
			Context:  contextSnippet("script key " + match[1]),
			Billing:  BillingUnknown,
			Source:   SourceJSRegex,
			RawMatch: match[0],
		})
	}
}

// walkScriptObject walks a decoded script object and emits a record
// whenever a price-flavored key resolves to a numeric-looking value.
// Keys are visited in sorted order so output is deterministic.
func walkScriptObject(path string, node interface{}, res *pricingResult) {
	obj, ok := node.(map[string]interface{})
	if !ok {
		if list, ok := node.([]interface{}); ok {
			for _, item := range list {
				walkScriptObject(path, item, res)
			}
		}
		return
	}

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := obj[key]
		keyPath := key
		if path != "" {
			keyPath = path + "." + key
		}

		lower := strings.ToLower(key)
		if strings.Contains(lower, "price") || strings.Contains(lower, "cost") || strings.Contains(lower, "amount") {
			if amount, ok := jsonAmount(value); ok {
				rawMatch := fmt.Sprintf("%v", value)
				res.records = append(res.records, PricingRecord{
					Amount:   amount,
					Currency: currencyFromSymbol(rawMatch),
					Context:  contextSnippet("script object " + keyPath),
					Billing:  BillingUnknown,
					Source:   SourceJSObject,
					RawMatch: rawMatch,
				})
				continue
			}
		}

		walkScriptObject(keyPath, value, res)
	}
}

// jsonAmount converts a decoded JSON value into a normalized amount
// string when it looks numeric.
func jsonAmount(v interface{}) (string, bool) {
	switch val := v.(type) {
	case float64:
		if val <= 0 {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case string:
		return normalizeAmount(val)
	default:
		return "", false
	}
}

// normalizeAmount strips currency symbols and thousands separators,
// returning a bare decimal string.
func normalizeAmount(raw string) (string, bool) {
	if !cachedRegex(bareAmountPattern).MatchString(raw) {
		return "", false
	}
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "$€£ ")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return "", false
	}
	return s, true
}

// currencyFromSymbol infers the currency from any symbol present,
// defaulting to USD.
func currencyFromSymbol(s string) string {
	switch {
	case strings.Contains(s, "€"):
		return "EUR"
	case strings.Contains(s, "£"):
		return "GBP"
	default:
		return "USD"
	}
}

// inferBilling maps period-flavored text onto a billing cycle.
func inferBilling(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "annual") || strings.Contains(lower, "year") || lower == "yr" || strings.Contains(lower, "annum"):
		return BillingYearly
	case strings.Contains(lower, "month") || lower == "mo":
		return BillingMonthly
	default:
		return BillingUnknown
	}
}

// surroundingText returns a snippet of body text centered on the match.
func surroundingText(body, match string) string {
	idx := strings.Index(body, match)
	if idx < 0 {
		return contextSnippet(match)
	}
	start := idx - 60
	if start < 0 {
		start = 0
	}
	end := idx + len(match) + 60
	if end > len(body) {
		end = len(body)
	}
	return contextSnippet(body[start:end])
}
