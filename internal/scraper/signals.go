package scraper

import "strings"

// signalCategory routes a triggered rule to its output list.
type signalCategory int

const (
	categoryThreat signalCategory = iota
	categoryStrength
	categoryWeakness
)

// signalRule pairs a trigger predicate with a canned statement. Rules
// are evaluated in order against lowercased body text; every satisfied
// trigger appends its statement, so the same input always yields the
// same list in the same order.
type signalRule struct {
	category  signalCategory
	triggers  []string
	statement string
}

var signalRules = []signalRule{
	{categoryThreat, []string{"artificial intelligence", "ai-powered", "ai powered", "machine learning"},
		"Markets AI-assisted quoting and deal intelligence"},
	{categoryThreat, []string{"free trial", "try for free", "free forever"},
		"Low-friction trial motion lowers switching costs for prospects"},
	{categoryThreat, []string{"days not months", "go live in days", "fast implementation", "quick setup", "up and running in"},
		"Leads with rapid time-to-value messaging"},
	{categoryThreat, []string{"salesforce native", "built on salesforce", "appexchange"},
		"Native Salesforce positioning targets the same install base"},
	{categoryThreat, []string{"starting at", "starting from"},
		"Publishes an aggressive entry price point"},

	{categoryStrength, []string{"enterprise", "fortune 500", "soc 2", "iso 27001"},
		"Established enterprise credibility and compliance posture"},
	{categoryStrength, []string{"integration", "integrates with", "api-first", "open api"},
		"Broad integration surface across the revenue stack"},
	{categoryStrength, []string{"gartner", "forrester", "g2 leader", "category leader"},
		"Carries analyst and peer-review recognition"},
	{categoryStrength, []string{"revenue recognition", "quote-to-cash", "quote to cash"},
		"Covers the full quote-to-cash lifecycle, not just CPQ"},

	{categoryWeakness, []string{"contact sales", "request pricing", "custom pricing"},
		"Opaque pricing adds friction to self-serve evaluation"},
	{categoryWeakness, []string{"implementation partner", "professional services", "certified consultant"},
		"Services-heavy implementation suggests long deployment cycles"},
	{categoryWeakness, []string{"minimum seats", "annual contract", "annual commitment"},
		"Rigid contract terms limit appeal to smaller teams"},
}

// extractSignals evaluates the fixed rule list against lowercased body
// text.
func extractSignals(in *Input) CompetitiveSignals {
	signals := CompetitiveSignals{
		ImmediateThreats: []string{},
		Strengths:        []string{},
		Weaknesses:       []string{},
	}

	for _, rule := range signalRules {
		if !containsAny(in.LowerText, rule.triggers) {
			continue
		}
		switch rule.category {
		case categoryThreat:
			signals.ImmediateThreats = append(signals.ImmediateThreats, rule.statement)
		case categoryStrength:
			signals.Strengths = append(signals.Strengths, rule.statement)
		case categoryWeakness:
			signals.Weaknesses = append(signals.Weaknesses, rule.statement)
		}
	}

	return signals
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
