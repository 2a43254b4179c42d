package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSignals(t *testing.T) {
	html := `<html><body>
		<p>Start your free trial today. AI-powered quoting built for speed.</p>
		<p>SOC 2 certified and trusted by Fortune 500 revenue teams.</p>
		<p>Contact sales for custom pricing.</p>
	</body></html>`

	sig := extractSignals(mustInput(t, html))

	require.Len(t, sig.ImmediateThreats, 2)
	assert.Equal(t, "Markets AI-assisted quoting and deal intelligence", sig.ImmediateThreats[0])
	assert.Equal(t, "Low-friction trial motion lowers switching costs for prospects", sig.ImmediateThreats[1])
	assert.Contains(t, sig.Strengths, "Established enterprise credibility and compliance posture")
	assert.Contains(t, sig.Weaknesses, "Opaque pricing adds friction to self-serve evaluation")
}

func TestExtractSignalsDeterministicOrder(t *testing.T) {
	html := `<html><body><p>Free trial. Machine learning. Starting at low prices. AppExchange listed.</p></body></html>`

	first := extractSignals(mustInput(t, html))
	second := extractSignals(mustInput(t, html))

	assert.Equal(t, first, second)
	// Rule order, not trigger order in the text.
	require.Len(t, first.ImmediateThreats, 4)
	assert.Equal(t, "Markets AI-assisted quoting and deal intelligence", first.ImmediateThreats[0])
	assert.Equal(t, "Publishes an aggressive entry price point", first.ImmediateThreats[3])
}

func TestExtractSignalsOneStatementPerRule(t *testing.T) {
	html := `<html><body><p>Free trial here, try for free there, free forever everywhere.</p></body></html>`

	sig := extractSignals(mustInput(t, html))

	assert.Len(t, sig.ImmediateThreats, 1)
}

func TestExtractSignalsEmptyListsNotNil(t *testing.T) {
	sig := extractSignals(mustInput(t, "<html><body><p>Nothing notable.</p></body></html>"))

	assert.NotNil(t, sig.ImmediateThreats)
	assert.NotNil(t, sig.Strengths)
	assert.NotNil(t, sig.Weaknesses)
	assert.Empty(t, sig.ImmediateThreats)
}
