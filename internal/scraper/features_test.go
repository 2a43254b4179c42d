package scraper

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFeatures(t *testing.T) {
	html := `<html><body>
		<ul>
			<li>CPQ configuration for complex catalogs</li>
			<li>Approval workflow routing</li>
			<li>Works with Salesforce and HubSpot</li>
			<li>Automate quote generation in seconds</li>
		</ul>
	</body></html>`

	fs := extractFeatures(DefaultConfig(), mustInput(t, html))

	require.NotEmpty(t, fs.Core)
	assert.Contains(t, fs.Core, "CPQ configuration for complex catalogs")
	assert.Contains(t, fs.Core, "Approval workflow routing")
	assert.ElementsMatch(t, []string{"Salesforce", "HubSpot"}, fs.Integrations)
	assert.Contains(t, fs.Capabilities, "Automate quote generation in seconds")
}

func TestExtractFeaturesDedup(t *testing.T) {
	html := `<html><body>
		<li>Contract management</li>
		<li>contract management</li>
		<li>  Contract Management  </li>
	</body></html>`

	fs := extractFeatures(DefaultConfig(), mustInput(t, html))

	assert.Len(t, fs.Core, 1)
}

func TestExtractFeaturesCapDropsNotReplaces(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body><ul>")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&sb, "<li>Billing feature number %d</li>", i)
	}
	sb.WriteString("</ul></body></html>")

	cfg := DefaultConfig()
	cfg.CoreFeatureCap = 3

	fs := extractFeatures(cfg, mustInput(t, sb.String()))

	require.Len(t, fs.Core, 3)
	assert.Equal(t, "Billing feature number 0", fs.Core[0])
	assert.Equal(t, "Billing feature number 2", fs.Core[2])
}

func TestExtractFeaturesPhraseLengthWindow(t *testing.T) {
	long := strings.Repeat("billing and invoicing ", 10)
	html := `<html><body>
		<li>ab</li>
		<li>` + long + `</li>
	</body></html>`

	fs := extractFeatures(DefaultConfig(), mustInput(t, html))

	assert.Empty(t, fs.Core)
}

func TestExtractFeaturesEmptyPage(t *testing.T) {
	fs := extractFeatures(DefaultConfig(), mustInput(t, "<html><body></body></html>"))

	assert.NotNil(t, fs.Core)
	assert.NotNil(t, fs.Integrations)
	assert.NotNil(t, fs.Capabilities)
	assert.Empty(t, fs.Core)
}
