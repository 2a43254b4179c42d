package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostProcessDedupPrefersStructuredSource(t *testing.T) {
	records := []PricingRecord{
		{Amount: "99", Currency: "USD", Billing: BillingMonthly, Source: SourceTextPattern},
		{Amount: "99", Currency: "USD", Billing: BillingMonthly, Source: SourceJSONLD},
		{Amount: "99", Currency: "USD", Billing: BillingMonthly, Source: SourceJSRegex},
	}

	out := postProcess(DefaultConfig(), records, false)

	require.Len(t, out.ActualPrices, 1)
	assert.Equal(t, SourceJSONLD, out.ActualPrices[0].Source)
	assert.Equal(t, ModelTransparent, out.Model)
}

func TestPostProcessKeyIsAmountCurrencyBilling(t *testing.T) {
	records := []PricingRecord{
		{Amount: "99", Currency: "USD", Billing: BillingMonthly, Source: SourceTable},
		{Amount: "99", Currency: "EUR", Billing: BillingMonthly, Source: SourceTable},
		{Amount: "99", Currency: "USD", Billing: BillingYearly, Source: SourceTable},
	}

	out := postProcess(DefaultConfig(), records, false)

	assert.Len(t, out.ActualPrices, 3)
}

func TestPostProcessAmountRange(t *testing.T) {
	records := []PricingRecord{
		{Amount: "0", Currency: "USD", Billing: BillingMonthly, Source: SourceTable},
		{Amount: "-5", Currency: "USD", Billing: BillingMonthly, Source: SourceTable},
		{Amount: "100000", Currency: "USD", Billing: BillingMonthly, Source: SourceTable},
		{Amount: "99999.99", Currency: "USD", Billing: BillingMonthly, Source: SourceTable},
		{Amount: "not-a-number", Currency: "USD", Billing: BillingMonthly, Source: SourceTable},
	}

	out := postProcess(DefaultConfig(), records, false)

	require.Len(t, out.ActualPrices, 1)
	assert.Equal(t, "99999.99", out.ActualPrices[0].Amount)
}

func TestPostProcessIdempotent(t *testing.T) {
	records := []PricingRecord{
		{Amount: "49", Currency: "USD", Billing: BillingMonthly, Source: SourceTable},
		{Amount: "49", Currency: "USD", Billing: BillingMonthly, Source: SourcePricingCard},
		{Amount: "29", Currency: "EUR", Billing: BillingUnknown, Source: SourceJSONLD},
	}

	once := postProcess(DefaultConfig(), records, false)
	twice := postProcess(DefaultConfig(), once.ActualPrices, false)

	assert.Equal(t, once, twice)
}

func TestPostProcessModel(t *testing.T) {
	priced := []PricingRecord{{Amount: "10", Currency: "USD", Billing: BillingMonthly, Source: SourceTable}}

	assert.Equal(t, ModelContactSales, postProcess(DefaultConfig(), nil, true).Model)
	assert.Equal(t, ModelContactSales, postProcess(DefaultConfig(), priced, true).Model)
	assert.Equal(t, ModelTransparent, postProcess(DefaultConfig(), priced, false).Model)
	assert.Equal(t, ModelUnknown, postProcess(DefaultConfig(), nil, false).Model)
}

func TestPostProcessEmptyInput(t *testing.T) {
	out := postProcess(DefaultConfig(), nil, false)

	assert.NotNil(t, out.ActualPrices)
	assert.Empty(t, out.ActualPrices)
}
