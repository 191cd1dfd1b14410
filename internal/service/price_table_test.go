package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/billing_go_server/config"
	"github.com/qs3c/billing_go_server/internal/pricing"
)

func TestPriceTableFromConfig(t *testing.T) {
	table, err := PriceTableFromConfig(config.PricingConfig{
		Plans: map[string]config.PlanPricing{
			"pro":        {Monthly: "64.90"},
			"enterprise": {Monthly: "199.00", Annual: "1990.00"},
		},
	})
	require.NoError(t, err)

	price, ok := table.MonthlyPrice(pricing.PlanPro, pricing.CycleMonthly)
	require.True(t, ok)
	assert.Equal(t, "64.90", price.StringFixed(2))

	// 未覆盖的周期保留内置价格
	price, ok = table.MonthlyPrice(pricing.PlanPro, pricing.CycleAnnual)
	require.True(t, ok)
	assert.Equal(t, "49.92", price.StringFixed(2))

	price, ok = table.MonthlyPrice("enterprise", pricing.CycleAnnual)
	require.True(t, ok)
	assert.Equal(t, "165.83", price.StringFixed(2))

	price, ok = table.MonthlyPrice(pricing.PlanStarter, pricing.CycleMonthly)
	require.True(t, ok)
	assert.Equal(t, "29.90", price.StringFixed(2))
}

func TestPriceTableFromConfig_Invalid(t *testing.T) {
	_, err := PriceTableFromConfig(config.PricingConfig{
		Plans: map[string]config.PlanPricing{"pro": {Monthly: "cheap"}},
	})
	assert.Error(t, err)

	_, err = PriceTableFromConfig(config.PricingConfig{
		Plans: map[string]config.PlanPricing{"pro": {Annual: "-1"}},
	})
	assert.Error(t, err)
}
