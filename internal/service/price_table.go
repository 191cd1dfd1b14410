package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/qs3c/billing_go_server/config"
	"github.com/qs3c/billing_go_server/internal/pricing"
)

// PriceTableFromConfig 内置标价叠加配置文件中的覆盖项，空字符串表示不覆盖
func PriceTableFromConfig(cfg config.PricingConfig) (pricing.PriceTable, error) {
	overrides := make(pricing.PriceTable, len(cfg.Plans))
	for plan, p := range cfg.Plans {
		cycles := make(map[pricing.BillingCycle]decimal.Decimal, 2)
		for cycle, raw := range map[pricing.BillingCycle]string{
			pricing.CycleMonthly: p.Monthly,
			pricing.CycleAnnual:  p.Annual,
		} {
			if raw == "" {
				continue
			}
			price, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("pricing.plans.%s.%s: %w", plan, cycle, err)
			}
			if price.IsNegative() {
				return nil, fmt.Errorf("pricing.plans.%s.%s: negative price %s", plan, cycle, raw)
			}
			cycles[cycle] = price
		}
		if len(cycles) > 0 {
			overrides[pricing.Plan(plan)] = cycles
		}
	}
	return pricing.DefaultPriceTable().Merge(overrides), nil
}
