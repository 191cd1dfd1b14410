package pricing

import (
	"github.com/shopspring/decimal"
)

type Plan string

const (
	PlanStarter Plan = "starter"
	PlanPro     Plan = "pro"
	PlanFamily  Plan = "family"
)

type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleAnnual  BillingCycle = "annual"
)

// PriceTable 套餐 × 计费周期 的标价。annual 为整年价格
type PriceTable map[Plan]map[BillingCycle]decimal.Decimal

// DefaultPriceTable 内置标价
func DefaultPriceTable() PriceTable {
	return PriceTable{
		PlanStarter: {
			CycleMonthly: decimal.RequireFromString("29.90"),
			CycleAnnual:  decimal.RequireFromString("299.00"),
		},
		PlanPro: {
			CycleMonthly: decimal.RequireFromString("59.90"),
			CycleAnnual:  decimal.RequireFromString("599.00"),
		},
		PlanFamily: {
			CycleMonthly: decimal.RequireFromString("89.90"),
			CycleAnnual:  decimal.RequireFromString("899.00"),
		},
	}
}

// Merge 用 overrides 覆盖同名条目，返回新表
func (t PriceTable) Merge(overrides PriceTable) PriceTable {
	merged := make(PriceTable, len(t))
	for plan, cycles := range t {
		merged[plan] = make(map[BillingCycle]decimal.Decimal, len(cycles))
		for cycle, price := range cycles {
			merged[plan][cycle] = price
		}
	}
	for plan, cycles := range overrides {
		if merged[plan] == nil {
			merged[plan] = make(map[BillingCycle]decimal.Decimal, len(cycles))
		}
		for cycle, price := range cycles {
			merged[plan][cycle] = price
		}
	}
	return merged
}

// MonthlyPrice 月度等效价格，年付按 12 个月均摊并保留两位小数
func (t PriceTable) MonthlyPrice(plan Plan, cycle BillingCycle) (decimal.Decimal, bool) {
	cycles, ok := t[plan]
	if !ok {
		return decimal.Zero, false
	}
	price, ok := cycles[cycle]
	if !ok {
		return decimal.Zero, false
	}
	if cycle == CycleAnnual {
		return price.Div(decimal.NewFromInt(12)).Round(2), true
	}
	return price, true
}
