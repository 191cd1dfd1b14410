package payroll

import (
	"github.com/shopspring/decimal"
)

// Bracket 累进税率表中的一档：ceiling 以下适用 gross*Rate - Deduction
type Bracket struct {
	Ceiling   decimal.Decimal
	Rate      decimal.Decimal
	Deduction decimal.Decimal
}

func bracket(ceiling, rate, deduction string) Bracket {
	return Bracket{
		Ceiling:   decimal.RequireFromString(ceiling),
		Rate:      decimal.RequireFromString(rate),
		Deduction: decimal.RequireFromString(deduction),
	}
}

// 社保缴费（INSS）：四档公式 + 超出最高档后的固定上限
var (
	contributionBrackets = []Bracket{
		bracket("1518.00", "0.075", "0"),
		bracket("2793.88", "0.09", "22.77"),
		bracket("4190.83", "0.12", "106.59"),
		bracket("8157.41", "0.14", "190.40"),
	}
	contributionCeiling = decimal.RequireFromString("951.63")
)

// 所得税（IRRF）：免税额以下为 0，最后一档没有上限
var (
	incomeTaxExemption = decimal.RequireFromString("2428.80")
	incomeTaxBrackets  = []Bracket{
		bracket("2826.65", "0.075", "182.16"),
		bracket("3751.05", "0.15", "394.16"),
		bracket("4664.68", "0.225", "675.49"),
	}
	incomeTaxTopBracket = bracket("0", "0.275", "908.73")
)

var (
	// DependentDeduction 每个受抚养人的扣除额
	DependentDeduction = decimal.RequireFromString("189.59")
	// SimplifiedDiscount 简易扣除额
	SimplifiedDiscount = decimal.RequireFromString("607.20")
)

func (b Bracket) apply(base decimal.Decimal) decimal.Decimal {
	return base.Mul(b.Rate).Sub(b.Deduction)
}

// Contribution 社保缴费，按所在档位直接套公式，不做逐档累加。
// 结果不超过 contributionCeiling，随工资单调不减
func Contribution(gross decimal.Decimal) decimal.Decimal {
	if !gross.IsPositive() {
		return decimal.Zero
	}
	for _, b := range contributionBrackets {
		if gross.LessThanOrEqual(b.Ceiling) {
			return decimal.Min(b.apply(gross).Round(2), contributionCeiling)
		}
	}
	return contributionCeiling
}

// IncomeTaxOn 对计税基数套用所得税率表，结果不小于 0
func IncomeTaxOn(base decimal.Decimal) decimal.Decimal {
	if base.LessThanOrEqual(incomeTaxExemption) {
		return decimal.Zero
	}
	b := incomeTaxTopBracket
	for _, candidate := range incomeTaxBrackets {
		if base.LessThanOrEqual(candidate.Ceiling) {
			b = candidate
			break
		}
	}
	tax := b.apply(base).Round(2)
	if tax.IsNegative() {
		return decimal.Zero
	}
	return tax
}
