package payroll

import (
	"github.com/shopspring/decimal"
)

// TaxBase 所得税计税基数的计算方式
type TaxBase string

const (
	// TaxBaseLegal 法定扣除：工资 - 社保 - 受抚养人扣除
	TaxBaseLegal TaxBase = "legal"
	// TaxBaseSimplified 简易扣除：工资 - 固定简易扣除额
	TaxBaseSimplified TaxBase = "simplified"
)

// BaseOption 一种计税基数及其对应税额
type BaseOption struct {
	Kind TaxBase
	Base decimal.Decimal
	Tax  decimal.Decimal
}

// Result 税后工资计算结果
type Result struct {
	Gross        decimal.Decimal
	Dependents   int
	Contribution decimal.Decimal
	IncomeTax    decimal.Decimal
	Net          decimal.Decimal
	AppliedBase  TaxBase
	Legal        BaseOption
	Simplified   BaseOption
}

// Total 社保 + 所得税
func (r Result) Total() decimal.Decimal {
	return r.Contribution.Add(r.IncomeTax)
}

// Withholding 计算工资的社保与所得税预扣。
// 两种计税基数分别计税，取较低者；gross <= 0 时返回全零结果。
func Withholding(gross decimal.Decimal, dependents int) Result {
	if dependents < 0 {
		dependents = 0
	}
	if !gross.IsPositive() {
		return Result{
			Gross:        decimal.Zero,
			Dependents:   dependents,
			Contribution: decimal.Zero,
			IncomeTax:    decimal.Zero,
			Net:          decimal.Zero,
			AppliedBase:  TaxBaseSimplified,
		}
	}

	contribution := Contribution(gross)

	legalBase := gross.Sub(contribution).Sub(DependentDeduction.Mul(decimal.NewFromInt(int64(dependents))))
	legal := BaseOption{Kind: TaxBaseLegal, Base: legalBase, Tax: IncomeTaxOn(legalBase)}

	simplifiedBase := gross.Sub(SimplifiedDiscount)
	simplified := BaseOption{Kind: TaxBaseSimplified, Base: simplifiedBase, Tax: IncomeTaxOn(simplifiedBase)}

	chosen := lowerTax(legal, simplified)

	return Result{
		Gross:        gross,
		Dependents:   dependents,
		Contribution: contribution,
		IncomeTax:    chosen.Tax,
		Net:          gross.Sub(contribution).Sub(chosen.Tax),
		AppliedBase:  chosen.Kind,
		Legal:        legal,
		Simplified:   simplified,
	}
}

// 税额相同时取简易扣除
func lowerTax(a, b BaseOption) BaseOption {
	if a.Tax.LessThan(b.Tax) {
		return a
	}
	return b
}

// ExtraResult 额外收入（奖金、加班）的税后结果
type ExtraResult struct {
	Base  decimal.Decimal
	Extra decimal.Decimal
	Tax   decimal.Decimal
	Net   decimal.Decimal
}

// ExtraIncome 计算在 base 工资之上增加 extra 时，extra 部分承担的税额。
// 税额 = 合计后总预扣 - 原工资总预扣，能体现 extra 导致的跨档效应。
func ExtraIncome(base, extra decimal.Decimal, dependents int) ExtraResult {
	if !extra.IsPositive() {
		return ExtraResult{Base: base, Extra: extra, Tax: decimal.Zero, Net: decimal.Zero}
	}

	before := Withholding(base, dependents)
	after := Withholding(base.Add(extra), dependents)
	tax := after.Total().Sub(before.Total())

	net := extra.Sub(tax)
	if net.IsNegative() {
		net = decimal.Zero
	}
	return ExtraResult{Base: base, Extra: extra, Tax: tax, Net: net}
}
