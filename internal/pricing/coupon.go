package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type CouponType string

const (
	CouponPercentage  CouponType = "percentage"
	CouponFixed       CouponType = "fixed"
	CouponProgressive CouponType = "progressive"
)

type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// ProgressiveDiscount 渐进式优惠券在某个优惠月序号上的折扣
type ProgressiveDiscount struct {
	Month        int             `json:"month"`
	DiscountType DiscountType    `json:"discount_type"`
	Discount     decimal.Decimal `json:"discount"`
}

// Coupon 优惠券快照
type Coupon struct {
	ID                   string
	Code                 string
	Type                 CouponType
	Value                decimal.Decimal
	ProgressiveDiscounts []ProgressiveDiscount
}

// DiscountRule 某个月实际生效的折扣
type DiscountRule struct {
	Type     DiscountType
	Discount decimal.Decimal
}

// Resolve 返回优惠券在第 couponMonthIndex 个优惠月的折扣规则。
// 非正序号表示优惠尚未生效；渐进式优惠券只做精确匹配，没有规则的月份按原价。
func Resolve(coupon Coupon, couponMonthIndex int) (DiscountRule, bool) {
	if couponMonthIndex < 1 {
		return DiscountRule{}, false
	}

	switch coupon.Type {
	case CouponProgressive:
		for _, d := range coupon.ProgressiveDiscounts {
			if d.Month == couponMonthIndex {
				return DiscountRule{Type: d.DiscountType, Discount: d.Discount}, true
			}
		}
		return DiscountRule{}, false
	case CouponPercentage:
		return DiscountRule{Type: DiscountPercentage, Discount: coupon.Value}, true
	case CouponFixed:
		return DiscountRule{Type: DiscountFixed, Discount: coupon.Value}, true
	default:
		return DiscountRule{}, false
	}
}

var hundred = decimal.NewFromInt(100)

// Apply 把折扣应用到 price 上，结果不小于 0
func (r DiscountRule) Apply(price decimal.Decimal) decimal.Decimal {
	var out decimal.Decimal
	switch r.Type {
	case DiscountFixed:
		out = price.Sub(r.Discount)
	case DiscountPercentage:
		out = price.Mul(decimal.NewFromInt(1).Sub(r.Discount.Div(hundred))).Round(2)
	default:
		return price
	}
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// Label 折扣的展示文本
func (r DiscountRule) Label() string {
	switch r.Type {
	case DiscountPercentage:
		return fmt.Sprintf("%s%% off", r.Discount.String())
	case DiscountFixed:
		return fmt.Sprintf("R$ %s off", r.Discount.StringFixed(2))
	}
	return ""
}
