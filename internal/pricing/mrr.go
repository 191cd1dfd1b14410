package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponLookup 按 ID 取优惠券快照
type CouponLookup map[string]Coupon

// CouponFor 返回订阅使用的优惠券，没有则为 nil
func (l CouponLookup) CouponFor(sub Subscription) *Coupon {
	if sub.CouponID == "" {
		return nil
	}
	coupon, ok := l[sub.CouponID]
	if !ok {
		return nil
	}
	return &coupon
}

// CurrentMonthMRR 所有 active 订阅在 today 所在月份的价格之和
func (e *Engine) CurrentMonthMRR(subs []Subscription, coupons CouponLookup, today time.Time) decimal.Decimal {
	current := YearMonthOf(today)
	total := decimal.Zero
	for _, sub := range subs {
		if sub.Status != StatusActive {
			continue
		}
		price, ok := e.PriceForMonth(sub, coupons.CouponFor(sub), current)
		if !ok || price.PriceUnavailable {
			continue
		}
		total = total.Add(price.Value)
	}
	return total
}

// MonthlyTotals 按列汇总多个订阅的 13 个月推算，用于表格底部合计
func MonthlyTotals(projections [][]ProjectionRow) []decimal.Decimal {
	if len(projections) == 0 {
		return nil
	}
	totals := make([]decimal.Decimal, len(projections[0]))
	for i := range totals {
		totals[i] = decimal.Zero
	}
	for _, rows := range projections {
		for i, row := range rows {
			if i >= len(totals) || !row.Applicable {
				continue
			}
			totals[i] = totals[i].Add(row.Value)
		}
	}
	return totals
}
