package service

import (
	"time"

	"github.com/qs3c/billing_go_server/internal/model"
	"github.com/qs3c/billing_go_server/internal/model/dto"
	"github.com/qs3c/billing_go_server/internal/pricing"
)

// toPricingSubscription 持久化模型转为引擎使用的只读快照
func toPricingSubscription(m *model.Subscription) pricing.Subscription {
	sub := pricing.Subscription{
		ID:                      m.ID,
		Plan:                    pricing.Plan(m.Plan),
		BillingCycle:            pricing.BillingCycle(m.BillingCycle),
		Status:                  pricing.Status(m.Status),
		StartDate:               m.StartDate,
		CouponStartMonth:        m.CouponStartMonth,
		FirstMonthOverridePrice: m.FirstMonthOverridePrice,
	}
	if m.CouponUsed != nil {
		sub.CouponID = *m.CouponUsed
	}
	if m.User != nil && !m.User.CreatedAt.IsZero() {
		createdAt := m.User.CreatedAt
		sub.AccountCreatedAt = &createdAt
	}
	return sub
}

func toPricingCoupon(m *model.Coupon) pricing.Coupon {
	coupon := pricing.Coupon{
		ID:    m.ID,
		Code:  m.Code,
		Type:  pricing.CouponType(m.Type),
		Value: m.Value,
	}
	for _, d := range m.ProgressiveDiscounts {
		coupon.ProgressiveDiscounts = append(coupon.ProgressiveDiscounts, pricing.ProgressiveDiscount{
			Month:        d.Month,
			DiscountType: pricing.DiscountType(d.DiscountType),
			Discount:     d.Discount,
		})
	}
	return coupon
}

func toCouponItem(m *model.Coupon) *dto.CouponItem {
	item := &dto.CouponItem{
		ID:        m.ID,
		Code:      m.Code,
		Type:      m.Type,
		Value:     m.Value.StringFixed(2),
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	for _, d := range m.ProgressiveDiscounts {
		item.ProgressiveDiscounts = append(item.ProgressiveDiscounts, dto.ProgressiveDiscountItem{
			Month:        d.Month,
			DiscountType: d.DiscountType,
			Discount:     d.Discount,
		})
	}
	return item
}

func toProjectionRows(rows []pricing.ProjectionRow) []dto.ProjectionRowItem {
	items := make([]dto.ProjectionRowItem, len(rows))
	for i, row := range rows {
		items[i] = dto.ProjectionRowItem{
			Month:            row.Month.String(),
			MonthName:        row.MonthName,
			Value:            row.Value.StringFixed(2),
			DiscountLabel:    row.DiscountLabel,
			Applicable:       row.Applicable,
			PriceUnavailable: row.PriceUnavailable,
		}
	}
	return items
}
