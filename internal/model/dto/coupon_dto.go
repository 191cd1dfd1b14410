package dto

import (
	"github.com/shopspring/decimal"
)

// ProgressiveDiscountItem 渐进式折扣规则
type ProgressiveDiscountItem struct {
	Month        int             `json:"month" binding:"required,min=1"`
	DiscountType string          `json:"discount_type" binding:"required,oneof=fixed percentage"`
	Discount     decimal.Decimal `json:"discount"`
}

// CreateCouponRequest 创建优惠券请求
type CreateCouponRequest struct {
	Code                 string                    `json:"code" binding:"required,min=3,max=50"`
	Type                 string                    `json:"type" binding:"required,oneof=percentage fixed progressive"`
	Value                decimal.Decimal           `json:"value"`
	ProgressiveDiscounts []ProgressiveDiscountItem `json:"progressive_discounts" binding:"omitempty,dive"`
}

// CouponItem 优惠券信息
type CouponItem struct {
	ID                   string                    `json:"id"`
	Code                 string                    `json:"code"`
	Type                 string                    `json:"type"`
	Value                string                    `json:"value"`
	ProgressiveDiscounts []ProgressiveDiscountItem `json:"progressive_discounts,omitempty"`
	Redemptions          int64                     `json:"redemptions"` // 绑定了该券的订阅数，含已取消
	CreatedAt            string                    `json:"created_at"`
}

// ResolveCouponQuery 预览某个优惠月序号的折扣
type ResolveCouponQuery struct {
	Month *int `form:"month" binding:"required"`
}

// ResolveCouponResponse 折扣预览结果，matched=false 表示该月按原价
type ResolveCouponResponse struct {
	CouponID     string `json:"coupon_id"`
	Month        int    `json:"month"`
	Matched      bool   `json:"matched"`
	DiscountType string `json:"discount_type,omitempty"`
	Discount     string `json:"discount,omitempty"`
	Label        string `json:"label,omitempty"`
}
