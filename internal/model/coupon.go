package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressiveDiscount 渐进式优惠券按优惠月序号（从 1 开始）定义的折扣
type ProgressiveDiscount struct {
	Month        int             `json:"month"`
	DiscountType string          `json:"discount_type"` // fixed, percentage
	Discount     decimal.Decimal `json:"discount"`
}

type Coupon struct {
	ID                   string                                   `gorm:"primaryKey;size:36" json:"id"`
	Code                 string                                   `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Type                 string                                   `gorm:"size:20;not null" json:"type"` // percentage, fixed, progressive
	Value                decimal.Decimal                          `gorm:"type:decimal(10,2)" json:"value"`
	ProgressiveDiscounts datatypes.JSONSlice[ProgressiveDiscount] `json:"progressive_discounts,omitempty"`
	CreatedAt            time.Time                                `json:"created_at"`
	UpdatedAt            time.Time                                `json:"updated_at"`
}

func (Coupon) TableName() string {
	return "coupons"
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
