package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Subscription struct {
	ID                      int64            `gorm:"primaryKey" json:"id"`
	UserID                  int64            `gorm:"not null;index" json:"user_id"`
	User                    *User            `gorm:"foreignKey:UserID" json:"-"`
	Plan                    string           `gorm:"size:20;not null" json:"plan"`                          // starter, pro, family
	BillingCycle            string           `gorm:"size:20;not null;default:monthly" json:"billing_cycle"` // monthly, annual
	Status                  string           `gorm:"size:20;default:active;index" json:"status"`            // active, canceled, past_due, pending_payment, refunded
	StartDate               *time.Time       `json:"start_date,omitempty"`
	CouponUsed              *string          `gorm:"size:36;index" json:"coupon_used,omitempty"`
	CouponStartMonth        string           `gorm:"size:7" json:"coupon_start_month,omitempty"` // YYYY-MM
	FirstMonthOverridePrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"first_month_override_price,omitempty"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
