package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qs3c/billing_go_server/internal/model"
)

// TestUser 创建测试账户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	user := &model.User{
		Name: fmt.Sprintf("testuser_%d", time.Now().UnixNano()%10000),
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithAdmin 设为管理员
func WithAdmin() func(*model.User) {
	return func(u *model.User) {
		u.IsAdmin = true
	}
}

// WithCreatedAt 设置账户创建时间
func WithCreatedAt(createdAt time.Time) func(*model.User) {
	return func(u *model.User) {
		u.CreatedAt = createdAt
	}
}

// TestSubscription 创建测试订阅，默认 pro 月付、active
func TestSubscription(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	start := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	sub := &model.Subscription{
		UserID:       userID,
		Plan:         "pro",
		BillingCycle: "monthly",
		Status:       "active",
		StartDate:    &start,
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// WithPlan 设置套餐和计费周期
func WithPlan(plan, cycle string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Plan = plan
		s.BillingCycle = cycle
	}
}

// WithSubscriptionStatus 设置订阅状态
func WithSubscriptionStatus(status string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Status = status
	}
}

// WithStartDate 设置开始日期，nil 表示没有记录
func WithStartDate(start *time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.StartDate = start
	}
}

// WithCoupon 设置优惠券及开始计数的月份
func WithCoupon(couponID, startMonth string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.CouponUsed = &couponID
		s.CouponStartMonth = startMonth
	}
}

// WithFirstMonthPrice 设置首月固定价
func WithFirstMonthPrice(price string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		p := decimal.RequireFromString(price)
		s.FirstMonthOverridePrice = &p
	}
}

var couponSeq int64

// TestCoupon 创建测试优惠券，默认 10% 折扣
func TestCoupon(t *testing.T, db *gorm.DB, opts ...func(*model.Coupon)) *model.Coupon {
	t.Helper()

	coupon := &model.Coupon{
		Code:  fmt.Sprintf("TEST%d", atomic.AddInt64(&couponSeq, 1)),
		Type:  "percentage",
		Value: decimal.NewFromInt(10),
	}

	for _, opt := range opts {
		opt(coupon)
	}

	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("Failed to create test coupon: %v", err)
	}

	return coupon
}

// WithCouponCode 设置优惠码
func WithCouponCode(code string) func(*model.Coupon) {
	return func(c *model.Coupon) {
		c.Code = code
	}
}

// WithFlatDiscount 设置 percentage / fixed 折扣
func WithFlatDiscount(couponType, value string) func(*model.Coupon) {
	return func(c *model.Coupon) {
		c.Type = couponType
		c.Value = decimal.RequireFromString(value)
	}
}

// WithProgressive 设置为渐进式优惠券
func WithProgressive(discounts ...model.ProgressiveDiscount) func(*model.Coupon) {
	return func(c *model.Coupon) {
		c.Type = "progressive"
		c.Value = decimal.Zero
		c.ProgressiveDiscounts = discounts
	}
}
