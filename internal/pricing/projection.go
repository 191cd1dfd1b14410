package pricing

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive         Status = "active"
	StatusCanceled       Status = "canceled"
	StatusPastDue        Status = "past_due"
	StatusPendingPayment Status = "pending_payment"
	StatusRefunded       Status = "refunded"
)

// LabelFirstMonthOverride 首月固定价的折扣标签
const LabelFirstMonthOverride = "first-month override"

// epoch 没有任何开始时间的订阅视为一直有效
var epoch = YearMonth{Year: 1970, Month: time.January}

// Subscription 订阅快照，引擎只读
type Subscription struct {
	ID                      int64
	Plan                    Plan
	BillingCycle            BillingCycle
	Status                  Status
	StartDate               *time.Time
	AccountCreatedAt        *time.Time
	CouponID                string
	CouponStartMonth        string
	FirstMonthOverridePrice *decimal.Decimal
}

// MonthPrice 某订阅在某月的价格
type MonthPrice struct {
	Value            decimal.Decimal
	DiscountLabel    string
	PriceUnavailable bool
}

// ProjectionRow 营收表中的一行（一个订阅的一个月）
type ProjectionRow struct {
	Month            YearMonth
	MonthName        string
	Value            decimal.Decimal
	DiscountLabel    string
	Applicable       bool
	PriceUnavailable bool
}

// Engine 价格推算引擎，无状态，可并发使用
type Engine struct {
	Prices PriceTable
	Logger *slog.Logger
}

func NewEngine(prices PriceTable, logger *slog.Logger) *Engine {
	if prices == nil {
		prices = DefaultPriceTable()
	}
	return &Engine{Prices: prices, Logger: logger}
}

// StartMonth 订阅计数的起始月份：开始日期 > 账户创建时间 > epoch
func StartMonth(sub Subscription) YearMonth {
	if sub.StartDate != nil && !sub.StartDate.IsZero() {
		return YearMonthOf(*sub.StartDate)
	}
	if sub.AccountCreatedAt != nil && !sub.AccountCreatedAt.IsZero() {
		return YearMonthOf(*sub.AccountCreatedAt)
	}
	return epoch
}

// CouponMonthIndex 优惠月序号。设置了 CouponStartMonth 时从该月开始计数，
// 目标月份早于它则返回 -1；否则沿用订阅月序号。
func CouponMonthIndex(sub Subscription, target YearMonth, subscriberMonthIndex int) int {
	if sub.CouponStartMonth == "" {
		return subscriberMonthIndex
	}
	couponStart, err := ParseYearMonth(sub.CouponStartMonth)
	if err != nil {
		return subscriberMonthIndex
	}
	if target.Before(couponStart) {
		return -1
	}
	return target.MonthsSince(couponStart)
}

// PriceForMonth 计算订阅在 target 月应付的金额。
// 第二个返回值为 false 表示该月订阅尚未开始。coupon 为 nil 表示未使用优惠券。
func (e *Engine) PriceForMonth(sub Subscription, coupon *Coupon, target YearMonth) (MonthPrice, bool) {
	subscriberMonthIndex := target.MonthsSince(StartMonth(sub))
	if subscriberMonthIndex < 1 {
		return MonthPrice{}, false
	}

	if subscriberMonthIndex == 1 && sub.FirstMonthOverridePrice != nil {
		return MonthPrice{Value: *sub.FirstMonthOverridePrice, DiscountLabel: LabelFirstMonthOverride}, true
	}

	planPrice, ok := e.Prices.MonthlyPrice(sub.Plan, sub.BillingCycle)
	if !ok {
		e.logger().Warn("no price for subscription plan",
			"subscription_id", sub.ID,
			"plan", string(sub.Plan),
			"billing_cycle", string(sub.BillingCycle),
		)
		return MonthPrice{Value: decimal.Zero, PriceUnavailable: true}, true
	}

	if coupon == nil || !planPrice.IsPositive() {
		return MonthPrice{Value: planPrice}, true
	}

	rule, ok := Resolve(*coupon, CouponMonthIndex(sub, target, subscriberMonthIndex))
	if !ok {
		return MonthPrice{Value: planPrice}, true
	}
	return MonthPrice{Value: rule.Apply(planPrice), DiscountLabel: rule.Label()}, true
}

// Project 在 13 个月视图上推算单个订阅的价格
func (e *Engine) Project(sub Subscription, coupon *Coupon, today time.Time) []ProjectionRow {
	window := Window(today)
	rows := make([]ProjectionRow, len(window))
	for i, month := range window {
		row := ProjectionRow{Month: month, MonthName: month.Label(), Value: decimal.Zero}
		if price, ok := e.PriceForMonth(sub, coupon, month); ok {
			row.Applicable = true
			row.Value = price.Value
			row.DiscountLabel = price.DiscountLabel
			row.PriceUnavailable = price.PriceUnavailable
		}
		rows[i] = row
	}
	return rows
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
