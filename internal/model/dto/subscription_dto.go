package dto

// ApplyCouponRequest 为订阅绑定优惠券，coupon_id 与 coupon_code 二选一，同时给出时以 coupon_id 为准
type ApplyCouponRequest struct {
	CouponID         string `json:"coupon_id" binding:"required_without=CouponCode"`
	CouponCode       string `json:"coupon_code"`
	CouponStartMonth string `json:"coupon_start_month"` // YYYY-MM，为空时沿用订阅月序号
}

// SubscriptionInfo 订阅信息
type SubscriptionInfo struct {
	ID               int64  `json:"id"`
	UserID           int64  `json:"user_id"`
	Plan             string `json:"plan"`
	BillingCycle     string `json:"billing_cycle"`
	Status           string `json:"status"`
	StartDate        string `json:"start_date,omitempty"`
	CouponUsed       string `json:"coupon_used,omitempty"`
	CouponStartMonth string `json:"coupon_start_month,omitempty"`
}
