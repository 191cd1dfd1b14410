package dto

// RevenueQuery 营收查询参数，date 为空时使用当天
type RevenueQuery struct {
	Date string `form:"date"` // YYYY-MM-DD
}

// MRRResponse 当月经常性收入
type MRRResponse struct {
	Month       string `json:"month"`
	MRR         string `json:"mrr"`
	Currency    string `json:"currency"`
	ActiveCount int    `json:"active_count"`
	Cached      bool   `json:"cached"`
}

// ProjectionRowItem 单月价格；applicable=false 表示该月订阅尚未开始
type ProjectionRowItem struct {
	Month            string `json:"month"`
	MonthName        string `json:"month_name"`
	Value            string `json:"value"`
	DiscountLabel    string `json:"discount_label,omitempty"`
	Applicable       bool   `json:"applicable"`
	PriceUnavailable bool   `json:"price_unavailable,omitempty"`
}

// SubscriptionProjection 单个订阅的 13 个月推算
type SubscriptionProjection struct {
	SubscriptionID int64               `json:"subscription_id"`
	UserID         int64               `json:"user_id"`
	Plan           string              `json:"plan"`
	BillingCycle   string              `json:"billing_cycle"`
	Status         string              `json:"status"`
	CouponCode     string              `json:"coupon_code,omitempty"`
	Rows           []ProjectionRowItem `json:"rows"`
}

// ProjectionTable 全部订阅的营收表
type ProjectionTable struct {
	Months        []string                 `json:"months"`
	Subscriptions []SubscriptionProjection `json:"subscriptions"`
	Totals        []string                 `json:"totals"`
}
