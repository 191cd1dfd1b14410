package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func ym(year int, month time.Month) YearMonth {
	return YearMonth{Year: year, Month: month}
}

func TestYearMonth_Arithmetic(t *testing.T) {
	assert.Equal(t, ym(2026, time.January), ym(2025, time.December).AddMonths(1))
	assert.Equal(t, ym(2025, time.December), ym(2026, time.January).AddMonths(-1))
	assert.Equal(t, ym(2027, time.March), ym(2025, time.March).AddMonths(24))
	assert.Equal(t, 1, ym(2025, time.March).MonthsSince(ym(2025, time.March)))
	assert.Equal(t, 13, ym(2026, time.March).MonthsSince(ym(2025, time.March)))
	assert.Equal(t, 0, ym(2025, time.February).MonthsSince(ym(2025, time.March)))
	assert.Equal(t, "2025-03", ym(2025, time.March).String())
	assert.Equal(t, "Mar/2025", ym(2025, time.March).Label())
}

func TestParseYearMonth(t *testing.T) {
	got, err := ParseYearMonth("2025-06")
	require.NoError(t, err)
	assert.Equal(t, ym(2025, time.June), got)

	_, err = ParseYearMonth("06/2025")
	assert.ErrorIs(t, err, ErrInvalidYearMonth)
}

func TestWindow(t *testing.T) {
	months := Window(time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC))

	require.Len(t, months, 13)
	assert.Equal(t, ym(2025, time.December), months[0])
	assert.Equal(t, ym(2026, time.January), months[1])
	assert.Equal(t, ym(2026, time.December), months[12])
}

func TestMonthlyPrice(t *testing.T) {
	table := DefaultPriceTable()

	price, ok := table.MonthlyPrice(PlanPro, CycleMonthly)
	require.True(t, ok)
	assert.True(t, dec("59.90").Equal(price))

	price, ok = table.MonthlyPrice(PlanPro, CycleAnnual)
	require.True(t, ok)
	assert.True(t, dec("49.92").Equal(price), "got %s", price)

	_, ok = table.MonthlyPrice("enterprise", CycleMonthly)
	assert.False(t, ok)
}

func TestPriceTable_Merge(t *testing.T) {
	base := DefaultPriceTable()
	merged := base.Merge(PriceTable{PlanStarter: {CycleMonthly: dec("19.90")}})

	price, _ := merged.MonthlyPrice(PlanStarter, CycleMonthly)
	assert.True(t, dec("19.90").Equal(price))
	price, _ = merged.MonthlyPrice(PlanStarter, CycleAnnual)
	assert.True(t, dec("24.92").Equal(price))

	original, _ := base.MonthlyPrice(PlanStarter, CycleMonthly)
	assert.True(t, dec("29.90").Equal(original))
}

func TestPriceForMonth_BeforeStartIsNotApplicable(t *testing.T) {
	engine := NewEngine(nil, nil)
	sub := Subscription{Plan: PlanPro, BillingCycle: CycleMonthly, StartDate: date(2026, time.March, 10)}

	_, ok := engine.PriceForMonth(sub, nil, ym(2026, time.February))
	assert.False(t, ok)

	price, ok := engine.PriceForMonth(sub, nil, ym(2026, time.March))
	require.True(t, ok)
	assert.True(t, dec("59.90").Equal(price.Value))
	assert.Empty(t, price.DiscountLabel)
}

func TestPriceForMonth_FirstMonthOverrideBypassesCoupon(t *testing.T) {
	engine := NewEngine(nil, nil)
	override := dec("10")
	sub := Subscription{
		Plan:                    PlanPro,
		BillingCycle:            CycleMonthly,
		StartDate:               date(2026, time.January, 5),
		FirstMonthOverridePrice: &override,
	}
	coupon := Coupon{Type: CouponPercentage, Value: dec("50")}

	price, ok := engine.PriceForMonth(sub, &coupon, ym(2026, time.January))
	require.True(t, ok)
	assert.True(t, dec("10").Equal(price.Value))
	assert.Equal(t, LabelFirstMonthOverride, price.DiscountLabel)

	price, ok = engine.PriceForMonth(sub, &coupon, ym(2026, time.February))
	require.True(t, ok)
	assert.True(t, dec("29.95").Equal(price.Value))
	assert.Equal(t, "50% off", price.DiscountLabel)
}

func TestPriceForMonth_ProgressiveRidesSubscriberCounter(t *testing.T) {
	engine := NewEngine(nil, nil)
	sub := Subscription{Plan: PlanPro, BillingCycle: CycleMonthly, StartDate: date(2026, time.January, 1)}
	coupon := gapCoupon()

	want := map[time.Month]string{
		time.January:  "29.95",
		time.February: "59.90",
		time.March:    "47.92",
		time.April:    "59.90",
	}
	for month, value := range want {
		price, ok := engine.PriceForMonth(sub, &coupon, ym(2026, month))
		require.True(t, ok)
		assert.True(t, dec(value).Equal(price.Value), "%s: got %s want %s", month, price.Value, value)
	}
}

func TestPriceForMonth_CouponStartMonth(t *testing.T) {
	engine := NewEngine(nil, nil)
	sub := Subscription{
		Plan:             PlanPro,
		BillingCycle:     CycleMonthly,
		StartDate:        date(2025, time.January, 1),
		CouponID:         "c-gap",
		CouponStartMonth: "2025-06",
	}
	coupon := gapCoupon()

	price, ok := engine.PriceForMonth(sub, &coupon, ym(2025, time.May))
	require.True(t, ok)
	assert.True(t, dec("59.90").Equal(price.Value))
	assert.Empty(t, price.DiscountLabel)

	price, _ = engine.PriceForMonth(sub, &coupon, ym(2025, time.June))
	assert.True(t, dec("29.95").Equal(price.Value))

	price, _ = engine.PriceForMonth(sub, &coupon, ym(2025, time.July))
	assert.True(t, dec("59.90").Equal(price.Value))

	price, _ = engine.PriceForMonth(sub, &coupon, ym(2025, time.August))
	assert.True(t, dec("47.92").Equal(price.Value))
}

func TestPriceForMonth_FlatCouponInactiveBeforeCouponStart(t *testing.T) {
	engine := NewEngine(nil, nil)
	sub := Subscription{
		Plan:             PlanStarter,
		BillingCycle:     CycleMonthly,
		StartDate:        date(2025, time.January, 1),
		CouponStartMonth: "2025-03",
	}
	coupon := Coupon{Type: CouponFixed, Value: dec("10")}

	price, _ := engine.PriceForMonth(sub, &coupon, ym(2025, time.February))
	assert.True(t, dec("29.90").Equal(price.Value))

	price, _ = engine.PriceForMonth(sub, &coupon, ym(2025, time.March))
	assert.True(t, dec("19.90").Equal(price.Value))
}

func TestPriceForMonth_FixedCouponFloorsAtZero(t *testing.T) {
	engine := NewEngine(nil, nil)
	sub := Subscription{Plan: PlanStarter, BillingCycle: CycleMonthly, StartDate: date(2026, time.January, 1)}
	coupon := Coupon{Type: CouponFixed, Value: dec("500")}

	price, ok := engine.PriceForMonth(sub, &coupon, ym(2026, time.April))
	require.True(t, ok)
	assert.True(t, price.Value.IsZero())
	assert.False(t, price.PriceUnavailable)
	assert.Equal(t, "R$ 500.00 off", price.DiscountLabel)
}

func TestPriceForMonth_UnknownPlan(t *testing.T) {
	engine := NewEngine(nil, nil)
	sub := Subscription{ID: 7, Plan: "enterprise", BillingCycle: CycleMonthly, StartDate: date(2026, time.January, 1)}

	price, ok := engine.PriceForMonth(sub, nil, ym(2026, time.May))
	require.True(t, ok)
	assert.True(t, price.PriceUnavailable)
	assert.True(t, price.Value.IsZero())
}

func TestPriceForMonth_ZeroPlanPriceSkipsCoupon(t *testing.T) {
	engine := NewEngine(PriceTable{PlanStarter: {CycleMonthly: decimal.Zero}}, nil)
	sub := Subscription{Plan: PlanStarter, BillingCycle: CycleMonthly, StartDate: date(2026, time.January, 1)}
	coupon := Coupon{Type: CouponFixed, Value: dec("5")}

	price, ok := engine.PriceForMonth(sub, &coupon, ym(2026, time.February))
	require.True(t, ok)
	assert.True(t, price.Value.IsZero())
	assert.Empty(t, price.DiscountLabel)
}

func TestStartMonth_Fallbacks(t *testing.T) {
	assert.Equal(t, ym(2025, time.April), StartMonth(Subscription{
		StartDate:        date(2025, time.April, 30),
		AccountCreatedAt: date(2024, time.January, 1),
	}))
	assert.Equal(t, ym(2024, time.January), StartMonth(Subscription{AccountCreatedAt: date(2024, time.January, 1)}))
	assert.Equal(t, ym(1970, time.January), StartMonth(Subscription{}))
}

func TestProject_ThirteenRows(t *testing.T) {
	engine := NewEngine(nil, nil)
	sub := Subscription{Plan: PlanFamily, BillingCycle: CycleMonthly, StartDate: date(2026, time.March, 15)}
	coupon := gapCoupon()

	rows := engine.Project(sub, &coupon, time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC))

	require.Len(t, rows, 13)
	assert.Equal(t, "Dec/2025", rows[0].MonthName)
	for _, row := range rows[:3] {
		assert.False(t, row.Applicable, row.MonthName)
	}
	assert.True(t, rows[3].Applicable)
	assert.Equal(t, ym(2026, time.March), rows[3].Month)
	assert.True(t, dec("44.95").Equal(rows[3].Value))
	assert.Equal(t, "50% off", rows[3].DiscountLabel)
	assert.True(t, dec("89.90").Equal(rows[4].Value))
	assert.True(t, dec("71.92").Equal(rows[5].Value))
	assert.True(t, dec("89.90").Equal(rows[12].Value))
}

func TestProject_NoStartDateIsAlwaysActive(t *testing.T) {
	engine := NewEngine(nil, nil)
	rows := engine.Project(Subscription{Plan: PlanStarter, BillingCycle: CycleMonthly}, nil, time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC))

	for _, row := range rows {
		assert.True(t, row.Applicable)
		assert.True(t, dec("29.90").Equal(row.Value))
	}
}
