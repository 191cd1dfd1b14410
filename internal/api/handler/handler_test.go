package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/billing_go_server/config"
	"github.com/qs3c/billing_go_server/internal/pkg/response"
	"github.com/qs3c/billing_go_server/internal/pricing"
	"github.com/qs3c/billing_go_server/internal/repository"
	"github.com/qs3c/billing_go_server/internal/service"
	"github.com/qs3c/billing_go_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testContext 本地测试上下文
type testContext struct {
	DB       *gorm.DB
	Revenue  *service.RevenueService
	Coupons  *service.CouponService
	Subs     *service.SubscriptionService
	Payroll  *service.PayrollService
	Checkout *service.CheckoutService
}

func setupServices(t *testing.T) *testContext {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	rdb, _ := testutil.SetupTestRedis(t)

	cfg := &config.Config{
		Pricing: config.PricingConfig{Currency: "BRL"},
		Revenue: config.RevenueConfig{CacheTTLMinutes: 5, ProjectionWorkers: 2},
	}

	subRepo := repository.NewSubscriptionRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	revenue := service.NewRevenueService(subRepo, couponRepo, pricing.NewEngine(nil, nil), rdb, cfg)

	return &testContext{
		DB:       db,
		Revenue:  revenue,
		Coupons:  service.NewCouponService(couponRepo, subRepo),
		Subs:     service.NewSubscriptionService(subRepo, couponRepo, revenue),
		Payroll:  service.NewPayrollService(),
		Checkout: service.NewCheckoutService(),
	}
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

// dataMap 取出 data 对象
func dataMap(t *testing.T, resp response.Response) map[string]interface{} {
	t.Helper()

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object, got %T", resp.Data)
	return data
}
