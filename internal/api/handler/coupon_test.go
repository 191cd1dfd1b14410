package handler

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/billing_go_server/internal/pkg/response"
	"github.com/qs3c/billing_go_server/internal/testutil"
)

func couponRouter(ctx *testContext) *gin.Engine {
	h := NewCouponHandler(ctx.Coupons)
	router := gin.New()
	router.GET("/coupons", h.List)
	router.POST("/coupons", h.Create)
	router.GET("/coupons/:id/resolve", h.Resolve)
	return router
}

func TestCouponHandler_Create(t *testing.T) {
	ctx := setupServices(t)
	router := couponRouter(ctx)

	body := map[string]interface{}{
		"code": "STEPS",
		"type": "progressive",
		"progressive_discounts": []map[string]interface{}{
			{"month": 1, "discount_type": "percentage", "discount": 50},
			{"month": 3, "discount_type": "fixed", "discount": "10"},
		},
	}
	resp := parseResponse(t, performRequest(router, "POST", "/coupons", body))
	require.Equal(t, response.CodeSuccess, resp.Code)

	data := dataMap(t, resp)
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "STEPS", data["code"])

	t.Run("duplicate code", func(t *testing.T) {
		resp := parseResponse(t, performRequest(router, "POST", "/coupons", body))
		assert.Equal(t, response.CodeDuplicateAction, resp.Code)
	})

	t.Run("listed", func(t *testing.T) {
		resp := parseResponse(t, performRequest(router, "GET", "/coupons", nil))
		require.Equal(t, response.CodeSuccess, resp.Code)
		items, ok := resp.Data.([]interface{})
		require.True(t, ok)
		require.Len(t, items, 1)
		assert.Equal(t, float64(0), items[0].(map[string]interface{})["redemptions"])
	})
}

func TestCouponHandler_Create_Invalid(t *testing.T) {
	ctx := setupServices(t)
	router := couponRouter(ctx)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing code", map[string]interface{}{"type": "fixed", "value": 5}},
		{"unknown type", map[string]interface{}{"code": "ODD", "type": "bogus", "value": 5}},
		{"percentage above 100", map[string]interface{}{"code": "HUGE", "type": "percentage", "value": 120}},
		{"progressive duplicate month", map[string]interface{}{
			"code": "DUP",
			"type": "progressive",
			"progressive_discounts": []map[string]interface{}{
				{"month": 2, "discount_type": "fixed", "discount": 5},
				{"month": 2, "discount_type": "fixed", "discount": 7},
			},
		}},
		{"progressive month zero", map[string]interface{}{
			"code": "ZERO",
			"type": "progressive",
			"progressive_discounts": []map[string]interface{}{
				{"month": 0, "discount_type": "fixed", "discount": 5},
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := parseResponse(t, performRequest(router, "POST", "/coupons", tt.body))
			assert.Equal(t, response.CodeParamError, resp.Code)
		})
	}
}

func TestCouponHandler_Resolve(t *testing.T) {
	ctx := setupServices(t)
	coupon := testutil.TestCoupon(t, ctx.DB, testutil.WithFlatDiscount("fixed", "10"))
	router := couponRouter(ctx)

	resp := parseResponse(t, performRequest(router, "GET", "/coupons/"+coupon.ID+"/resolve?month=4", nil))
	require.Equal(t, response.CodeSuccess, resp.Code)
	data := dataMap(t, resp)
	assert.Equal(t, true, data["matched"])
	assert.Equal(t, "R$ 10.00 off", data["label"])

	resp = parseResponse(t, performRequest(router, "GET", "/coupons/"+coupon.ID+"/resolve", nil))
	assert.Equal(t, response.CodeParamError, resp.Code)

	resp = parseResponse(t, performRequest(router, "GET", "/coupons/"+coupon.ID+"/resolve?month=0", nil))
	assert.Equal(t, response.CodeParamError, resp.Code)

	resp = parseResponse(t, performRequest(router, "GET", "/coupons/missing/resolve?month=1", nil))
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}
