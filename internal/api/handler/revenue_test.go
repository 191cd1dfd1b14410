package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/billing_go_server/internal/pkg/response"
	"github.com/qs3c/billing_go_server/internal/testutil"
)

func revenueRouter(ctx *testContext) *gin.Engine {
	h := NewRevenueHandler(ctx.Revenue)
	router := gin.New()
	router.GET("/revenue/mrr", h.MRR)
	router.GET("/revenue/projections", h.Projections)
	router.GET("/subscriptions/:id/projection", h.SubscriptionProjection)
	return router
}

func TestRevenueHandler_MRR(t *testing.T) {
	ctx := setupServices(t)
	user := testutil.TestUser(t, ctx.DB)
	testutil.TestSubscription(t, ctx.DB, user.ID)
	testutil.TestSubscription(t, ctx.DB, user.ID, testutil.WithPlan("starter", "annual"))
	router := revenueRouter(ctx)

	w := performRequest(router, "GET", "/revenue/mrr?date=2026-03-15", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)
	data := dataMap(t, resp)
	// 59.90 + 299.00/12 (24.92)
	assert.Equal(t, "84.82", data["mrr"])
	assert.Equal(t, "2026-03", data["month"])
	assert.Equal(t, float64(2), data["active_count"])
	assert.Equal(t, false, data["cached"])

	resp = parseResponse(t, performRequest(router, "GET", "/revenue/mrr?date=2026-03-20", nil))
	assert.Equal(t, true, dataMap(t, resp)["cached"])
}

func TestRevenueHandler_MRR_InvalidDate(t *testing.T) {
	ctx := setupServices(t)
	router := revenueRouter(ctx)

	resp := parseResponse(t, performRequest(router, "GET", "/revenue/mrr?date=15-03-2026", nil))
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestRevenueHandler_Projections(t *testing.T) {
	ctx := setupServices(t)
	user := testutil.TestUser(t, ctx.DB)
	testutil.TestSubscription(t, ctx.DB, user.ID)
	router := revenueRouter(ctx)

	resp := parseResponse(t, performRequest(router, "GET", "/revenue/projections?date=2026-03-15", nil))
	require.Equal(t, response.CodeSuccess, resp.Code)

	data := dataMap(t, resp)
	months, ok := data["months"].([]interface{})
	require.True(t, ok)
	assert.Len(t, months, 13)
	assert.Equal(t, "Dec/2025", months[0])

	totals, ok := data["totals"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, "0.00", totals[0])
	assert.Equal(t, "59.90", totals[1])

	subs, ok := data["subscriptions"].([]interface{})
	require.True(t, ok)
	assert.Len(t, subs, 1)
}

func TestRevenueHandler_SubscriptionProjection(t *testing.T) {
	ctx := setupServices(t)
	user := testutil.TestUser(t, ctx.DB)
	sub := testutil.TestSubscription(t, ctx.DB, user.ID, testutil.WithPlan("unknown", "monthly"))
	router := revenueRouter(ctx)

	t.Run("unpriced plan is flagged", func(t *testing.T) {
		resp := parseResponse(t, performRequest(router, "GET", "/subscriptions/1/projection?date=2026-03-15", nil))
		require.Equal(t, response.CodeSuccess, resp.Code)

		data := dataMap(t, resp)
		assert.Equal(t, float64(sub.ID), data["subscription_id"])
		rows := data["rows"].([]interface{})
		require.Len(t, rows, 13)
		jan := rows[1].(map[string]interface{})
		assert.Equal(t, true, jan["applicable"])
		assert.Equal(t, true, jan["price_unavailable"])
		assert.Equal(t, "0.00", jan["value"])
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := parseResponse(t, performRequest(router, "GET", "/subscriptions/abc/projection", nil))
		assert.Equal(t, response.CodeParamError, resp.Code)
	})

	t.Run("not found", func(t *testing.T) {
		resp := parseResponse(t, performRequest(router, "GET", "/subscriptions/999/projection", nil))
		assert.Equal(t, response.CodeResourceNotFound, resp.Code)
	})
}
