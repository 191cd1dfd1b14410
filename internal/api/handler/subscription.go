package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/billing_go_server/internal/model/dto"
	"github.com/qs3c/billing_go_server/internal/pkg/response"
	"github.com/qs3c/billing_go_server/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// Cancel 取消订阅
// POST /api/v1/admin/subscriptions/:id/cancel
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	subID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的订阅ID")
		return
	}

	info, err := h.subscriptionService.Cancel(c.Request.Context(), subID)
	if err != nil {
		writeSubscriptionError(c, err)
		return
	}

	response.SuccessWithMessage(c, "订阅已取消", info)
}

// ApplyCoupon 为订阅绑定优惠券
// POST /api/v1/admin/subscriptions/:id/coupon
func (h *SubscriptionHandler) ApplyCoupon(c *gin.Context) {
	subID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的订阅ID")
		return
	}

	var req dto.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.subscriptionService.ApplyCoupon(c.Request.Context(), subID, &req)
	if err != nil {
		writeSubscriptionError(c, err)
		return
	}

	response.SuccessWithMessage(c, "优惠券已绑定", info)
}

func writeSubscriptionError(c *gin.Context, err error) {
	switch err {
	case service.ErrSubscriptionNotFound, service.ErrCouponNotFound:
		response.NotFoundError(c, err.Error())
	case service.ErrSubscriptionCanceled:
		response.ConflictError(c, err.Error())
	case service.ErrInvalidCouponStart:
		response.ParamError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
