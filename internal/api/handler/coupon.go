package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/billing_go_server/internal/model/dto"
	"github.com/qs3c/billing_go_server/internal/pkg/response"
	"github.com/qs3c/billing_go_server/internal/service"
)

type CouponHandler struct {
	couponService *service.CouponService
}

func NewCouponHandler(couponService *service.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// List 优惠券列表
// GET /api/v1/admin/coupons
func (h *CouponHandler) List(c *gin.Context) {
	items, err := h.couponService.List()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// Create 创建优惠券
// POST /api/v1/admin/coupons
func (h *CouponHandler) Create(c *gin.Context) {
	var req dto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.couponService.Create(&req)
	if err != nil {
		switch err {
		case service.ErrCouponCodeExists:
			response.DuplicateError(c, err.Error())
		case service.ErrInvalidCouponValue,
			service.ErrProgressiveRulesMissing,
			service.ErrDuplicateCouponMonth,
			service.ErrInvalidCouponMonth:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "创建成功", item)
}

// Resolve 预览优惠券在第 month 个优惠月的折扣
// GET /api/v1/admin/coupons/:id/resolve?month=N
func (h *CouponHandler) Resolve(c *gin.Context) {
	var query dto.ResolveCouponQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.couponService.Resolve(c.Param("id"), *query.Month)
	if err != nil {
		switch err {
		case service.ErrCouponNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrInvalidCouponMonth:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, resp)
}
