package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/billing_go_server/internal/model/dto"
	"github.com/qs3c/billing_go_server/internal/pkg/response"
	"github.com/qs3c/billing_go_server/internal/service"
)

type RevenueHandler struct {
	revenueService *service.RevenueService
}

func NewRevenueHandler(revenueService *service.RevenueService) *RevenueHandler {
	return &RevenueHandler{
		revenueService: revenueService,
	}
}

// MRR 当月经常性收入
// GET /api/v1/admin/revenue/mrr?date=YYYY-MM-DD
func (h *RevenueHandler) MRR(c *gin.Context) {
	var query dto.RevenueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	today, err := h.revenueService.ReferenceDate(query.Date)
	if err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.revenueService.GetMRR(c.Request.Context(), today)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, resp)
}

// Projections 全部订阅的 13 个月营收表
// GET /api/v1/admin/revenue/projections?date=YYYY-MM-DD
func (h *RevenueHandler) Projections(c *gin.Context) {
	var query dto.RevenueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	today, err := h.revenueService.ReferenceDate(query.Date)
	if err != nil {
		response.ParamError(c, err.Error())
		return
	}

	table, err := h.revenueService.GetProjectionTable(c.Request.Context(), today)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, table)
}

// SubscriptionProjection 单个订阅的 13 个月推算
// GET /api/v1/admin/subscriptions/:id/projection?date=YYYY-MM-DD
func (h *RevenueHandler) SubscriptionProjection(c *gin.Context) {
	subID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的订阅ID")
		return
	}

	var query dto.RevenueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	today, err := h.revenueService.ReferenceDate(query.Date)
	if err != nil {
		response.ParamError(c, err.Error())
		return
	}

	projection, err := h.revenueService.GetSubscriptionProjection(subID, today)
	if err != nil {
		if err == service.ErrSubscriptionNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, projection)
}
