package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/billing_go_server/internal/payment"
	"github.com/qs3c/billing_go_server/internal/pkg/response"
	"github.com/qs3c/billing_go_server/internal/service"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// Validate 结账前校验卡信息。格式错误的请求体返回参数错误，
// 字段不合法时仍返回成功，由 data.valid 和 data.invalid 说明
// POST /api/v1/checkout/validate
func (h *CheckoutHandler) Validate(c *gin.Context) {
	var in payment.CreditCardInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	response.Success(c, h.checkoutService.ValidateCard(in))
}
