package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/billing_go_server/internal/model/dto"
	"github.com/qs3c/billing_go_server/internal/pkg/response"
	"github.com/qs3c/billing_go_server/internal/service"
)

type PayrollHandler struct {
	payrollService *service.PayrollService
}

func NewPayrollHandler(payrollService *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{
		payrollService: payrollService,
	}
}

// Withholding 月薪预扣
// POST /api/v1/admin/payroll/withholding
func (h *PayrollHandler) Withholding(c *gin.Context) {
	var req dto.WithholdingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.payrollService.Withholding(&req)
	if err != nil {
		response.ParamError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// Extra 额外收入的边际税额
// POST /api/v1/admin/payroll/extra
func (h *PayrollHandler) Extra(c *gin.Context) {
	var req dto.ExtraIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.payrollService.ExtraIncome(&req)
	if err != nil {
		response.ParamError(c, err.Error())
		return
	}

	response.Success(c, resp)
}
