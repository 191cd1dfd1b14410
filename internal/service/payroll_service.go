package service

import (
	"errors"

	"github.com/qs3c/billing_go_server/internal/model/dto"
	"github.com/qs3c/billing_go_server/internal/payroll"
)

var ErrNegativeAmount = errors.New("金额不能为负数")

type PayrollService struct{}

func NewPayrollService() *PayrollService {
	return &PayrollService{}
}

// Withholding 月薪的 INSS 与 IRRF 预扣，自动选择税额更低的计税基数
func (s *PayrollService) Withholding(req *dto.WithholdingRequest) (*dto.WithholdingResponse, error) {
	if req.Gross.IsNegative() {
		return nil, ErrNegativeAmount
	}

	r := payroll.Withholding(req.Gross, req.Dependents)
	return &dto.WithholdingResponse{
		Gross:        r.Gross.StringFixed(2),
		Dependents:   r.Dependents,
		Contribution: r.Contribution.StringFixed(2),
		IncomeTax:    r.IncomeTax.StringFixed(2),
		Net:          r.Net.StringFixed(2),
		AppliedBase:  string(r.AppliedBase),
		Legal: dto.TaxBaseItem{
			Base: r.Legal.Base.StringFixed(2),
			Tax:  r.Legal.Tax.StringFixed(2),
		},
		Simplified: dto.TaxBaseItem{
			Base: r.Simplified.Base.StringFixed(2),
			Tax:  r.Simplified.Tax.StringFixed(2),
		},
	}, nil
}

// ExtraIncome 在已有月薪之上增加一笔收入时的边际税额与到手金额
func (s *PayrollService) ExtraIncome(req *dto.ExtraIncomeRequest) (*dto.ExtraIncomeResponse, error) {
	if req.Base.IsNegative() || req.Extra.IsNegative() {
		return nil, ErrNegativeAmount
	}

	r := payroll.ExtraIncome(req.Base, req.Extra, req.Dependents)
	return &dto.ExtraIncomeResponse{
		Base:  r.Base.StringFixed(2),
		Extra: r.Extra.StringFixed(2),
		Tax:   r.Tax.StringFixed(2),
		Net:   r.Net.StringFixed(2),
	}, nil
}
