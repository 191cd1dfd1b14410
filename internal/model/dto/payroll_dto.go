package dto

import (
	"github.com/shopspring/decimal"
)

// WithholdingRequest 工资预扣计算请求
type WithholdingRequest struct {
	Gross      decimal.Decimal `json:"gross"`
	Dependents int             `json:"dependents"`
}

// TaxBaseItem 一种计税基数及税额
type TaxBaseItem struct {
	Base string `json:"base"`
	Tax  string `json:"tax"`
}

// WithholdingResponse 工资预扣结果
type WithholdingResponse struct {
	Gross        string      `json:"gross"`
	Dependents   int         `json:"dependents"`
	Contribution string      `json:"contribution"`
	IncomeTax    string      `json:"income_tax"`
	Net          string      `json:"net"`
	AppliedBase  string      `json:"applied_base"`
	Legal        TaxBaseItem `json:"legal"`
	Simplified   TaxBaseItem `json:"simplified"`
}

// ExtraIncomeRequest 额外收入税后计算请求
type ExtraIncomeRequest struct {
	Base       decimal.Decimal `json:"base"`
	Extra      decimal.Decimal `json:"extra"`
	Dependents int             `json:"dependents"`
}

// ExtraIncomeResponse 额外收入税后结果
type ExtraIncomeResponse struct {
	Base  string `json:"base"`
	Extra string `json:"extra"`
	Tax   string `json:"tax"`
	Net   string `json:"net"`
}
