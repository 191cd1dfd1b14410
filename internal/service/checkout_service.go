package service

import (
	"time"

	"github.com/qs3c/billing_go_server/internal/payment"
)

type CheckoutService struct {
	now func() time.Time
}

func NewCheckoutService() *CheckoutService {
	return &CheckoutService{now: time.Now}
}

// ValidateCard 结账前逐项校验卡信息，不调用任何支付网关
func (s *CheckoutService) ValidateCard(in payment.CreditCardInput) payment.CardCheck {
	return payment.ValidateCard(in, s.now())
}
