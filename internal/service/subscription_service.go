package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/billing_go_server/internal/model"
	"github.com/qs3c/billing_go_server/internal/model/dto"
	"github.com/qs3c/billing_go_server/internal/pricing"
	"github.com/qs3c/billing_go_server/internal/repository"
)

var (
	ErrSubscriptionCanceled = errors.New("订阅已取消")
	ErrInvalidCouponStart   = errors.New("优惠开始月份格式错误，应为 YYYY-MM")
)

type SubscriptionService struct {
	subRepo    *repository.SubscriptionRepository
	couponRepo *repository.CouponRepository
	revenue    *RevenueService
}

func NewSubscriptionService(
	subRepo *repository.SubscriptionRepository,
	couponRepo *repository.CouponRepository,
	revenue *RevenueService,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:    subRepo,
		couponRepo: couponRepo,
		revenue:    revenue,
	}
}

// Cancel 取消订阅，之后不再计入 MRR
func (s *SubscriptionService) Cancel(ctx context.Context, id int64) (*dto.SubscriptionInfo, error) {
	sub, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if sub.Status == string(pricing.StatusCanceled) {
		return nil, ErrSubscriptionCanceled
	}

	if err := s.subRepo.UpdateFields(id, map[string]interface{}{
		"status": string(pricing.StatusCanceled),
	}); err != nil {
		return nil, err
	}
	sub.Status = string(pricing.StatusCanceled)

	s.revenue.InvalidateMRR(ctx)
	return toSubscriptionInfo(sub), nil
}

// ApplyCoupon 绑定优惠券；couponStartMonth 为空时优惠月序号跟随订阅月序号
func (s *SubscriptionService) ApplyCoupon(ctx context.Context, id int64, req *dto.ApplyCouponRequest) (*dto.SubscriptionInfo, error) {
	if req.CouponStartMonth != "" {
		if _, err := pricing.ParseYearMonth(req.CouponStartMonth); err != nil {
			return nil, ErrInvalidCouponStart
		}
	}

	sub, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if sub.Status == string(pricing.StatusCanceled) {
		return nil, ErrSubscriptionCanceled
	}

	coupon, err := s.findCoupon(req)
	if err != nil {
		return nil, err
	}

	if err := s.subRepo.UpdateFields(id, map[string]interface{}{
		"coupon_used":        coupon.ID,
		"coupon_start_month": req.CouponStartMonth,
	}); err != nil {
		return nil, err
	}
	couponID := coupon.ID
	sub.CouponUsed = &couponID
	sub.CouponStartMonth = req.CouponStartMonth

	s.revenue.InvalidateMRR(ctx)
	return toSubscriptionInfo(sub), nil
}

func (s *SubscriptionService) findCoupon(req *dto.ApplyCouponRequest) (*model.Coupon, error) {
	var (
		coupon *model.Coupon
		err    error
	)
	switch {
	case req.CouponID != "":
		coupon, err = s.couponRepo.GetByID(req.CouponID)
	case req.CouponCode != "":
		coupon, err = s.couponRepo.GetByCode(req.CouponCode)
	default:
		return nil, ErrCouponNotFound
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return coupon, nil
}

func (s *SubscriptionService) get(id int64) (*model.Subscription, error) {
	sub, err := s.subRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return sub, nil
}

func toSubscriptionInfo(sub *model.Subscription) *dto.SubscriptionInfo {
	info := &dto.SubscriptionInfo{
		ID:               sub.ID,
		UserID:           sub.UserID,
		Plan:             sub.Plan,
		BillingCycle:     sub.BillingCycle,
		Status:           sub.Status,
		CouponStartMonth: sub.CouponStartMonth,
	}
	if sub.StartDate != nil {
		info.StartDate = sub.StartDate.Format(time.DateOnly)
	}
	if sub.CouponUsed != nil {
		info.CouponUsed = *sub.CouponUsed
	}
	return info
}
