package service

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qs3c/billing_go_server/internal/model"
	"github.com/qs3c/billing_go_server/internal/model/dto"
	"github.com/qs3c/billing_go_server/internal/pricing"
	"github.com/qs3c/billing_go_server/internal/repository"
)

var (
	ErrCouponNotFound          = errors.New("优惠券不存在")
	ErrCouponCodeExists        = errors.New("优惠码已存在")
	ErrInvalidCouponValue      = errors.New("优惠金额无效")
	ErrProgressiveRulesMissing = errors.New("渐进式优惠券至少需要一条规则")
	ErrDuplicateCouponMonth    = errors.New("渐进式规则的月份重复")
	ErrInvalidCouponMonth      = errors.New("优惠月序号必须大于 0")
)

var hundred = decimal.NewFromInt(100)

type CouponService struct {
	couponRepo *repository.CouponRepository
	subRepo    *repository.SubscriptionRepository
}

func NewCouponService(couponRepo *repository.CouponRepository, subRepo *repository.SubscriptionRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		subRepo:    subRepo,
	}
}

// Create 校验并创建优惠券
func (s *CouponService) Create(req *dto.CreateCouponRequest) (*dto.CouponItem, error) {
	if err := validateCouponRequest(req); err != nil {
		return nil, err
	}

	exists, err := s.couponRepo.ExistsByCode(req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCouponCodeExists
	}

	coupon := &model.Coupon{
		Code: req.Code,
		Type: req.Type,
	}
	if req.Type == string(pricing.CouponProgressive) {
		coupon.Value = decimal.Zero
		for _, d := range req.ProgressiveDiscounts {
			coupon.ProgressiveDiscounts = append(coupon.ProgressiveDiscounts, model.ProgressiveDiscount{
				Month:        d.Month,
				DiscountType: d.DiscountType,
				Discount:     d.Discount,
			})
		}
	} else {
		coupon.Value = req.Value
	}

	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}

	return toCouponItem(coupon), nil
}

// List 全部优惠券，附带每张券绑定的订阅数
func (s *CouponService) List() ([]dto.CouponItem, error) {
	coupons, err := s.couponRepo.List()
	if err != nil {
		return nil, err
	}

	items := make([]dto.CouponItem, 0, len(coupons))
	for i := range coupons {
		item := toCouponItem(&coupons[i])
		item.Redemptions, err = s.subRepo.CountByCoupon(coupons[i].ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// Resolve 预览优惠券在第 month 个优惠月的折扣
func (s *CouponService) Resolve(id string, month int) (*dto.ResolveCouponResponse, error) {
	if month < 1 {
		return nil, ErrInvalidCouponMonth
	}

	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	resp := &dto.ResolveCouponResponse{
		CouponID: coupon.ID,
		Month:    month,
	}
	rule, ok := pricing.Resolve(toPricingCoupon(coupon), month)
	if !ok {
		return resp, nil
	}

	resp.Matched = true
	resp.DiscountType = string(rule.Type)
	resp.Discount = rule.Discount.StringFixed(2)
	resp.Label = rule.Label()
	return resp, nil
}

func validateCouponRequest(req *dto.CreateCouponRequest) error {
	switch pricing.CouponType(req.Type) {
	case pricing.CouponProgressive:
		if len(req.ProgressiveDiscounts) == 0 {
			return ErrProgressiveRulesMissing
		}
		months := make(map[int]struct{}, len(req.ProgressiveDiscounts))
		for _, d := range req.ProgressiveDiscounts {
			if d.Month < 1 {
				return ErrInvalidCouponMonth
			}
			if _, ok := months[d.Month]; ok {
				return ErrDuplicateCouponMonth
			}
			months[d.Month] = struct{}{}
			if !validDiscount(pricing.DiscountType(d.DiscountType), d.Discount) {
				return ErrInvalidCouponValue
			}
		}
	case pricing.CouponPercentage:
		if !validDiscount(pricing.DiscountPercentage, req.Value) {
			return ErrInvalidCouponValue
		}
	case pricing.CouponFixed:
		if !validDiscount(pricing.DiscountFixed, req.Value) {
			return ErrInvalidCouponValue
		}
	default:
		return ErrInvalidCouponValue
	}
	return nil
}

func validDiscount(kind pricing.DiscountType, amount decimal.Decimal) bool {
	if amount.IsNegative() {
		return false
	}
	if kind == pricing.DiscountPercentage && amount.GreaterThan(hundred) {
		return false
	}
	return true
}
