package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/billing_go_server/internal/model"
)

type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) Create(coupon *model.Coupon) error {
	return r.db.Create(coupon).Error
}

func (r *CouponRepository) GetByID(id string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.Where("id = ?", id).First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *CouponRepository) GetByCode(code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.Where("code = ?", code).First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *CouponRepository) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Coupon{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *CouponRepository) List() ([]model.Coupon, error) {
	var coupons []model.Coupon
	err := r.db.Order("created_at DESC").Find(&coupons).Error
	return coupons, err
}

// ListByIDs 批量查询，ids 为空时直接返回
func (r *CouponRepository) ListByIDs(ids []string) ([]model.Coupon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var coupons []model.Coupon
	err := r.db.Where("id IN ?", ids).Find(&coupons).Error
	return coupons, err
}
