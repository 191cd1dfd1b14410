package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/billing_go_server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// GetByID 连同账户一起查询，账户创建时间用于计费起点回退
func (r *SubscriptionRepository) GetByID(id int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Preload("User").Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListAll 所有订阅，按 ID 排序
func (r *SubscriptionRepository) ListAll() ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.Preload("User").Order("id ASC").Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepository) ListByStatus(status string) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.Preload("User").Where("status = ?", status).Order("id ASC").Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Subscription{}).Where("id = ?", id).Updates(fields).Error
}

// CountByCoupon 绑定了该优惠券的订阅数，不区分状态
func (r *SubscriptionRepository) CountByCoupon(couponID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("coupon_used = ?", couponID).Count(&count).Error
	return count, err
}
