package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/qs3c/billing_go_server/config"
	"github.com/qs3c/billing_go_server/internal/model"
	"github.com/qs3c/billing_go_server/internal/model/dto"
	"github.com/qs3c/billing_go_server/internal/pricing"
	"github.com/qs3c/billing_go_server/internal/repository"
)

var (
	ErrSubscriptionNotFound = errors.New("订阅不存在")
	ErrInvalidDate          = errors.New("日期格式错误，应为 YYYY-MM-DD")
)

// mrrCacheKey 按月份缓存 MRR 的 hash，订阅或优惠券变化时整体删除
const mrrCacheKey = "revenue:mrr"

type RevenueService struct {
	subRepo    *repository.SubscriptionRepository
	couponRepo *repository.CouponRepository
	engine     *pricing.Engine
	rdb        *redis.Client
	cfg        *config.Config
	now        func() time.Time
}

func NewRevenueService(
	subRepo *repository.SubscriptionRepository,
	couponRepo *repository.CouponRepository,
	engine *pricing.Engine,
	rdb *redis.Client,
	cfg *config.Config,
) *RevenueService {
	return &RevenueService{
		subRepo:    subRepo,
		couponRepo: couponRepo,
		engine:     engine,
		rdb:        rdb,
		cfg:        cfg,
		now:        time.Now,
	}
}

// ReferenceDate 解析 YYYY-MM-DD，为空时取当前时间
func (s *RevenueService) ReferenceDate(date string) (time.Time, error) {
	if date == "" {
		return s.now(), nil
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// GetMRR 计算 today 所在月的 MRR，命中缓存时直接返回
func (s *RevenueService) GetMRR(ctx context.Context, today time.Time) (*dto.MRRResponse, error) {
	month := pricing.YearMonthOf(today).String()

	if cached, ok := s.cachedMRR(ctx, month); ok {
		cached.Cached = true
		return cached, nil
	}

	subs, err := s.subRepo.ListByStatus(string(pricing.StatusActive))
	if err != nil {
		return nil, err
	}
	snapshots, coupons, err := s.snapshots(subs)
	if err != nil {
		return nil, err
	}

	mrr := s.engine.CurrentMonthMRR(snapshots, coupons, today)
	resp := &dto.MRRResponse{
		Month:       month,
		MRR:         mrr.StringFixed(2),
		Currency:    s.currency(),
		ActiveCount: len(snapshots),
	}

	s.storeMRR(ctx, month, resp)
	return resp, nil
}

// InvalidateMRR 订阅或优惠券变化后清除缓存
func (s *RevenueService) InvalidateMRR(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, mrrCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate MRR cache: %v", err)
	}
}

// RefreshMRR 清除缓存并重新计算当月 MRR，供定时任务预热
func (s *RevenueService) RefreshMRR(ctx context.Context) (*dto.MRRResponse, error) {
	s.InvalidateMRR(ctx)
	return s.GetMRR(ctx, s.now())
}

// GetProjectionTable 所有订阅在 13 个月视图上的价格，以及每月合计
func (s *RevenueService) GetProjectionTable(ctx context.Context, today time.Time) (*dto.ProjectionTable, error) {
	subs, err := s.subRepo.ListAll()
	if err != nil {
		return nil, err
	}
	snapshots, coupons, err := s.snapshots(subs)
	if err != nil {
		return nil, err
	}

	// 每个订阅独立计算，结果按下标写回保证顺序
	projections := make([][]pricing.ProjectionRow, len(snapshots))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Revenue.Workers())
	for i := range snapshots {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			projections[i] = s.engine.Project(snapshots[i], coupons.CouponFor(snapshots[i]), today)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := &dto.ProjectionTable{
		Subscriptions: make([]dto.SubscriptionProjection, len(subs)),
	}
	for _, month := range pricing.Window(today) {
		table.Months = append(table.Months, month.Label())
	}
	for i := range subs {
		table.Subscriptions[i] = toSubscriptionProjection(&subs[i], coupons, projections[i])
	}
	totals := pricing.MonthlyTotals(projections)
	if totals == nil {
		totals = make([]decimal.Decimal, len(table.Months))
	}
	for _, total := range totals {
		table.Totals = append(table.Totals, total.StringFixed(2))
	}

	return table, nil
}

// GetSubscriptionProjection 单个订阅的 13 个月推算
func (s *RevenueService) GetSubscriptionProjection(id int64, today time.Time) (*dto.SubscriptionProjection, error) {
	sub, err := s.subRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	snapshots, coupons, err := s.snapshots([]model.Subscription{*sub})
	if err != nil {
		return nil, err
	}

	rows := s.engine.Project(snapshots[0], coupons.CouponFor(snapshots[0]), today)
	projection := toSubscriptionProjection(sub, coupons, rows)
	return &projection, nil
}

// snapshots 转换订阅并批量加载用到的优惠券
func (s *RevenueService) snapshots(subs []model.Subscription) ([]pricing.Subscription, pricing.CouponLookup, error) {
	snapshots := make([]pricing.Subscription, len(subs))
	seen := make(map[string]struct{})
	var couponIDs []string
	for i := range subs {
		snapshots[i] = toPricingSubscription(&subs[i])
		if id := snapshots[i].CouponID; id != "" {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				couponIDs = append(couponIDs, id)
			}
		}
	}

	coupons, err := s.couponRepo.ListByIDs(couponIDs)
	if err != nil {
		return nil, nil, err
	}
	lookup := make(pricing.CouponLookup, len(coupons))
	for i := range coupons {
		lookup[coupons[i].ID] = toPricingCoupon(&coupons[i])
	}
	return snapshots, lookup, nil
}

func (s *RevenueService) cachedMRR(ctx context.Context, month string) (*dto.MRRResponse, bool) {
	if s.rdb == nil {
		return nil, false
	}
	vals, err := s.rdb.HMGet(ctx, mrrCacheKey, month, month+":count").Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Failed to read MRR cache: %v", err)
		}
		return nil, false
	}
	mrr, ok := vals[0].(string)
	if !ok {
		return nil, false
	}
	resp := &dto.MRRResponse{Month: month, MRR: mrr, Currency: s.currency()}
	if count, ok := vals[1].(string); ok {
		if n, err := strconv.Atoi(count); err == nil {
			resp.ActiveCount = n
		}
	}
	return resp, true
}

func (s *RevenueService) storeMRR(ctx context.Context, month string, resp *dto.MRRResponse) {
	if s.rdb == nil {
		return
	}
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, mrrCacheKey, month, resp.MRR, month+":count", resp.ActiveCount)
	pipe.Expire(ctx, mrrCacheKey, s.cfg.Revenue.CacheTTL())
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Failed to write MRR cache: %v", err)
	}
}

func (s *RevenueService) currency() string {
	if s.cfg.Pricing.Currency == "" {
		return "BRL"
	}
	return s.cfg.Pricing.Currency
}

func toSubscriptionProjection(sub *model.Subscription, coupons pricing.CouponLookup, rows []pricing.ProjectionRow) dto.SubscriptionProjection {
	projection := dto.SubscriptionProjection{
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		Plan:           sub.Plan,
		BillingCycle:   sub.BillingCycle,
		Status:         sub.Status,
		Rows:           toProjectionRows(rows),
	}
	if sub.CouponUsed != nil {
		if coupon, ok := coupons[*sub.CouponUsed]; ok {
			projection.CouponCode = coupon.Code
		}
	}
	return projection
}
