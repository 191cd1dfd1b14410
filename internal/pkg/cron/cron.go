package cron

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/qs3c/billing_go_server/internal/model/dto"
)

// MRRRefresher 重新计算并缓存当月 MRR
type MRRRefresher interface {
	RefreshMRR(ctx context.Context) (*dto.MRRResponse, error)
}

type Service struct {
	revenue  MRRRefresher
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewService(revenue MRRRefresher, interval time.Duration) *Service {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Service{
		revenue:  revenue,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start 启动定时任务：立即预热一次，之后按间隔刷新，并在每月第一天 UTC 零点额外刷新
func (s *Service) Start() {
	s.wg.Add(2)
	go s.runPeriodicRefresh()
	go s.runMonthRollover()
	log.Printf("Cron service started (MRR refresh every %s + month rollover)", s.interval)
}

// Stop 停止定时任务，可重复调用
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
		log.Println("Cron service stopped")
	})
}

func (s *Service) runPeriodicRefresh() {
	defer s.wg.Done()

	s.refresh()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.refresh()
		}
	}
}

// runMonthRollover 月份切换后旧月份的缓存不再命中，提前算好新月份
func (s *Service) runMonthRollover() {
	defer s.wg.Done()

	timer := time.NewTimer(untilNextMonth(time.Now()))
	defer timer.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-timer.C:
			s.refresh()
			timer.Reset(untilNextMonth(time.Now()))
		}
	}
}

func (s *Service) refresh() {
	if _, err := s.RunNow(context.Background()); err != nil {
		log.Printf("Failed to refresh MRR: %v", err)
	}
}

// RunNow 立即刷新一次（用于测试或手动触发）
func (s *Service) RunNow(ctx context.Context) (*dto.MRRResponse, error) {
	if s.revenue == nil {
		return nil, nil
	}
	resp, err := s.revenue.RefreshMRR(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("MRR refreshed: month=%s mrr=%s active=%d", resp.Month, resp.MRR, resp.ActiveCount)
	return resp, nil
}

// untilNextMonth 距离下个月 1 日 UTC 零点的时长
func untilNextMonth(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return next.Sub(now)
}
