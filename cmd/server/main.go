package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qs3c/billing_go_server/config"
	"github.com/qs3c/billing_go_server/internal/api"
	"github.com/qs3c/billing_go_server/internal/api/handler"
	"github.com/qs3c/billing_go_server/internal/database"
	"github.com/qs3c/billing_go_server/internal/pkg/cron"
	"github.com/qs3c/billing_go_server/internal/pricing"
	"github.com/qs3c/billing_go_server/internal/repository"
	"github.com/qs3c/billing_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Printf("Database connected (%s)", cfg.Database.Driver)

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 价格引擎
	prices, err := service.PriceTableFromConfig(cfg.Pricing)
	if err != nil {
		log.Fatalf("Invalid pricing config: %v", err)
	}
	engine := pricing.NewEngine(prices, slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	couponRepo := repository.NewCouponRepository(db)

	// 初始化 Service
	revenueService := service.NewRevenueService(subRepo, couponRepo, engine, rdb, cfg)
	subscriptionService := service.NewSubscriptionService(subRepo, couponRepo, revenueService)
	couponService := service.NewCouponService(couponRepo, subRepo)
	payrollService := service.NewPayrollService()
	checkoutService := service.NewCheckoutService()

	// 定时预热 MRR 缓存
	cronService := cron.NewService(revenueService, cfg.Revenue.RefreshInterval())
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Router
	router := api.NewRouter(
		handler.NewRevenueHandler(revenueService),
		handler.NewSubscriptionHandler(subscriptionService),
		handler.NewCouponHandler(couponService),
		handler.NewPayrollHandler(payrollService),
		handler.NewCheckoutHandler(checkoutService),
		userRepo,
		cfg,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router.Setup(),
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if err := rdb.Close(); err != nil {
		log.Printf("Failed to close redis: %v", err)
	}
}
