package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/qs3c/billing_go_server/config"
	"github.com/qs3c/billing_go_server/internal/database"
	"github.com/qs3c/billing_go_server/internal/pricing"
	"github.com/qs3c/billing_go_server/internal/repository"
	"github.com/qs3c/billing_go_server/internal/service"
)

var (
	date     = flag.String("date", "", "Reference date YYYY-MM-DD, defaults to today")
	dryRun   = flag.Bool("dry-run", false, "Compute only, don't touch the MRR cache")
	showRows = flag.Bool("projections", false, "Also print the 13-month totals")
)

// 一次性计算 MRR 并写入缓存，供外部调度（如 k8s CronJob）使用
func main() {
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	var rdb *redis.Client
	if !*dryRun {
		rdb, err = database.NewRedis(&cfg.Redis)
		if err != nil {
			closeDB(db)
			log.Fatalf("Failed to connect redis: %v", err)
		}
	}

	err = run(cfg, db, rdb)

	// log.Fatalf 不会执行 defer，连接在退出前显式关闭
	if rdb != nil {
		if cerr := rdb.Close(); cerr != nil {
			log.Printf("Failed to close redis: %v", cerr)
		}
	}
	closeDB(db)

	if err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config, db *gorm.DB, rdb *redis.Client) error {
	prices, err := service.PriceTableFromConfig(cfg.Pricing)
	if err != nil {
		return fmt.Errorf("invalid pricing config: %w", err)
	}

	revenue := service.NewRevenueService(
		repository.NewSubscriptionRepository(db),
		repository.NewCouponRepository(db),
		pricing.NewEngine(prices, nil),
		rdb,
		cfg,
	)

	today, err := revenue.ReferenceDate(*date)
	if err != nil {
		return fmt.Errorf("invalid -date: %w", err)
	}

	ctx := context.Background()
	revenue.InvalidateMRR(ctx)
	mrr, err := revenue.GetMRR(ctx, today)
	if err != nil {
		return fmt.Errorf("compute MRR: %w", err)
	}
	log.Printf("MRR %s: %s %s (%d active, dry-run=%v)", mrr.Month, mrr.MRR, mrr.Currency, mrr.ActiveCount, *dryRun)

	if !*showRows {
		return nil
	}

	table, err := revenue.GetProjectionTable(ctx, today)
	if err != nil {
		return fmt.Errorf("project revenue: %w", err)
	}
	log.Printf("Projection over %d subscriptions:", len(table.Subscriptions))
	for i, month := range table.Months {
		log.Printf("  %-9s %s", month, table.Totals[i])
	}
	return nil
}

// closeDB 关闭底层连接池
func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
}
