package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
	Revenue  RevenueConfig  `mapstructure:"revenue"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // mysql, postgres, sqlite
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// PricingConfig 套餐标价，未配置的套餐使用内置价格
type PricingConfig struct {
	Currency string                 `mapstructure:"currency"`
	Plans    map[string]PlanPricing `mapstructure:"plans"`
}

type PlanPricing struct {
	Monthly string `mapstructure:"monthly"` // 月付价格
	Annual  string `mapstructure:"annual"`  // 年付整年价格
}

type RevenueConfig struct {
	CacheTTLMinutes        int `mapstructure:"cache_ttl_minutes"`
	ProjectionWorkers      int `mapstructure:"projection_workers"`
	RefreshIntervalMinutes int `mapstructure:"refresh_interval_minutes"`
}

// CacheTTL MRR 缓存时间，默认 10 分钟
func (c RevenueConfig) CacheTTL() time.Duration {
	if c.CacheTTLMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// RefreshInterval MRR 预热间隔，默认 1 小时
func (c RevenueConfig) RefreshInterval() time.Duration {
	if c.RefreshIntervalMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.RefreshIntervalMinutes) * time.Minute
}

// Workers 推算营收表时的并发数，默认 8
func (c RevenueConfig) Workers() int {
	if c.ProjectionWorkers <= 0 {
		return 8
	}
	return c.ProjectionWorkers
}

func Load(configPath string) (*Config, error) {
	dir := filepath.Dir(configPath)

	// .env 只用于本地开发，不存在时忽略
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	localConfigPath := filepath.Join(dir, "config.local.yaml")
	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("pricing.currency", "BRL")

	// 环境变量覆盖
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
