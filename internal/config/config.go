// Package config loads process settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds every setting the server reads at startup.
type Config struct {
	AppPort         string
	ShutdownTimeout time.Duration
	CORSOrigins     string

	StoreDriver string // memory, sqlite or postgres
	DatabaseDSN string
	SeedCatalog bool

	RedisAddr   string // empty disables the catalog cache
	CacheTTL    time.Duration
	CachePrefix string

	RabbitMQURL string // empty disables order events

	LogLevel  string
	LogFormat string // json or console

	FreeDeliveryThreshold     decimal.Decimal
	DeliveryFee               decimal.Decimal
	ValidateProductReferences bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("STORE_DRIVER", "memory")
	v.SetDefault("DATABASE_DSN", "file:storefront.db?cache=shared")
	v.SetDefault("SEED_CATALOG", true)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("CACHE_PREFIX", "storefront:")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("FREE_DELIVERY_THRESHOLD", "50.00")
	v.SetDefault("DELIVERY_FEE", "5.00")
	v.SetDefault("VALIDATE_PRODUCT_REFERENCES", false)
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	threshold, err := decimal.NewFromString(v.GetString("FREE_DELIVERY_THRESHOLD"))
	if err != nil {
		return nil, fmt.Errorf("invalid FREE_DELIVERY_THRESHOLD: %w", err)
	}
	fee, err := decimal.NewFromString(v.GetString("DELIVERY_FEE"))
	if err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_FEE: %w", err)
	}
	if threshold.IsNegative() || fee.IsNegative() {
		return nil, fmt.Errorf("delivery pricing must not be negative")
	}

	cfg := &Config{
		AppPort:                   v.GetString("APP_PORT"),
		ShutdownTimeout:           v.GetDuration("SHUTDOWN_TIMEOUT"),
		CORSOrigins:               v.GetString("CORS_ORIGINS"),
		StoreDriver:               strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseDSN:               v.GetString("DATABASE_DSN"),
		SeedCatalog:               v.GetBool("SEED_CATALOG"),
		RedisAddr:                 v.GetString("REDIS_ADDR"),
		CacheTTL:                  v.GetDuration("CACHE_TTL"),
		CachePrefix:               v.GetString("CACHE_PREFIX"),
		RabbitMQURL:               v.GetString("RABBITMQ_URL"),
		LogLevel:                  v.GetString("LOG_LEVEL"),
		LogFormat:                 strings.ToLower(v.GetString("LOG_FORMAT")),
		FreeDeliveryThreshold:     threshold,
		DeliveryFee:               fee,
		ValidateProductReferences: v.GetBool("VALIDATE_PRODUCT_REFERENCES"),
	}

	switch cfg.StoreDriver {
	case "memory", "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	return cfg, nil
}
