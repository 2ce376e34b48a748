package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "storefront:", cfg.CachePrefix)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.True(t, cfg.SeedCatalog)
	assert.False(t, cfg.ValidateProductReferences)
	assert.Equal(t, "50.00", cfg.FreeDeliveryThreshold.StringFixed(2))
	assert.Equal(t, "5.00", cfg.DeliveryFee.StringFixed(2))
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("DELIVERY_FEE", "7.25")
	t.Setenv("VALIDATE_PRODUCT_REFERENCES", "true")
	t.Setenv("LOG_FORMAT", "Console")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, "7.25", cfg.DeliveryFee.StringFixed(2))
	assert.True(t, cfg.ValidateProductReferences)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"bad driver":   {"STORE_DRIVER", "mysql"},
		"bad fee":      {"DELIVERY_FEE", "five"},
		"negative fee": {"DELIVERY_FEE", "-1"},
		"bad limit":    {"FREE_DELIVERY_THRESHOLD", "lots"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
