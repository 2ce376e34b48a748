package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, exchange, routingKey string, body []byte) error {
	args := m.Called(ctx, exchange, routingKey, body)
	return args.Error(0)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.StoreDriver = "memory"
	return cfg
}

// newTestApp builds a seeded app over an in-memory store.
func newTestApp(t *testing.T, publisher services.EventPublisher) (*fiber.App, *repositories.Store) {
	t.Helper()
	cfg := testConfig(t)
	store, err := openStore(cfg)
	require.NoError(t, err)

	deps := Dependencies{Config: cfg, Logger: zerolog.Nop(), Store: store, Publisher: publisher}
	svc := NewServices(deps)
	require.NoError(t, SeedCatalog(context.Background(), store, svc.Catalog, zerolog.Nop()))
	return NewApp(deps, svc), store
}

func get(t *testing.T, app *fiber.App, target string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHealthCheck(t *testing.T) {
	app, _ := newTestApp(t, nil)

	status, body := get(t, app, "/health")
	assert.Equal(t, http.StatusOK, status)

	var health map[string]any
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "memory", health["store"])
	assert.Equal(t, "disabled", health["cache"])
	assert.Equal(t, "disabled", health["broker"])
	assert.NotContains(t, health, "cacheStats")
}

func TestHealthCheckReportsCacheStats(t *testing.T) {
	cfg := testConfig(t)
	store := repositories.NewMemoryStore()
	// Nothing listens on port 1, so the cache is configured but unreachable.
	rc := cache.New(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), "health-test:", time.Minute)
	defer rc.Close()

	deps := Dependencies{Config: cfg, Logger: zerolog.Nop(), Store: store, Cache: rc}
	app := NewApp(deps, NewServices(deps))

	status, body := get(t, app, "/health")
	require.Equal(t, http.StatusOK, status)

	var health struct {
		Cache      string      `json:"cache"`
		CacheStats cache.Stats `json:"cacheStats"`
	}
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "unreachable", health.Cache)
	assert.Equal(t, cache.Stats{}, health.CacheStats)
}

func TestSeedCatalog(t *testing.T) {
	app, store := newTestApp(t, nil)
	ctx := context.Background()

	status, body := get(t, app, "/api/products")
	require.Equal(t, http.StatusOK, status)
	var products []models.Product
	require.NoError(t, json.Unmarshal(body, &products))
	require.Len(t, products, 16)
	assert.Equal(t, "Wireless Noise Cancelling Headphones", products[0].Name)

	status, body = get(t, app, "/api/categories")
	require.Equal(t, http.StatusOK, status)
	var categories []models.Category
	require.NoError(t, json.Unmarshal(body, &categories))
	assert.Len(t, categories, 6)

	for i, p := range products {
		reviews, err := store.Reviews.GetByProduct(ctx, p.ID)
		require.NoError(t, err)
		if i < 5 {
			assert.Len(t, reviews, 5, p.Name)
		} else {
			assert.Empty(t, reviews, p.Name)
		}
	}

	// Every seeded product is discounted above 20% except the smartphone (18%).
	status, body = get(t, app, "/api/deals/flash")
	require.Equal(t, http.StatusOK, status)
	var flash []models.Product
	require.NoError(t, json.Unmarshal(body, &flash))
	require.Len(t, flash, 6)
	for _, p := range flash {
		assert.NotEqual(t, "TechPhone", p.Brand)
	}

	status, body = get(t, app, "/api/search?q=ZENFIT")
	require.Equal(t, http.StatusOK, status)
	var found []models.Product
	require.NoError(t, json.Unmarshal(body, &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Yoga Mat - Extra Thick Non-Slip", found[0].Name)
}

func TestSeedCatalogIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	store := repositories.NewMemoryStore()
	svc := NewServices(Dependencies{Config: cfg, Logger: zerolog.Nop(), Store: store})
	ctx := context.Background()

	require.NoError(t, SeedCatalog(ctx, store, svc.Catalog, zerolog.Nop()))
	require.NoError(t, SeedCatalog(ctx, store, svc.Catalog, zerolog.Nop()))

	products, err := store.Products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 16)
}

func TestCheckoutPublishesOrderCreated(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, services.OrderExchange, services.OrderCreatedKey, mock.Anything).Return(nil).Once()
	app, _ := newTestApp(t, publisher)

	_, body := get(t, app, "/api/products")
	var products []models.Product
	require.NoError(t, json.Unmarshal(body, &products))

	add := httptest.NewRequest(http.MethodPost, "/api/cart",
		strings.NewReader(`{"productId":"`+products[4].ID+`","quantity":2}`))
	add.Header.Set("Content-Type", "application/json")
	add.Header.Set(middleware.SessionHeader, "main-test")
	resp, err := app.Test(add, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	order := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{
		"customerName": "Ada Lovelace",
		"customerEmail": "ada@example.com",
		"customerPhone": "555 010 2030",
		"address": "12 Analytical Engine Way"
	}`))
	order.Header.Set("Content-Type", "application/json")
	order.Header.Set(middleware.SessionHeader, "main-test")
	resp, err = app.Test(order, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var placed models.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&placed))
	// 2 x 24.99 = 49.98, below the free delivery threshold.
	assert.Equal(t, "54.98", placed.Total.String())
	publisher.AssertExpectations(t)
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestApp(t, nil)

	status, body := get(t, app, "/api/nothing-here")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(body), `"message"`)
}

func TestOpenStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreDriver = "sqlite"
	cfg.DatabaseDSN = "file:open-store-test?mode=memory&cache=shared"

	store, err := openStore(cfg)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, "sqlite", store.Driver)

	cfg.StoreDriver = "oracle"
	_, err = openStore(cfg)
	assert.Error(t, err)
}
