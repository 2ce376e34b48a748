package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"gorm.io/gorm/logger"
)

// Dependencies are the long-lived resources the HTTP app is built from.
// Cache and Publisher are optional.
type Dependencies struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Store     *repositories.Store
	Cache     *cache.RedisCache
	Publisher services.EventPublisher
}

// Services groups the domain services shared by the handlers.
type Services struct {
	Catalog *services.CatalogService
	Cart    *services.CartService
	Orders  *services.OrderService
	Reviews *services.ReviewService
}

// NewServices builds the domain services over deps.
func NewServices(deps Dependencies) *Services {
	cfg := deps.Config
	pricing := services.Pricing{
		FreeDeliveryThreshold: cfg.FreeDeliveryThreshold,
		DeliveryFee:           cfg.DeliveryFee,
	}

	// A nil *RedisCache must not become a non-nil interface.
	var catalogCache services.CatalogCache
	if deps.Cache != nil {
		catalogCache = deps.Cache
	}

	cart := services.NewCartService(deps.Store.Cart, deps.Store.Products, pricing, cfg.ValidateProductReferences, deps.Logger)
	return &Services{
		Catalog: services.NewCatalogService(deps.Store.Products, deps.Store.Categories, catalogCache, deps.Logger),
		Cart:    cart,
		Orders:  services.NewOrderService(deps.Store.Orders, cart, pricing, deps.Publisher, deps.Logger),
		Reviews: services.NewReviewService(deps.Store.Reviews, deps.Store.Products, cfg.ValidateProductReferences),
	}
}

// NewApp creates the Fiber app with middleware, API routes and the health check.
func NewApp(deps Dependencies, svc *Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		UnescapePath: true,
		ErrorHandler: errorHandler(deps.Logger),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: deps.Config.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.SessionHeader,
	}))
	app.Use(middleware.ResolveSession())
	app.Use(middleware.RequestLogger(deps.Logger))

	// --- API Routes ---
	validate := handlers.NewValidator()
	api := app.Group("/api")
	handlers.NewProductHandler(svc.Catalog).RegisterRoutes(api)
	handlers.NewCategoryHandler(svc.Catalog).RegisterRoutes(api)
	handlers.NewCartHandler(svc.Cart, validate).RegisterRoutes(api)
	handlers.NewOrderHandler(svc.Orders, validate).RegisterRoutes(api)
	handlers.NewReviewHandler(svc.Reviews, validate).RegisterRoutes(api)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		health := fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  deps.Store.Driver,
			"cache":  cacheState(c.UserContext(), deps.Cache),
			"broker": brokerState(deps.Publisher),
		}
		if deps.Cache != nil {
			health["cacheStats"] = deps.Cache.Stats()
		}
		return c.Status(fiber.StatusOK).JSON(health)
	})

	return app
}

// errorHandler renders unmatched routes, panics and other errors that escape
// handlers with the same body shape the handlers use.
func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}
		return c.Status(code).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
}

func cacheState(ctx context.Context, c *cache.RedisCache) string {
	if c == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		return "unreachable"
	}
	return "connected"
}

func brokerState(p services.EventPublisher) string {
	if p == nil {
		return "disabled"
	}
	return "connected"
}

// openStore selects the entity store backend named by cfg.StoreDriver.
func openStore(cfg *config.Config) (*repositories.Store, error) {
	if cfg.StoreDriver == "memory" {
		return repositories.NewMemoryStore(), nil
	}
	db, err := repositories.OpenGORM(cfg.StoreDriver, cfg.DatabaseDSN, gormLogLevel(cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	store, err := repositories.NewGORMStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise %s store: %w", cfg.StoreDriver, err)
	}
	return store, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug", "trace":
		return logger.Info
	case "warn", "error":
		return logger.Error
	default:
		return logger.Warn
	}
}
