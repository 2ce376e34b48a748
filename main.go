package main

import (
	"context"
	"os"
	"time"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/logging"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("info", "json", nil)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, nil)

	// --- Entity store ---
	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	log.Info().Str("driver", store.Driver).Msg("store ready")

	deps := Dependencies{Config: cfg, Logger: log, Store: store}

	// --- Optional catalog cache ---
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		redisCache, err := cache.Connect(ctx, cfg.RedisAddr, cfg.CachePrefix, cfg.CacheTTL)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("catalog cache disabled")
		} else {
			deps.Cache = redisCache
		}
	}

	// --- Optional order events ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.DefaultConfig(cfg.RabbitMQURL), log)
		if err != nil {
			log.Warn().Err(err).Msg("order events disabled")
		} else {
			deps.Publisher = mqClient
			if err := mqClient.ConsumeOrderEvents(orderEventLogger(log)); err != nil {
				log.Warn().Err(err).Msg("failed to start order event consumer")
			}
		}
	}

	svc := NewServices(deps)

	if cfg.SeedCatalog {
		if err := SeedCatalog(context.Background(), store, svc.Catalog, log); err != nil {
			log.Fatal().Err(err).Msg("failed to seed catalog")
		}
	}

	app := NewApp(deps, svc)

	// --- Start HTTP Server ---
	go func() {
		log.Info().Str("addr", cfg.AppPort).Msg("starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Operations run concurrently, so the HTTP server drains before the
	// resources it uses are released.
	operations := map[string]gfshutdown.Operation{
		"storefront": func(ctx context.Context) error {
			log.Info().Msg("graceful shutdown initiated")
			if err := app.ShutdownWithContext(ctx); err != nil {
				log.Error().Err(err).Msg("error during Fiber shutdown")
			}
			if mqClient != nil {
				if err := mqClient.Close(); err != nil {
					log.Error().Err(err).Msg("error closing RabbitMQ client")
				}
			}
			if deps.Cache != nil {
				if err := deps.Cache.Close(); err != nil {
					log.Error().Err(err).Msg("error closing cache")
				}
			}
			return store.Close()
		},
	}

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, operations)
	exitCode := <-wait
	log.Info().Int("exit_code", exitCode).Msg("server stopped")
	os.Exit(exitCode)
}

// orderEventLogger acknowledges order events after logging them. Downstream
// work such as confirmation emails would hang off this consumer.
func orderEventLogger(log zerolog.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		log.Info().
			Str("routing_key", msg.RoutingKey).
			Uint64("delivery_tag", msg.DeliveryTag).
			Bytes("event", msg.Body).
			Msg("received order event")
		return nil
	}
}

// compile-time check that the AMQP client satisfies the publisher contract.
var _ services.EventPublisher = (*rabbitmq.Client)(nil)
