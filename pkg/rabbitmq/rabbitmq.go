// Package rabbitmq publishes and consumes order events over AMQP.
package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	amqp "github.com/streadway/amqp"
)

// Client holds the RabbitMQ connection and channel.
// An amqp.Channel is not safe for concurrent publishes, so mu guards it.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
	cfg     Config
	logger  zerolog.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL        string
	Exchange   string // topic exchange for order events
	Queue      string // durable queue the consumer reads
	BindingKey string // pattern binding Queue to Exchange
}

// DefaultConfig returns the exchange and queue layout used for order events.
func DefaultConfig(url string) Config {
	return Config{
		URL:        url,
		Exchange:   "orders",
		Queue:      "order_queue",
		BindingKey: "order.*",
	}
}

// NewClient connects to RabbitMQ and declares the exchange, queue and binding.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(ch, cfg); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger = logger.With().Str("component", "rabbitmq").Logger()
	logger.Info().
		Str("exchange", cfg.Exchange).
		Str("queue", cfg.Queue).
		Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func declareTopology(ch *amqp.Channel, cfg Config) error {
	if err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // kind
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	if _, err := ch.QueueDeclare(
		cfg.Queue, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	); err != nil {
		return fmt.Errorf("failed to declare %s: %w", cfg.Queue, err)
	}

	if err := ch.QueueBind(cfg.Queue, cfg.BindingKey, cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind %s to %s: %w", cfg.Queue, cfg.Exchange, err)
	}
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
		c.channel = nil
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
		c.conn = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON message. ctx is checked before the write;
// streadway/amqp has no cancellable publish.
func (c *Client) Publish(ctx context.Context, exchange, routingKey string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	err := c.channel.Publish(
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	c.logger.Debug().Str("routing_key", routingKey).Int("bytes", len(body)).Msg("event published")
	return nil
}

// ConsumeOrderEvents delivers messages from the order queue to handler on a
// background goroutine until the channel closes. A handler error requeues the
// message once; a second failure drops it.
func (c *Client) ConsumeOrderEvents(handler func(msg amqp.Delivery) error) error {
	c.mu.Lock()
	ch := c.channel
	c.mu.Unlock()
	if ch == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := ch.Consume(
		c.cfg.Queue, // queue
		"",          // consumer tag
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info().Str("queue", c.cfg.Queue).Msg("waiting for order events")

	go func() {
		for msg := range msgs {
			c.handleDelivery(msg, handler)
		}
		c.logger.Info().Msg("order event consumer stopped")
	}()
	return nil
}

func (c *Client) handleDelivery(msg amqp.Delivery, handler func(msg amqp.Delivery) error) {
	if err := handler(msg); err != nil {
		requeue := !msg.Redelivered
		c.logger.Error().
			Err(err).
			Uint64("delivery_tag", msg.DeliveryTag).
			Bool("requeue", requeue).
			Msg("error processing message")
		if nackErr := msg.Nack(false, requeue); nackErr != nil {
			c.logger.Error().Err(nackErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("error nacking message")
		}
		return
	}
	if ackErr := msg.Ack(false); ackErr != nil {
		c.logger.Error().Err(ackErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("error acking message")
	}
}
