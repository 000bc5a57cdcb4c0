package mq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/rabbitwork/internal/telemetry"
)

// ErrDeliveriesClosed — брокер или соединение закрыли канал доставки.
var ErrDeliveriesClosed = errors.New("deliveries channel closed")

// Handler — функция обработки сообщения.
// Возвращает error, если обработка не удалась (при manual ack сообщение будет nack).
type Handler func(ctx context.Context, msg *Delivery) error

// SetupFunc объявляет топологию на свежем канале и возвращает имя очереди.
// Вызывается при каждом (пере)запуске consumer: эксклюзивная очередь
// исчезает вместе с соединением и должна быть объявлена заново.
type SetupFunc func(ch Declarer) (Queue, error)

// Delivery — доставленное сообщение с методами ack/nack.
type Delivery struct {
	// Body — тело сообщения.
	Body []byte

	// RoutingKey — ключ, с которым сообщение было опубликовано.
	RoutingKey string

	// MessageID — AMQP message-id (может быть пустым).
	MessageID string

	// Raw — сырое AMQP сообщение.
	Raw amqp.Delivery
}

// NewDelivery оборачивает amqp.Delivery.
func NewDelivery(raw amqp.Delivery) *Delivery {
	return &Delivery{
		Body:       raw.Body,
		RoutingKey: raw.RoutingKey,
		MessageID:  raw.MessageId,
		Raw:        raw,
	}
}

// Ack подтверждает успешную обработку сообщения.
func (d *Delivery) Ack() error {
	return d.Raw.Ack(false)
}

// Nack отклоняет сообщение.
func (d *Delivery) Nack(requeue bool) error {
	return d.Raw.Nack(false, requeue)
}

// ConsumerConfig — конфигурация consumer.
type ConsumerConfig struct {
	// Setup — объявление топологии перед consume.
	Setup SetupFunc

	// Handler — обработчик сообщений.
	Handler Handler

	// Prefetch — количество неподтверждённых сообщений на consumer.
	// Игнорируется при AutoAck.
	Prefetch int

	// AutoAck — брокер считает сообщение доставленным сразу при отправке.
	AutoAck bool

	// OnReady вызывается после успешного basic.consume с именем очереди.
	OnReady func(queue Queue)
}

// Consumer потребляет сообщения из очереди RabbitMQ.
type Consumer struct {
	conn    *Connection
	logger  *slog.Logger // с полем queue после setup
	base    *slog.Logger
	setup   SetupFunc
	handler Handler
	onReady func(queue Queue)

	prefetch int
	autoAck  bool

	queue Queue
}

// NewConsumer создаёт новый Consumer.
func NewConsumer(conn *Connection, logger *slog.Logger, cfg ConsumerConfig) *Consumer {
	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Consumer{
		conn:     conn,
		logger:   logger,
		base:     logger,
		setup:    cfg.Setup,
		handler:  cfg.Handler,
		onReady:  cfg.OnReady,
		prefetch: prefetch,
		autoAck:  cfg.AutoAck,
	}
}

// Start запускает потребление и блокируется до отмены ctx.
func (c *Consumer) Start(ctx context.Context) error {
	return c.consume(ctx)
}

// consume — основной цикл потребления с перезапуском после reconnect.
func (c *Consumer) consume(ctx context.Context) error {
	ready := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		deliveries, err := c.setupConsume()
		if err != nil {
			c.logger.Error("failed to setup consume", "error", err)
			if !ready {
				// Первая настройка не удалась — ошибка топологии или прав,
				// ждать переподключения бессмысленно.
				return err
			}
			if !c.waitReconnect(ctx) {
				return ctx.Err()
			}
			continue
		}

		c.logger.Debug("consumer started", "auto_ack", c.autoAck)
		if !ready && c.onReady != nil {
			c.onReady(c.queue)
		}
		ready = true

		if err := c.processDeliveries(ctx, deliveries); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("deliveries channel closed, waiting for reconnect")
			if !c.waitReconnect(ctx) {
				return ctx.Err()
			}
		}
	}
}

// waitReconnect ждёт переподключения. false — ctx отменён.
func (c *Consumer) waitReconnect(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-c.conn.ReconnectNotify():
		c.logger.Info("reconnected, restarting consumer")
		return true
	}
}

// setupConsume объявляет топологию и начинает потребление.
func (c *Consumer) setupConsume() (<-chan amqp.Delivery, error) {
	ch := c.conn.Channel()
	if ch == nil {
		return nil, ErrNoChannel
	}

	queue, err := c.setup(ch)
	if err != nil {
		return nil, err
	}
	c.setQueue(queue)

	if !c.autoAck {
		if err := ch.Qos(c.prefetch, 0, false); err != nil {
			return nil, fmt.Errorf("set qos: %w", err)
		}
	}

	deliveries, err := ch.Consume(
		string(c.queue), // queue
		"",              // consumer tag (auto-generated)
		c.autoAck,       // auto-ack
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", c.queue, err)
	}

	return deliveries, nil
}

// processDeliveries обрабатывает сообщения из канала.
func (c *Consumer) processDeliveries(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case raw, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}

			c.handleDelivery(ctx, raw)
		}
	}
}

// handleDelivery обрабатывает одно сообщение.
func (c *Consumer) handleDelivery(ctx context.Context, raw amqp.Delivery) {
	delivery := NewDelivery(raw)
	queue := string(c.queue)

	telemetry.MessagesConsumed.WithLabelValues(queue, raw.RoutingKey).Inc()

	c.logger.Debug("received message",
		"routing_key", raw.RoutingKey,
		"message_id", raw.MessageId,
	)

	start := time.Now()
	err := c.handler(ctx, delivery)
	telemetry.HandlerDuration.WithLabelValues(queue).Observe(time.Since(start).Seconds())

	if err != nil {
		telemetry.HandlerErrors.WithLabelValues(queue).Inc()
		c.logger.Error("handler failed",
			"routing_key", raw.RoutingKey,
			"message_id", raw.MessageId,
			"error", err,
		)
		if !c.autoAck {
			// Возвращаем в очередь: задачу заберёт другой воркер
			if nackErr := delivery.Nack(true); nackErr != nil {
				c.logger.Warn("nack failed", "error", nackErr)
			}
		}
		return
	}

	if !c.autoAck {
		if ackErr := delivery.Ack(); ackErr != nil {
			c.logger.Warn("ack failed", "error", ackErr)
		}
	}
}

// setQueue запоминает очередь и добавляет её в логгер.
func (c *Consumer) setQueue(queue Queue) {
	c.queue = queue
	c.logger = telemetry.WithQueue(c.base, string(queue))
}
