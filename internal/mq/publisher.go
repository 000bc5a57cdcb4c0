package mq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/rabbitwork/internal/telemetry"
)

// ContentTypeText — тело сообщения как plain UTF-8 текст.
const ContentTypeText = "text/plain"

// ErrNacked — брокер отказался принять сообщение (basic.nack в confirm mode).
var ErrNacked = errors.New("message nacked by broker")

// Message — сообщение для публикации.
type Message struct {
	// ID — уникальный идентификатор сообщения (AMQP message-id).
	ID string

	// Body — тело сообщения.
	Body []byte

	// ContentType — MIME тип тела.
	ContentType string

	// Persistent — просить брокер сохранить сообщение на диск (delivery mode 2).
	Persistent bool

	// Timestamp — время создания.
	Timestamp time.Time
}

// NewTextMessage создаёт текстовое сообщение с новым ID.
func NewTextMessage(body string, persistent bool) *Message {
	return &Message{
		ID:          uuid.New().String(),
		Body:        []byte(body),
		ContentType: ContentTypeText,
		Persistent:  persistent,
		Timestamp:   time.Now().UTC(),
	}
}

// Publishing переводит Message в amqp.Publishing.
func (m *Message) Publishing() amqp.Publishing {
	mode := amqp.Transient
	if m.Persistent {
		mode = amqp.Persistent
	}

	return amqp.Publishing{
		ContentType:  m.ContentType,
		DeliveryMode: mode,
		MessageId:    m.ID,
		Timestamp:    m.Timestamp,
		Body:         m.Body,
	}
}

// PublisherConfig — конфигурация Publisher.
type PublisherConfig struct {
	// Confirm — включить publisher confirms и ждать ack от брокера.
	Confirm bool
}

// publishChannel — часть *amqp.Channel, нужная для публикации.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (*amqp.DeferredConfirmation, error)
	Confirm(noWait bool) error
}

// channelSource выдаёт канал для очередной публикации.
type channelSource func(ctx context.Context) (publishChannel, error)

// Publisher публикует сообщения в RabbitMQ.
type Publisher struct {
	channel channelSource
	logger  *slog.Logger
	confirm bool
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger, cfg PublisherConfig) *Publisher {
	return newPublisher(func(ctx context.Context) (publishChannel, error) {
		ch, err := conn.activeChannel(ctx)
		if err != nil {
			return nil, err
		}
		return ch, nil
	}, logger, cfg)
}

func newPublisher(channel channelSource, logger *slog.Logger, cfg PublisherConfig) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		channel: channel,
		logger:  logger,
		confirm: cfg.Confirm,
	}
}

// Publish публикует сообщение в указанный exchange с routing key.
func (p *Publisher) Publish(ctx context.Context, exchange Exchange, routingKey RoutingKey, msg *Message) error {
	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}

	if err := p.publish(ctx, ch, exchange, routingKey, msg); err != nil {
		return fmt.Errorf("publish to %q/%s: %w", exchange, routingKey, err)
	}

	telemetry.MessagesPublished.WithLabelValues(string(exchange), string(routingKey)).Inc()

	telemetry.WithExchange(p.logger, string(exchange)).Debug("published message",
		"routing_key", routingKey,
		"message_id", msg.ID,
		"persistent", msg.Persistent,
	)

	return nil
}

func (p *Publisher) publish(ctx context.Context, ch publishChannel, exchange Exchange, routingKey RoutingKey, msg *Message) error {
	if !p.confirm {
		return ch.PublishWithContext(ctx,
			string(exchange),   // exchange
			string(routingKey), // routing key
			false,              // mandatory
			false,              // immediate
			msg.Publishing(),
		)
	}

	if err := ch.Confirm(false); err != nil {
		return fmt.Errorf("enable confirm mode: %w", err)
	}

	confirmation, err := ch.PublishWithDeferredConfirmWithContext(ctx,
		string(exchange),
		string(routingKey),
		false,
		false,
		msg.Publishing(),
	)
	if err != nil {
		return err
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("wait confirm: %w", err)
	}
	if !acked {
		return ErrNacked
	}

	return nil
}

// PublishTask публикует persistent задачу в task_queue через default exchange.
func (p *Publisher) PublishTask(ctx context.Context, body string) error {
	return p.Publish(ctx, ExchangeDefault, RoutingKey(QueueTasks), NewTextMessage(body, true))
}

// PublishLog публикует лог-сообщение в direct_logs с routing key = severity.
func (p *Publisher) PublishLog(ctx context.Context, severity, body string) error {
	return p.Publish(ctx, ExchangeDirectLogs, RoutingKey(severity), NewTextMessage(body, false))
}
