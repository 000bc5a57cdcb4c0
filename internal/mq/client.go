package mq

import (
	"context"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ClientConfig — конфигурация Client.
type ClientConfig struct {
	// URL — адрес брокера.
	URL string

	// Name — имя соединения (обычно имя утилиты).
	Name string

	// Confirm — ждать подтверждения публикаций от брокера.
	Confirm bool
}

// TaskSubscription — параметры подписки на task_queue.
type TaskSubscription struct {
	// Prefetch — сколько задач воркер берёт одновременно (fair dispatch: 1).
	Prefetch int

	// Handler — обработчик задачи; ошибка возвращает задачу в очередь.
	Handler Handler

	// OnReady вызывается один раз, когда consume запущен.
	OnReady func(queue Queue)
}

// LogSubscription — параметры подписки на direct_logs.
type LogSubscription struct {
	// Severities — routing keys, по одному биндингу на каждый.
	Severities []string

	// Handler — обработчик лог-сообщения.
	Handler Handler

	// OnReady вызывается один раз, когда очередь привязана и consume запущен.
	OnReady func(queue Queue)
}

// Client — сессия работы с брокером для утилит командной строки:
// соединение + публикация + потребление.
type Client struct {
	conn      *Connection
	publisher *Publisher
	logger    *slog.Logger
}

// Dial открывает соединение и канал.
func Dial(_ context.Context, cfg ClientConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := NewConnection(ConnectionConfig{
		URL:  cfg.URL,
		Name: cfg.Name,
	}, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("session opened", "topology", TopologyInfo())

	return &Client{
		conn:      conn,
		publisher: NewPublisher(conn, logger, PublisherConfig{Confirm: cfg.Confirm}),
		logger:    logger,
	}, nil
}

// PublishTask объявляет task_queue и публикует в неё persistent задачу.
func (c *Client) PublishTask(ctx context.Context, body string) error {
	if err := c.declare(ctx, func(ch Declarer) error {
		_, err := DeclareTaskQueue(ch)
		return err
	}); err != nil {
		return err
	}

	return c.publisher.PublishTask(ctx, body)
}

// PublishLog объявляет direct_logs и публикует сообщение с routing key = severity.
func (c *Client) PublishLog(ctx context.Context, severity, body string) error {
	if err := c.declare(ctx, DeclareLogsExchange); err != nil {
		return err
	}

	return c.publisher.PublishLog(ctx, severity, body)
}

// ConsumeTasks потребляет task_queue с manual ack. Блокируется до отмены ctx.
func (c *Client) ConsumeTasks(ctx context.Context, sub TaskSubscription) error {
	consumer := NewConsumer(c.conn, c.logger, ConsumerConfig{
		Setup:    DeclareTaskQueue,
		Handler:  sub.Handler,
		Prefetch: sub.Prefetch,
		OnReady:  sub.OnReady,
	})

	return consumer.Start(ctx)
}

// ConsumeLogs подписывается на direct_logs с auto ack. Блокируется до отмены ctx.
func (c *Client) ConsumeLogs(ctx context.Context, sub LogSubscription) error {
	severities := sub.Severities

	consumer := NewConsumer(c.conn, c.logger, ConsumerConfig{
		Setup: func(ch Declarer) (Queue, error) {
			return SetupLogsSubscription(ch, severities)
		},
		Handler: sub.Handler,
		AutoAck: true,
		OnReady: sub.OnReady,
	})

	return consumer.Start(ctx)
}

// Close закрывает канал и соединение.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) declare(ctx context.Context, fn func(ch Declarer) error) error {
	return c.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		return fn(ch)
	})
}
