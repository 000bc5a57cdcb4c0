package worker

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shaiso/rabbitwork/internal/domain"
	"github.com/shaiso/rabbitwork/internal/mq"
	"github.com/shaiso/rabbitwork/internal/telemetry"
)

// Default configuration values.
const (
	defaultPrefetch = 1
)

// Worker выполняет задачи из task_queue.
//
// Каждая точка в теле задачи — одна единица работы (по умолчанию секунда).
// Worker пишет в Out строки " [x] Received ..." и " [x] Done".
// Ack/nack выполняет mq.Consumer по результату Handle.
type Worker struct {
	out  io.Writer
	unit time.Duration

	prefetch int
}

// Config — конфигурация Worker.
type Config struct {
	// Out — консольный вывод (default: os.Stdout).
	Out io.Writer

	// Unit — длительность работы на одну точку (default: domain.WorkUnit).
	Unit time.Duration

	// Prefetch — сколько задач брать одновременно (default: 1).
	Prefetch int
}

// New создаёт новый Worker.
func New(cfg Config) *Worker {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	unit := cfg.Unit
	if unit <= 0 {
		unit = domain.WorkUnit
	}

	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = defaultPrefetch
	}

	return &Worker{
		out:      out,
		unit:     unit,
		prefetch: prefetch,
	}
}

// Prefetch возвращает настроенный prefetch.
func (w *Worker) Prefetch() int {
	return w.prefetch
}

// Handle обрабатывает одну задачу. Реализует mq.Handler.
// Логгер берётся из контекста (telemetry.FromContext).
func (w *Worker) Handle(ctx context.Context, delivery *mq.Delivery) error {
	logger := telemetry.FromContext(ctx)
	task := domain.NewTask(delivery.Body)

	fmt.Fprintf(w.out, " [x] Received %s\n", task.Body)

	dots := int64(task.Duration() / domain.WorkUnit)
	duration := time.Duration(dots) * w.unit

	logger.Debug("task started",
		"message_id", delivery.MessageID,
		"duration", duration,
	)

	if err := sleep(ctx, duration); err != nil {
		logger.Warn("task interrupted", "message_id", delivery.MessageID)
		return err
	}

	fmt.Fprintln(w.out, " [x] Done")

	logger.Debug("task done", "message_id", delivery.MessageID)
	return nil
}
