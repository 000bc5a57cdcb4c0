package cli

import (
	"context"
	"log/slog"

	"github.com/shaiso/rabbitwork/internal/config"
	"github.com/shaiso/rabbitwork/internal/domain"
	"github.com/shaiso/rabbitwork/internal/mq"
	"github.com/shaiso/rabbitwork/internal/repo"
)

// Session — соединение с брокером, которым пользуются команды.
// Реализуется *mq.Client.
type Session interface {
	PublishTask(ctx context.Context, body string) error
	PublishLog(ctx context.Context, severity, body string) error
	ConsumeTasks(ctx context.Context, sub mq.TaskSubscription) error
	ConsumeLogs(ctx context.Context, sub mq.LogSubscription) error
	Close() error
}

// LogStore — журнал полученных лог-сообщений.
type LogStore interface {
	Save(ctx context.Context, entry *domain.LogEntry) error
}

// Opener открывает Session. name — имя соединения в брокере.
type Opener func(ctx context.Context, cfg *config.Config, name string, logger *slog.Logger) (Session, error)

// StoreOpener открывает LogStore. Возвращённая close-функция освобождает ресурсы.
type StoreOpener func(ctx context.Context, dsn string) (LogStore, func(), error)

// Deps — внешние зависимости команд.
type Deps struct {
	Open      Opener
	OpenStore StoreOpener
}

// DefaultDeps возвращает зависимости для реального брокера и PostgreSQL.
func DefaultDeps() Deps {
	return Deps{
		Open:      DialSession,
		OpenStore: OpenLogStore,
	}
}

// DialSession подключается к RabbitMQ.
func DialSession(ctx context.Context, cfg *config.Config, name string, logger *slog.Logger) (Session, error) {
	client, err := mq.Dial(ctx, mq.ClientConfig{
		URL:     cfg.RabbitMQURL,
		Name:    name,
		Confirm: cfg.Confirm,
	}, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// OpenLogStore подключается к PostgreSQL и создаёт таблицу журнала.
func OpenLogStore(ctx context.Context, dsn string) (LogStore, func(), error) {
	pool, err := repo.NewPool(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}

	logs := repo.NewLogRepo(pool)
	if err := logs.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	return logs, pool.Close, nil
}
