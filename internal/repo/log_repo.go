package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/rabbitwork/internal/domain"
)

// pgUniqueViolation — SQLSTATE нарушения уникальности.
const pgUniqueViolation = "23505"

const schemaLogEntries = `
	CREATE TABLE IF NOT EXISTS log_entries (
		id          uuid PRIMARY KEY,
		severity    text        NOT NULL,
		message     text        NOT NULL,
		message_id  text,
		received_at timestamptz NOT NULL
	);
	CREATE INDEX IF NOT EXISTS log_entries_severity_idx ON log_entries (severity, received_at DESC);
`

// LogRepo — журнал полученных лог-сообщений.
type LogRepo struct {
	pool *pgxpool.Pool
}

// NewLogRepo создаёт новый LogRepo.
func NewLogRepo(pool *pgxpool.Pool) *LogRepo {
	return &LogRepo{pool: pool}
}

// EnsureSchema создаёт таблицу log_entries, если её нет.
func (r *LogRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaLogEntries); err != nil {
		return fmt.Errorf("ensure log_entries schema: %w", err)
	}
	return nil
}

// Save сохраняет запись.
func (r *LogRepo) Save(ctx context.Context, entry *domain.LogEntry) error {
	query := `
		INSERT INTO log_entries (id, severity, message, message_id, received_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		string(entry.Severity),
		entry.Message,
		nullString(entry.MessageID),
		entry.ReceivedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert log entry: %w", err)
	}
	return nil
}

// nullString возвращает nil для пустой строки (NULL в БД).
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
