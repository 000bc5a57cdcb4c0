package domain

import (
	"time"

	"github.com/google/uuid"
)

// Severity — уровень важности лог-сообщения, он же routing key
// в обменнике direct_logs.
type Severity string

// Стандартные уровни. Routing key может быть любой строкой,
// эти значения лишь перечислены в usage.
const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DefaultSeverity — уровень по умолчанию для emit-log-direct.
const DefaultSeverity = SeverityInfo

// KnownSeverities возвращает уровни в порядке вывода в usage.
func KnownSeverities() []Severity {
	return []Severity{SeverityInfo, SeverityWarning, SeverityError}
}

// LogArgs разбирает аргументы emit-log-direct: первый — severity,
// остальные — текст сообщения.
func LogArgs(args []string) (Severity, string) {
	if len(args) == 0 {
		return DefaultSeverity, DefaultMessage
	}
	return Severity(args[0]), MessageBody(args[1:])
}

// LogEntry — полученное лог-сообщение.
type LogEntry struct {
	// ID — уникальный идентификатор записи.
	ID uuid.UUID `json:"id"`

	// Severity — routing key, с которым сообщение пришло.
	Severity Severity `json:"severity"`

	// Message — текст сообщения.
	Message string `json:"message"`

	// MessageID — AMQP message-id, если издатель его выставил.
	MessageID string `json:"message_id,omitempty"`

	// ReceivedAt — время получения.
	ReceivedAt time.Time `json:"received_at"`
}

// NewLogEntry создаёт LogEntry для полученного сообщения.
func NewLogEntry(severity, message, messageID string) *LogEntry {
	return &LogEntry{
		ID:         uuid.New(),
		Severity:   Severity(severity),
		Message:    message,
		MessageID:  messageID,
		ReceivedAt: time.Now().UTC(),
	}
}
