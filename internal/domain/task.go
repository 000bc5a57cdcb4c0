package domain

import (
	"strings"
	"time"
)

// DefaultMessage — тело сообщения, если аргументы не переданы.
const DefaultMessage = "Hello World!"

// WorkUnit — время "работы" на одну точку в теле задачи.
const WorkUnit = time.Second

// Task — задача из рабочей очереди.
//
// Тело задачи — произвольный текст. Каждая точка в теле означает
// одну секунду имитируемой работы: "First message." займёт 1с,
// "Third message..." — 3с.
type Task struct {
	// Body — текст задачи.
	Body string `json:"body"`

	// ReceivedAt — время получения воркером.
	ReceivedAt time.Time `json:"received_at"`
}

// NewTask создаёт Task из тела сообщения.
func NewTask(body []byte) *Task {
	return &Task{
		Body:       string(body),
		ReceivedAt: time.Now().UTC(),
	}
}

// Duration возвращает длительность работы над задачей.
func (t *Task) Duration() time.Duration {
	return WorkDuration(t.Body)
}

// MessageBody собирает тело сообщения из аргументов командной строки.
// Аргументы объединяются через пробел; без аргументов — DefaultMessage.
func MessageBody(args []string) string {
	if len(args) == 0 {
		return DefaultMessage
	}
	return strings.Join(args, " ")
}

// WorkDuration считает длительность работы по количеству точек в теле.
func WorkDuration(body string) time.Duration {
	return time.Duration(strings.Count(body, ".")) * WorkUnit
}
