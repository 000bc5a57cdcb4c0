package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shaiso/rabbitwork/internal/domain"
)

// Output — консольный вывод утилит.
//
// Строки протокола (" [x] Sent ...", " [x] Received ...") идут в stdout,
// usage и ошибки — в stderr.
type Output struct {
	w    io.Writer // stdout для данных
	errW io.Writer // stderr для сообщений
}

// NewOutput создаёт Output.
func NewOutput(w, errW io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	if errW == nil {
		errW = os.Stderr
	}
	return &Output{w: w, errW: errW}
}

// Sent печатает подтверждение отправки задачи.
func (o *Output) Sent(body string) {
	fmt.Fprintf(o.w, " [x] Sent %s\n", body)
}

// SentLog печатает подтверждение отправки лог-сообщения.
func (o *Output) SentLog(severity domain.Severity, body string) {
	fmt.Fprintf(o.w, " [x] Sent '%s':'%s'\n", severity, body)
}

// Received печатает полученное лог-сообщение.
func (o *Output) Received(routingKey, body string) {
	fmt.Fprintf(o.w, " [x] Received '%s':'%s'\n", routingKey, body)
}

// Waiting печатает приглашение потребителя.
func (o *Output) Waiting() {
	fmt.Fprintln(o.w, " [*] Waiting for messages. To exit press CTRL+C")
}

// Usage печатает строку usage подписчика логов в stderr.
func (o *Output) Usage(prog string) {
	severities := domain.KnownSeverities()
	parts := make([]string, len(severities))
	for i, s := range severities {
		parts[i] = "[" + string(s) + "]"
	}
	fmt.Fprintf(o.errW, "Usage: %s %s\n", prog, strings.Join(parts, " "))
}

// PressEnter печатает приглашение нажать enter.
func (o *Output) PressEnter() {
	fmt.Fprintln(o.w, " Press [enter] to exit.")
}

// Error выводит сообщение об ошибке в stderr.
func (o *Output) Error(msg string) {
	fmt.Fprintln(o.errW, "Error: "+msg)
}
