// receive-logs-direct — печатает сообщения из direct_logs для
// указанных severities.
//
// Использование:
//
//	receive-logs-direct [--metrics-addr ADDR] [--db-url DSN] [info] [warning] [error]
//
// Работает до CTRL+C. Без аргументов печатает usage и завершается с кодом 1.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shaiso/rabbitwork/internal/cli"
)

func main() {
	// graceful shutdown: канал и соединение закрываются через defer в команде
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.NewLogReceiverCmd(cli.DefaultDeps()))
	cancel()
	os.Exit(code)
}
