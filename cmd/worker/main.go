// worker — потребитель рабочей очереди task_queue.
//
// Worker:
//   - Берёт по одной задаче (prefetch 1, fair dispatch)
//   - Работает секунду на каждую точку в теле задачи
//   - Подтверждает задачу после выполнения (manual ack)
//
// Воркеры масштабируются горизонтально: несколько экземпляров
// делят одну очередь.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shaiso/rabbitwork/internal/cli"
)

func main() {
	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.NewWorkerCmd(cli.DefaultDeps()))
	cancel()
	os.Exit(code)
}
