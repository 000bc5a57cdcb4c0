// new-task — публикует задачу в durable очередь task_queue.
//
// Использование:
//
//	new-task [--url URL] [--confirm] [message...]
//
// Аргументы объединяются через пробел; без аргументов отправляется
// "Hello World!". Сообщение persistent (delivery mode 2).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shaiso/rabbitwork/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.NewTaskPublisherCmd(cli.DefaultDeps()))
	cancel()
	os.Exit(code)
}
