// emit-log-direct — публикует сообщение в обменник direct_logs.
//
// Использование:
//
//	emit-log-direct [severity] [message...]
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
	code := cli.Execute(ctx, cli.NewLogEmitterCmd(cli.DefaultDeps()))
	cancel()
	os.Exit(code)
}
