package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shaiso/rabbitwork/internal/config"
	"github.com/shaiso/rabbitwork/internal/domain"
	"github.com/shaiso/rabbitwork/internal/mq"
	"github.com/shaiso/rabbitwork/internal/telemetry"
)

// programName — имя исполняемого файла для строки usage.
var programName = func() string {
	return filepath.Base(os.Args[0])
}

// NewLogReceiverCmd создаёт команду receive-logs-direct.
//
// Без аргументов печатает usage, ждёт enter и завершается с кодом 1,
// не подключаясь к брокеру.
func NewLogReceiverCmd(deps Deps) *cobra.Command {
	cmd := newRootCmd("receive-logs-direct [info] [warning] [error]", "Print messages from direct_logs for the given severities")
	cmd.Args = cobra.ArbitraryArgs
	config.BindConsumeFlags(cmd.Flags())
	config.BindStoreFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		env, err := newCmdEnv(cmd)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			env.out.Usage(programName())
			env.out.PressEnter()
			waitEnter(cmd.InOrStdin(), env.logger)
			return ErrUsage
		}

		ctx := env.ctx

		var store LogStore
		if env.cfg.DBURL != "" {
			s, closeStore, err := deps.OpenStore(ctx, env.cfg.DBURL)
			if err != nil {
				return err
			}
			defer closeStore()
			store = s
		}

		session, err := deps.Open(ctx, env.cfg, cmd.Name(), env.logger)
		if err != nil {
			return err
		}
		defer session.Close()

		handler := func(ctx context.Context, d *mq.Delivery) error {
			env.out.Received(d.RoutingKey, string(d.Body))
			if store == nil {
				return nil
			}

			entry := domain.NewLogEntry(d.RoutingKey, string(d.Body), d.MessageID)
			if err := store.Save(ctx, entry); err != nil {
				telemetry.FromContext(ctx).Warn("failed to save log entry",
					"entry_id", entry.ID,
					"routing_key", d.RoutingKey,
					"error", err,
				)
				return err
			}
			return nil
		}

		return runConsumer(ctx, env, func(ctx context.Context) error {
			return session.ConsumeLogs(ctx, mq.LogSubscription{
				Severities: args,
				Handler:    handler,
				OnReady: func(queue mq.Queue) {
					env.logger.Info("subscribed", "queue", queue, "severities", args)
					env.out.Waiting()
				},
			})
		})
	}

	return cmd
}

// waitEnter ждёт одну строку (или EOF) из r.
// Ошибка чтения не меняет исход команды, поэтому только логируется.
func waitEnter(r io.Reader, logger *slog.Logger) {
	if _, err := bufio.NewReader(r).ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		logger.Debug("read stdin", "error", err)
	}
}
