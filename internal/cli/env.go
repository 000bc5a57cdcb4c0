package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shaiso/rabbitwork/internal/config"
	"github.com/shaiso/rabbitwork/internal/telemetry"
)

// cmdEnv — то, что нужно каждой команде после разбора флагов.
type cmdEnv struct {
	// ctx — контекст команды с логгером внутри (telemetry.FromContext).
	ctx    context.Context
	cfg    *config.Config
	logger *slog.Logger
	out    *Output
}

// newCmdEnv загружает конфигурацию и настраивает глобальный логгер.
// Логи пишутся в stderr команды.
func newCmdEnv(cmd *cobra.Command) (*cmdEnv, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := telemetry.SetupLogger(telemetry.LogOptions{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	}).With("cmd", cmd.Name())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return &cmdEnv{
		ctx:    telemetry.WithLogger(ctx, logger),
		cfg:    cfg,
		logger: logger,
		out:    NewOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	}, nil
}

// newRootCmd создаёт команду-утилиту с общими флагами.
func newRootCmd(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.BindFlags(cmd.Flags())
	return cmd
}

// runConsumer запускает consume и, если задан адрес, сервер метрик.
// Отмена внешнего контекста (SIGINT/SIGTERM) — штатное завершение.
func runConsumer(ctx context.Context, env *cmdEnv, consume func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return consume(gctx)
	})

	if env.cfg.MetricsAddr != "" {
		g.Go(func() error {
			return telemetry.ServeMetrics(gctx, env.cfg.MetricsAddr, env.logger)
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		env.logger.Debug("interrupted, shutting down")
		return nil
	}
	return err
}
