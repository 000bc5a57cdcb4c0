package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shaiso/rabbitwork/internal/config"
	"github.com/shaiso/rabbitwork/internal/mq"
	"github.com/shaiso/rabbitwork/internal/worker"
)

// NewWorkerCmd создаёт команду worker: потребитель task_queue.
func NewWorkerCmd(deps Deps) *cobra.Command {
	var prefetch int

	cmd := newRootCmd("worker", "Consume tasks from task_queue, one at a time")
	cmd.Args = cobra.NoArgs
	config.BindConsumeFlags(cmd.Flags())
	cmd.Flags().IntVar(&prefetch, "prefetch", 1, "Unacknowledged tasks per worker")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		env, err := newCmdEnv(cmd)
		if err != nil {
			return err
		}
		ctx := env.ctx

		session, err := deps.Open(ctx, env.cfg, cmd.Name(), env.logger)
		if err != nil {
			return err
		}
		defer session.Close()

		w := worker.New(worker.Config{
			Out:      cmd.OutOrStdout(),
			Prefetch: prefetch,
		})

		return runConsumer(ctx, env, func(ctx context.Context) error {
			return session.ConsumeTasks(ctx, mq.TaskSubscription{
				Prefetch: w.Prefetch(),
				Handler:  w.Handle,
				OnReady: func(queue mq.Queue) {
					env.logger.Info("consuming", "queue", queue, "prefetch", w.Prefetch())
					env.out.Waiting()
				},
			})
		})
	}

	return cmd
}
