package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaiso/rabbitwork/internal/config"
	"github.com/shaiso/rabbitwork/internal/domain"
)

// NewTaskPublisherCmd создаёт команду new-task: одна persistent задача
// в durable очередь task_queue.
func NewTaskPublisherCmd(deps Deps) *cobra.Command {
	cmd := newRootCmd("new-task [message...]", "Publish a task to the durable task_queue")
	cmd.Long = "Publish one persistent message to task_queue. Arguments are joined with a space;\n" +
		"without arguments the body is \"" + domain.DefaultMessage + "\". Each '.' in the body is one second of work for the worker."
	cmd.Args = cobra.ArbitraryArgs
	config.BindPublishFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
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

		body := domain.MessageBody(args)
		if err := session.PublishTask(ctx, body); err != nil {
			return err
		}

		env.out.Sent(body)
		return nil
	}

	return cmd
}
