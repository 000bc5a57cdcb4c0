package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaiso/rabbitwork/internal/config"
	"github.com/shaiso/rabbitwork/internal/domain"
)

// NewLogEmitterCmd создаёт команду emit-log-direct.
func NewLogEmitterCmd(deps Deps) *cobra.Command {
	cmd := newRootCmd("emit-log-direct [severity] [message...]", "Publish a log message to the direct_logs exchange")
	cmd.Long = "Publish one message to direct_logs with routing key = severity (default \"" +
		string(domain.DefaultSeverity) + "\"). The rest of the arguments form the body."
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

		severity, body := domain.LogArgs(args)
		if err := session.PublishLog(ctx, string(severity), body); err != nil {
			return err
		}

		env.out.SentLog(severity, body)
		return nil
	}

	return cmd
}
