package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

// ErrUsage — команда вызвана без обязательных аргументов; usage уже выведен.
var ErrUsage = errors.New("usage")

// ExitCode переводит ошибку команды в код завершения процесса.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Execute запускает команду и возвращает код завершения.
// Ошибки, кроме ErrUsage, печатаются в stderr команды.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, ErrUsage) {
		NewOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()).Error(err.Error())
	}
	return ExitCode(err)
}
