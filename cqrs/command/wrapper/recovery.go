package wrapper

import (
	"context"

	"github.com/rise-and-shine/agenda/cqrs/command"
	"github.com/rise-and-shine/agenda/observability/logger"
)

// RecoveryCommandWrapper converts a panic in the wrapped command into an internal error.
type RecoveryCommandWrapper[I command.Input, R command.Result] struct {
	logger logger.Logger
	next   command.Command[I, R]
}

func NewRecoveryCommandWrapper[I command.Input, R command.Result](
	log logger.Logger,
	cmdName string,
) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &RecoveryCommandWrapper[I, R]{
			logger: log.Named("cqrs.command.recovery").With("command_name", cmdName),
			next:   next,
		}
	}
}

func (cmd *RecoveryCommandWrapper[I, R]) Execute(ctx context.Context, input I) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError("panic recovered in recovery wrapper", r)
			cmd.logger.WithContext(ctx).Errorx(err)
		}
	}()

	return cmd.next.Execute(ctx, input)
}
