package wrapper

import (
	"context"
	"time"

	"github.com/rise-and-shine/agenda/cqrs/command"
)

// TimeoutCommandWrapper bounds each execution. A zero timeout disables it.
type TimeoutCommandWrapper[I command.Input, R command.Result] struct {
	timeout time.Duration
	next    command.Command[I, R]
}

func NewTimeoutCommandWrapper[I command.Input, R command.Result](timeout time.Duration) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &TimeoutCommandWrapper[I, R]{timeout: timeout, next: next}
	}
}

func (cmd *TimeoutCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	if cmd.timeout <= 0 {
		return cmd.next.Execute(ctx, input)
	}

	ctx, cancel := context.WithTimeout(ctx, cmd.timeout)
	defer cancel()

	return cmd.next.Execute(ctx, input)
}
