package wrapper

import (
	"context"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/agenda/cqrs/command"
	"github.com/rise-and-shine/agenda/mask"
	"github.com/rise-and-shine/agenda/observability/logger"
)

// LoggerCommandWrapper logs every execution with its masked input, duration
// and outcome. Panics below it are recovered and logged as errors.
type LoggerCommandWrapper[I command.Input, R command.Result] struct {
	logger logger.Logger
	next   command.Command[I, R]
}

func NewLoggerCommandWrapper[I command.Input, R command.Result](
	log logger.Logger,
	cmdName string,
) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &LoggerCommandWrapper[I, R]{
			logger: log.Named("cqrs.command").With("command_name", cmdName),
			next:   next,
		}
	}
}

func (cmd *LoggerCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	start := time.Now()

	result, err := executeWithRecovery(ctx, cmd.next, input)

	log := cmd.logger.
		WithContext(ctx).
		With("execution_time", time.Since(start).String()).
		With("input", mask.StructToOrdMap(input))

	if err != nil {
		e := errx.AsErrorX(err)
		log.With("error", map[string]any{
			"code":    e.Code(),
			"type":    e.Type().String(),
			"trace":   e.Trace(),
			"fields":  e.Fields(),
			"details": e.Details(),
		}).Error(e.Error())
	} else {
		log.Info("command executed")
	}

	return result, err
}

func executeWithRecovery[I command.Input, R command.Result](
	ctx context.Context,
	cmd command.Command[I, R],
	input I,
) (_ R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError("panic recovered in logger command wrapper", r)
		}
	}()

	return cmd.Execute(ctx, input)
}
