// Package wrapper provides decorators for command handlers.
//
// A typical chain, outermost first:
//
//	command.Wrap(handler,
//		wrapper.NewMetaInjectCommandWrapper[I, R]("CreateEvent"),
//		wrapper.NewLoggerCommandWrapper[I, R](log, "CreateEvent"),
//		wrapper.NewTracingCommandWrapper[I, R]("CreateEvent"),
//		wrapper.NewTimeoutCommandWrapper[I, R](5*time.Second),
//	)
package wrapper

import (
	"fmt"
	"runtime"

	"github.com/code19m/errx"
)

const stackTraceSize = 4096

func panicError(msg string, r any) error {
	stack := make([]byte, stackTraceSize)
	stack = stack[:runtime.Stack(stack, false)]

	return errx.New(msg, errx.WithType(errx.T_Internal), errx.WithDetails(errx.D{
		"stack_trace":  string(stack),
		"panic_values": fmt.Sprintf("%v", r),
	}))
}
