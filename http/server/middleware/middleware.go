// Package middleware provides fiber middlewares for the server package.
//
// Each middleware declares a priority; higher values run earlier:
//
//   - Recovery (1000): catches panics in the chain
//   - Tracing (900): starts a server span and assigns the trace id
//   - Timeout (800): bounds the request context
//   - MetaInject (700): copies request metadata into the context
//   - Logger (500): logs each request with its outcome
//   - ErrorHandler (400): renders errors as JSON
package middleware

import (
	"runtime"

	"github.com/code19m/errx"
)

const stackTraceSize = 4096

// panicError converts a recovered value into an internal errx error carrying the stack.
func panicError(msg string, r any) error {
	stack := make([]byte, stackTraceSize)
	stack = stack[:runtime.Stack(stack, false)]

	return errx.New(msg, errx.WithType(errx.T_Internal), errx.WithDetails(errx.D{
		"stack_trace":   string(stack),
		"panic_message": r,
	}))
}
