// Package command defines the handler contract for state-changing operations.
package command

import "context"

// EmptyResult is the result type of commands that return nothing.
type EmptyResult = struct{}

type (
	// Input represents the input type for a command.
	Input any

	// Result represents the result type for a command.
	Result any
)

// Command handles one kind of state change.
type Command[I Input, R Result] interface {
	Execute(ctx context.Context, input I) (R, error)
}

// WrapFunc decorates a command with a cross-cutting concern.
type WrapFunc[I Input, R Result] func(Command[I, R]) Command[I, R]

// Func adapts a plain function to Command.
type Func[I Input, R Result] func(context.Context, I) (R, error)

// Execute calls f.
func (f Func[I, R]) Execute(ctx context.Context, input I) (R, error) {
	return f(ctx, input)
}

// Wrap applies wrappers to cmd so that the first wrapper is the outermost.
func Wrap[I Input, R Result](cmd Command[I, R], wrappers ...WrapFunc[I, R]) Command[I, R] {
	for i := len(wrappers) - 1; i >= 0; i-- {
		cmd = wrappers[i](cmd)
	}
	return cmd
}
