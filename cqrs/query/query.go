// Package query defines the handler contract for read-only operations.
package query

import "context"

type (
	// Input represents the input type for a query.
	Input any

	// Result represents the result type for a query.
	Result any
)

// NoInput is the input of queries that take no parameters.
type NoInput = struct{}

// Query answers one kind of read without changing state.
type Query[I Input, R Result] interface {
	Execute(ctx context.Context, input I) (R, error)
}

// WrapFunc decorates a query with a cross-cutting concern.
type WrapFunc[I Input, R Result] func(Query[I, R]) Query[I, R]

// Func adapts a plain function to Query.
type Func[I Input, R Result] func(context.Context, I) (R, error)

// Execute calls f.
func (f Func[I, R]) Execute(ctx context.Context, input I) (R, error) {
	return f(ctx, input)
}

// Wrap applies wrappers to q so that the first wrapper is the outermost.
func Wrap[I Input, R Result](q Query[I, R], wrappers ...WrapFunc[I, R]) Query[I, R] {
	for i := len(wrappers) - 1; i >= 0; i-- {
		q = wrappers[i](q)
	}
	return q
}
