// Package cqrs separates state-changing commands (package command) from
// read-only queries (package query). Both share the same shape: a generic
// Execute(ctx, input) handler that wrappers decorate with logging, tracing,
// timeouts and panic recovery.
package cqrs
