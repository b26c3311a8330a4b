// Package wrapper provides decorators for query handlers.
package wrapper
