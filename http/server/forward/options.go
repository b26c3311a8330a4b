package forward

import "github.com/gofiber/fiber/v2"

type options struct {
	status int
}

// Option customizes a forwarded handler.
type Option func(*options)

// WithStatus sets the success status code (200 by default).
func WithStatus(status int) Option {
	return func(o *options) {
		o.status = status
	}
}

func buildOptions(opts []Option) options {
	o := options{status: fiber.StatusOK}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
