package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/agenda/http/server"
	"github.com/rise-and-shine/agenda/meta"
)

// NewMetaInjectMW copies request and service metadata into the request context.
// The trace id set by the tracing middleware is kept.
func NewMetaInjectMW(serviceName, serviceVersion string) server.Middleware {
	return server.Middleware{
		Priority: 700,
		Handler: func(c *fiber.Ctx) error {
			ctx := meta.InjectMetaToContext(c.UserContext(), map[meta.ContextKey]string{
				meta.IPAddress:      c.IP(),
				meta.UserAgent:      c.Get(fiber.HeaderUserAgent),
				meta.RemoteAddr:     c.Context().RemoteAddr().String(),
				meta.ServiceName:    serviceName,
				meta.ServiceVersion: serviceVersion,
			})
			c.SetUserContext(ctx)

			return c.Next()
		},
	}
}
