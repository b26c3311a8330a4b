package middleware

import (
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/agenda/http/server"
	"github.com/rise-and-shine/agenda/observability/logger"
)

// NewLoggerMW logs every request: info for 2xx/3xx, warn for 4xx, error for 5xx.
func NewLoggerMW(log logger.Logger) server.Middleware {
	base := log.Named("middleware.logger")

	return server.Middleware{
		Priority: 500,
		Handler: func(c *fiber.Ctx) error {
			start := time.Now()

			err := handleWithRecovery(c)

			statusCode := c.Response().StatusCode()
			if err != nil && statusCode < fiber.StatusBadRequest {
				// not rendered yet; the error handler below decides the status
				statusCode = fiber.StatusInternalServerError
			}

			l := base.WithContext(c.UserContext()).With(
				"http_status_code", statusCode,
				"http_method", c.Method(),
				"http_path", c.Path(),
				"http_route", c.Route().Path,
				"duration", time.Since(start),
				"request_size", c.Request().Header.ContentLength(),
			)

			if err != nil {
				e := errx.AsErrorX(err)
				l = l.With("error", map[string]any{
					"code":    e.Code(),
					"type":    e.Type().String(),
					"trace":   e.Trace(),
					"fields":  e.Fields(),
					"details": e.Details(),
				})
			}

			switch {
			case statusCode >= fiber.StatusInternalServerError:
				l.Error(err)
			case statusCode >= fiber.StatusBadRequest:
				l.Warn(err)
			default:
				l.Info("request processed")
			}

			return err
		},
	}
}

func handleWithRecovery(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError("panic recovered at logger middleware", r)
		}
	}()

	return c.Next()
}
