package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/agenda/http/server"
	"github.com/rise-and-shine/agenda/observability/logger"
)

// NewRecoveryMW turns a panic anywhere below it into an internal error.
func NewRecoveryMW(log logger.Logger) server.Middleware {
	return server.Middleware{
		Priority: 1000,
		Handler: func(c *fiber.Ctx) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = panicError("panic recovered", r)
					log.Named("middleware.recovery").WithContext(c.UserContext()).Errorx(err)
				}
			}()

			return c.Next()
		},
	}
}
