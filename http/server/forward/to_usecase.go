// Package forward adapts use case functions into fiber handlers: decode,
// validate, execute and encode.
package forward

import (
	"context"
	"fmt"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/agenda/mask"
	"github.com/rise-and-shine/agenda/observability/logger"
	"github.com/rise-and-shine/agenda/val"
)

const maxLogAllowedSize = 8 << 10 // 8KB

// UseCaseFunc handles a decoded request I and returns a response R.
type UseCaseFunc[I, R any] func(context.Context, I) (R, error)

// UseCaseNoRespFunc handles a decoded request I with no response body.
type UseCaseNoRespFunc[I any] func(context.Context, I) error

// ToUseCase decodes body, query and path into I (a pointer to a struct),
// validates it, runs uc and writes the result as JSON.
func ToUseCase[I, R any](uc UseCaseFunc[I, R], opts ...Option) fiber.Handler {
	o := buildOptions(opts)

	return func(c *fiber.Ctx) error {
		req, err := decode[I](c)
		if err != nil {
			return errx.Wrap(err)
		}

		log := requestLogger(c, req)

		err = val.ValidateSchema(req)
		if err != nil {
			return errx.Wrap(err)
		}

		resp, err := uc(c.UserContext(), req)
		if err != nil {
			return errx.Wrap(err)
		}

		raw, err := c.App().Config().JSONEncoder(resp)
		if err != nil {
			return errx.Wrap(err)
		}

		c.Status(o.status)
		c.Response().Header.SetContentType(fiber.MIMEApplicationJSON)
		c.Response().SetBodyRaw(raw)

		if len(raw) <= maxLogAllowedSize {
			log = log.With("response_body", string(raw))
		}
		log.Debug("request forwarded")
		return nil
	}
}

// ToUseCaseNoResp is ToUseCase for handlers without a response body.
func ToUseCaseNoResp[I any](uc UseCaseNoRespFunc[I], opts ...Option) fiber.Handler {
	o := buildOptions(opts)

	return func(c *fiber.Ctx) error {
		req, err := decode[I](c)
		if err != nil {
			return errx.Wrap(err)
		}

		log := requestLogger(c, req)

		err = val.ValidateSchema(req)
		if err != nil {
			return errx.Wrap(err)
		}

		err = uc(c.UserContext(), req)
		if err != nil {
			return errx.Wrap(err)
		}

		log.Debug("request forwarded")
		return errx.Wrap(c.SendStatus(o.status))
	}
}

func requestLogger(c *fiber.Ctx, req any) logger.Logger {
	log := logger.Named("http.forward").WithContext(c.UserContext()).With("route", c.Route().Path)

	if len(c.Body()) <= maxLogAllowedSize {
		return log.With("request", mask.StructToOrdMap(req))
	}
	return log.With("request", fmt.Sprintf("too large for logging: %d bytes", len(c.Body())))
}
