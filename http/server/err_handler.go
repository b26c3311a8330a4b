package server

import (
	"errors"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/agenda/meta"
)

const (
	// codeRouterError is used when the router itself rejects a request.
	codeRouterError = "ROUTER_ERROR"
)

// errorSchema is the error body returned to clients.
type errorSchema struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Cause   string            `json:"cause"`
	Trace   string            `json:"trace,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details map[string]any    `json:"details,omitempty"`
}

// WriteErrorResponse writes err as `{"trace_id": ..., "error": {...}}` with a
// status derived from its errx type, and returns err as an errx.ErrorX.
func WriteErrorResponse(c *fiber.Ctx, err error, hideDetails bool) error {
	e := mapAnyErrorToErrorX(err)

	c.Status(mapErrorTypeToHTTPStatusCode(e.Type()))
	_ = c.JSON(fiber.Map{
		"trace_id": meta.Find(c.UserContext(), meta.TraceID),
		"error":    buildErrorSchema(e, hideDetails),
	})

	return e
}

// customErrorHandler catches errors that escaped the middleware chain.
// Responses that already carry an error status are left untouched.
func customErrorHandler(hideDetails bool) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		if r := ctx.Response(); r != nil && r.StatusCode() >= fiber.StatusBadRequest {
			return nil
		}

		_ = WriteErrorResponse(ctx, err, hideDetails)
		return nil
	}
}

func buildErrorSchema(e errx.ErrorX, hideDetails bool) errorSchema {
	schema := errorSchema{
		Code:    e.Code(),
		Message: messageFor(e),
		Cause:   e.Error(),
		Fields:  e.Fields(),
	}
	if !hideDetails {
		schema.Trace = e.Trace()
		schema.Details = e.Details()
	}
	return schema
}

// messageFor returns a client facing message. Internal causes are not echoed.
func messageFor(e errx.ErrorX) string {
	switch e.Type() {
	case errx.T_NotFound:
		return "Requested resource was not found"
	case errx.T_Validation:
		return "Request is invalid"
	case errx.T_Conflict:
		return "Request conflicts with the current state"
	case errx.T_Authentication, errx.T_Forbidden:
		return "Access denied"
	case errx.T_Throttling:
		return "Too many requests"
	default:
		return "Internal server error"
	}
}

func mapErrorTypeToHTTPStatusCode(t errx.Type) int {
	switch t {
	case errx.T_Authentication:
		return fiber.StatusUnauthorized
	case errx.T_Forbidden:
		return fiber.StatusForbidden
	case errx.T_NotFound:
		return fiber.StatusNotFound
	case errx.T_Validation:
		return fiber.StatusBadRequest
	case errx.T_Conflict:
		return fiber.StatusConflict
	case errx.T_Throttling:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// mapAnyErrorToErrorX converts err to errx.ErrorX, translating fiber router
// errors (unknown route, bad method, oversized body) to matching errx types.
func mapAnyErrorToErrorX(err error) errx.ErrorX {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		var t errx.Type

		switch {
		case fiberErr.Code == fiber.StatusUnauthorized:
			t = errx.T_Authentication
		case fiberErr.Code == fiber.StatusForbidden:
			t = errx.T_Forbidden
		case fiberErr.Code == fiber.StatusNotFound:
			t = errx.T_NotFound
		case fiberErr.Code == fiber.StatusConflict:
			t = errx.T_Conflict
		case fiberErr.Code == fiber.StatusTooManyRequests:
			t = errx.T_Throttling
		case fiberErr.Code >= 400 && fiberErr.Code < 500:
			t = errx.T_Validation
		default:
			t = errx.T_Internal
		}

		err = errx.New(
			fiberErr.Message,
			errx.WithCode(codeRouterError),
			errx.WithType(t),
			errx.WithDetails(errx.D{"fiber_code": fiberErr.Code}),
		)
	}

	return errx.AsErrorX(err)
}
