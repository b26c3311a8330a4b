// Package server provides a configurable HTTP server based on the Fiber framework.
package server

import (
	"context"
	"net/http"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
)

// HTTPServer is a fiber application with prioritized middlewares and
// uniform JSON error responses.
type HTTPServer struct {
	cfg    Config
	router *fiber.App
}

// NewHTTPServer creates a new HTTPServer, applying middlewares in descending priority.
func NewHTTPServer(cfg Config, middlewares []Middleware) *HTTPServer {
	router := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		ErrorHandler:          customErrorHandler(cfg.HideErrorDetails),
		DisableStartupMessage: true,
		Immutable:             true,
		BodyLimit:             cfg.BodyLimit,
	})

	applyMiddlewares(router, middlewares)

	return &HTTPServer{
		cfg:    cfg,
		router: router,
	}
}

// RegisterRouter registers routes with the server using the provided register function.
func (s *HTTPServer) RegisterRouter(registerFunc func(r fiber.Router)) {
	registerFunc(s.router)
}

// Start listens on the configured address until Stop is called.
func (s *HTTPServer) Start() error {
	return errx.Wrap(s.router.Listen(s.cfg.Address()))
}

// Stop gracefully stops the server, waiting for in-flight requests until ctx is done.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return errx.Wrap(s.router.ShutdownWithContext(ctx))
}

// Test serves req in-process without a listener. Timeout of -1 disables the deadline.
func (s *HTTPServer) Test(req *http.Request, msTimeout ...int) (*http.Response, error) {
	return s.router.Test(req, msTimeout...)
}
