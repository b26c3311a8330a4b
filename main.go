package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rise-and-shine/agenda/app"
	"github.com/rise-and-shine/agenda/cfgloader"
	"github.com/rise-and-shine/agenda/observability/logger"
)

func main() {
	cfg := cfgloader.MustLoad[app.Config]()

	logger.SetGlobal(cfg.Logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatalx(err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Errorx(err)
		}
	}()

	if err = a.Run(ctx); err != nil {
		logger.Errorx(err)
	}
}
