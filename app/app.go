// Package app assembles the agenda service from its configuration.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/code19m/errx"
	"github.com/rcrowley/go-metrics"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/agenda/calendar"
	"github.com/rise-and-shine/agenda/calendar/commands"
	"github.com/rise-and-shine/agenda/calendar/commandstore"
	"github.com/rise-and-shine/agenda/calendar/export"
	"github.com/rise-and-shine/agenda/calendar/httpapi"
	"github.com/rise-and-shine/agenda/calendar/queries"
	"github.com/rise-and-shine/agenda/calendar/querystore"
	"github.com/rise-and-shine/agenda/calendar/relay"
	"github.com/rise-and-shine/agenda/http/server"
	"github.com/rise-and-shine/agenda/http/server/middleware"
	"github.com/rise-and-shine/agenda/meta"
	"github.com/rise-and-shine/agenda/observability/logger"
	"github.com/rise-and-shine/agenda/observability/tracing"
	"github.com/rise-and-shine/agenda/sqldb"
)

const shutdownTimeout = 15 * time.Second

// App owns every long-lived resource of the service.
type App struct {
	cfg    Config
	log    logger.Logger
	server *server.HTTPServer

	// closers run in reverse order on Close.
	closers []func() error
}

// New connects the stores, builds the command and query handlers and
// registers the HTTP routes. Resources opened before a failure are released.
func New(ctx context.Context, cfg Config) (_ *App, err error) {
	meta.SetServiceInfo(cfg.Service.Name, cfg.Service.Version)

	a := &App{cfg: cfg, log: logger.Named("app")}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	shutdownTracer, err := tracing.InitGlobalTracer(ctx, cfg.Tracing)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	a.closers = append(a.closers, shutdownTracer)

	db, err := a.openDatabase(ctx)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	commandStore := commandstore.New(db, cfg.Database.Schema())

	queryStore, err := a.openQueryStore(ctx)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	if cfg.QueryStore.RebuildOnStart {
		n, err := relay.Rebuild(ctx, commandStore, queryStore)
		if err != nil {
			return nil, errx.Wrap(err)
		}
		a.log.Infof("query store rebuilt with %d events", n)
	}

	registry := metrics.NewRegistry()
	bus := relay.NewBus(registry)
	bus.Subscribe("projector", relay.NewProjector(queryStore))

	if cfg.Export.Enabled {
		exporter, err := export.New(cfg.Export, cfg.Service.Name)
		if err != nil {
			return nil, errx.Wrap(err)
		}
		a.closers = append(a.closers, exporter.Close)
		bus.Subscribe("kafka_export", exporter)
	}

	handler := httpapi.NewHandler(
		commands.NewSet(commandStore, bus, a.log, cfg.Commands.Timeout),
		queries.NewSet(queryStore, a.log),
		registry,
	)

	a.server = server.NewHTTPServer(cfg.HTTPServer, []server.Middleware{
		middleware.NewRecoveryMW(a.log),
		middleware.NewTracingMW(),
		middleware.NewTimeoutMW(cfg.HTTPServer.HandleTimeout),
		middleware.NewMetaInjectMW(cfg.Service.Name, cfg.Service.Version),
		middleware.NewLoggerMW(a.log),
		middleware.NewErrorHandlerMW(cfg.HTTPServer.HideErrorDetails),
	})
	a.server.RegisterRouter(handler.Register)

	return a, nil
}

func (a *App) openDatabase(ctx context.Context) (*bun.DB, error) {
	db, err := sqldb.NewBunDB(ctx, a.cfg.Database)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	a.closers = append(a.closers, db.Close)

	if a.cfg.Database.AutoMigrate {
		if err = commandstore.Migrate(ctx, db); err != nil {
			return nil, errx.Wrap(err)
		}
	}

	return db, nil
}

func (a *App) openQueryStore(ctx context.Context) (calendar.QueryStore, error) {
	if a.cfg.QueryStore.Driver != querystore.DriverRedis {
		return querystore.NewMemory(), nil
	}

	client := querystore.NewRedisClient(a.cfg.QueryStore.Redis)
	a.closers = append(a.closers, client.Close)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"addrs": a.cfg.QueryStore.Redis.Addrs}))
	}

	return querystore.NewRedis(client, a.cfg.QueryStore.Redis.Key), nil
}

// Server returns the HTTP server, e.g. for in-process requests in tests.
func (a *App) Server() *server.HTTPServer {
	return a.server
}

// Run serves HTTP until ctx is cancelled or the listener fails, then shuts
// the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("http server listening on %s", a.cfg.HTTPServer.Address())
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		return errx.Wrap(err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	return errx.Wrap(a.server.Stop(shutdownCtx))
}

// Close releases every resource in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errx.Wrap(errors.Join(errs...))
}
