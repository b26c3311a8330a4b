// Package sqldb opens bun databases over PostgreSQL (pgx pool) or embedded
// SQLite, with query logging and OpenTelemetry hooks, and classifies driver errors.
package sqldb

import (
	"context"
	"database/sql"

	"github.com/avast/retry-go/v4"
	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bunotel"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/rise-and-shine/agenda/observability/logger"
	"github.com/rise-and-shine/agenda/sqldb/hooks"
)

// NewBunDB opens the configured database and waits until it answers a ping.
func NewBunDB(ctx context.Context, cfg Config) (*bun.DB, error) {
	var (
		db  *bun.DB
		err error
	)

	switch cfg.Driver {
	case DriverSQLite:
		db, err = openSQLite(cfg)
	default:
		db, err = openPostgres(ctx, cfg)
	}
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"driver": cfg.Driver}))
	}

	applyHooks(db, cfg)

	err = ping(ctx, db, cfg)
	if err != nil {
		_ = db.Close()
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"driver": cfg.Driver}))
	}

	return db, nil
}

// NewPool creates a PostgreSQL connection pool.
func NewPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.postgresDSN())
	if err != nil {
		return nil, errx.Wrap(err)
	}

	poolConfig.MaxConns = cfg.PoolMaxConns
	poolConfig.MinConns = cfg.PoolMinConns
	poolConfig.MaxConnIdleTime = cfg.PoolMaxConnIdleTime
	poolConfig.MaxConnLifetime = cfg.PoolMaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return pool, nil
}

func openPostgres(ctx context.Context, cfg Config) (*bun.DB, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return bun.NewDB(stdlib.OpenDBFromPool(pool), pgdialect.New()), nil
}

func openSQLite(cfg Config) (*bun.DB, error) {
	sqlDB, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	// sqlite serializes writers; one connection also keeps in-memory databases alive
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return bun.NewDB(sqlDB, sqlitedialect.New()), nil
}

func ping(ctx context.Context, db *bun.DB, cfg Config) error {
	attempts := max(cfg.PingAttempts, 1)
	log := logger.Named("sqldb").WithContext(ctx)

	return retry.Do(
		func() error { return db.PingContext(ctx) },
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(cfg.PingDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.With("attempt", n+1, "max_attempts", attempts, "error", err.Error()).Warn("database ping failed")
		}),
	)
}

// applyHooks installs the query logger (only active in debug mode) and the OpenTelemetry hook.
func applyHooks(db *bun.DB, cfg Config) {
	db.AddQueryHook(
		hooks.NewDebugHook(
			hooks.WithEnabled(cfg.Debug),
			hooks.WithVerbose(true),
			hooks.WithSlowQueryThreshold(cfg.SlowQueryThreshold),
		),
	)
	db.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName(db.Dialect().Name().String())))
}
