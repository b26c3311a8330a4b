// Package hooks holds bun query hooks.
package hooks

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/rise-and-shine/agenda/observability/logger"
)

var _ bun.QueryHook = (*DebugHook)(nil)

// DebugHook logs bun queries through the application logger and flags slow ones.
type DebugHook struct {
	enabled            bool
	verbose            bool
	slowQueryThreshold time.Duration
	log                logger.Logger
}

// DebugHookOption configures a DebugHook.
type DebugHookOption func(*DebugHook)

// NewDebugHook returns an enabled, verbose hook with a 100ms slow query threshold.
func NewDebugHook(opts ...DebugHookOption) *DebugHook {
	hook := &DebugHook{
		enabled:            true,
		verbose:            true,
		slowQueryThreshold: 100 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(hook)
	}

	return hook
}

// WithEnabled turns query logging on or off.
func WithEnabled(enabled bool) DebugHookOption {
	return func(h *DebugHook) {
		h.enabled = enabled
	}
}

// WithVerbose logs successful queries too; otherwise only failures and slow queries.
func WithVerbose(verbose bool) DebugHookOption {
	return func(h *DebugHook) {
		h.verbose = verbose
	}
}

// WithSlowQueryThreshold sets when a query is logged as slow. Zero disables it.
func WithSlowQueryThreshold(threshold time.Duration) DebugHookOption {
	return func(h *DebugHook) {
		h.slowQueryThreshold = threshold
	}
}

// WithLogger logs through log instead of the global logger.
func WithLogger(log logger.Logger) DebugHookOption {
	return func(h *DebugHook) {
		h.log = log
	}
}

func (h *DebugHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *DebugHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if !h.enabled {
		return
	}

	duration := time.Since(event.StartTime)

	noRows := errors.Is(event.Err, sql.ErrNoRows)
	failed := event.Err != nil && !noRows && !errors.Is(event.Err, sql.ErrTxDone)
	slow := h.slowQueryThreshold > 0 && duration >= h.slowQueryThreshold

	if !h.verbose && !failed && !noRows && !slow {
		return
	}

	log := h.log
	if log == nil {
		log = logger.Named("sqldb.query")
	}
	log = log.WithContext(ctx).
		With("query", strings.ReplaceAll(event.Query, `"`, "")).
		With("duration", duration.Round(time.Microsecond))

	msg := "[bun] " + event.Operation()
	switch {
	case failed:
		log.With("error", event.Err.Error()).Error(msg)
	case noRows:
		log.Warn(msg + ": no rows")
	case slow:
		log.Warn(msg + ": slow query")
	default:
		log.Debug(msg)
	}
}
