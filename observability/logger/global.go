package logger

import (
	"context"
	"sync"
	"sync/atomic"
)

type holder struct {
	log Logger
}

//nolint:gochecknoglobals // process-wide logger installed by main
var (
	global      atomic.Pointer[holder]
	setOnce     sync.Once
	defaultOnce sync.Once
)

// SetGlobal installs the process-wide logger. A second call panics.
// Until it runs, the package-level helpers log to a debug console logger.
func SetGlobal(cfg Config) {
	installed := false
	setOnce.Do(func() {
		log, err := newLogger(cfg)
		if err != nil {
			panic("[logger]: failed to initialize global logger: " + err.Error())
		}
		global.Store(&holder{log: log})
		installed = true
	})
	if !installed {
		panic("[logger]: SetGlobal can only be called once")
	}
}

// Named returns the global logger scoped to a component, e.g. "app" or "sqldb.query".
func Named(name string) Logger {
	return current().Named(name)
}

// WithContext returns the global logger enriched with request metadata from ctx.
func WithContext(ctx context.Context) Logger {
	return current().WithContext(ctx)
}

// Errorx logs err with its errx code, type, details and trace.
func Errorx(err error) {
	current().Errorx(err)
}

// Fatalx is Errorx followed by os.Exit(1).
func Fatalx(err error) {
	current().Fatalx(err)
}

// Sync flushes buffered entries. Call it before the process exits.
func Sync() error {
	return current().Sync()
}

func current() Logger {
	if h := global.Load(); h != nil {
		return h.log
	}

	defaultOnce.Do(func() {
		log, err := newLogger(Config{Level: levelDebug, Encoding: EncodingConsole})
		if err != nil {
			panic("[logger]: failed to initialize default logger: " + err.Error())
		}
		global.CompareAndSwap(nil, &holder{log: log})
	})
	return global.Load().log
}
