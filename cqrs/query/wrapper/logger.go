package wrapper

import (
	"context"
	"time"

	"github.com/rise-and-shine/agenda/cqrs/query"
	"github.com/rise-and-shine/agenda/meta"
	"github.com/rise-and-shine/agenda/observability/logger"
)

// LoggerQueryWrapper logs queries at debug level and failures at warn level.
// Queries are frequent, so successful reads stay out of info logs.
type LoggerQueryWrapper[I query.Input, R query.Result] struct {
	logger    logger.Logger
	queryName string
	next      query.Query[I, R]
}

func NewLoggerQueryWrapper[I query.Input, R query.Result](log logger.Logger, queryName string) query.WrapFunc[I, R] {
	return func(next query.Query[I, R]) query.Query[I, R] {
		return &LoggerQueryWrapper[I, R]{
			logger:    log.Named("cqrs.query").With("query_name", queryName),
			queryName: queryName,
			next:      next,
		}
	}
}

func (q *LoggerQueryWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{meta.Operation: q.queryName})
	start := time.Now()

	result, err := q.next.Execute(ctx, input)

	log := q.logger.WithContext(ctx).With("execution_time", time.Since(start).String())
	if err != nil {
		log.Warnx(err)
	} else {
		log.Debug("query executed")
	}

	return result, err
}
