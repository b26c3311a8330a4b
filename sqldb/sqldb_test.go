package sqldb_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/agenda/observability/logger"
	"github.com/rise-and-shine/agenda/sqldb"
	"github.com/rise-and-shine/agenda/sqldb/hooks"
)

type note struct {
	bun.BaseModel `bun:"table:notes"`
	sqldb.Timestamps

	ID   string `bun:"id,pk"`
	Body string `bun:"body,notnull"`
}

func memoryConfig() sqldb.Config {
	return sqldb.Config{
		Driver:       sqldb.DriverSQLite,
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		PingAttempts: 1,
	}
}

func TestNewBunDBSQLite(t *testing.T) {
	cfg := memoryConfig()
	assert.Equal(t, "main", cfg.Schema())

	db, err := sqldb.NewBunDB(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqldb.CreateTables(t.Context(), db, (*note)(nil)))
	// idempotent
	require.NoError(t, sqldb.CreateTables(t.Context(), db, (*note)(nil)))

	n := &note{ID: "n1", Body: "hello"}
	_, err = db.NewInsert().Model(n).Exec(t.Context())
	require.NoError(t, err)
	assert.False(t, n.CreatedAt.IsZero())
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)

	_, err = db.NewInsert().Model(&note{ID: "n1", Body: "again"}).Exec(t.Context())
	require.Error(t, err)
	assert.True(t, sqldb.IsConflict(err))

	err = db.NewSelect().Model(&note{}).Where("id = ?", "missing").Scan(t.Context())
	assert.True(t, sqldb.IsNotFound(err))
}

func TestDebugHookLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	db, err := sqldb.NewBunDB(t.Context(), memoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	db.AddQueryHook(hooks.NewDebugHook(
		hooks.WithVerbose(false),
		hooks.WithLogger(logger.FromZap(zap.New(core))),
	))

	_, err = db.NewSelect().ColumnExpr("1").Exec(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 0, logs.Len())

	_, err = db.NewSelect().Table("no_such_table").Exec(t.Context())
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestSchema(t *testing.T) {
	assert.Equal(t, "public", sqldb.Config{Driver: sqldb.DriverPostgres, SearchPath: "public"}.Schema())
}
