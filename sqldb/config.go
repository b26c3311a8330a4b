package sqldb

import (
	"fmt"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config selects and configures the relational backend.
type Config struct {
	Driver string `yaml:"driver" validate:"oneof=postgres sqlite" default:"postgres"`

	// Debug logs every query through the application logger.
	Debug bool `yaml:"debug" default:"false"`

	// SlowQueryThreshold marks queries in the debug log as slow. Zero disables it.
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold" default:"100ms"`

	// DSN is the sqlite data source, e.g. "file:agenda.db?_pragma=busy_timeout(5000)".
	DSN string `yaml:"dsn" validate:"required_if=Driver sqlite"`

	Host     string `yaml:"host"     validate:"required_if=Driver postgres"`
	Port     int    `yaml:"port"     validate:"required_if=Driver postgres"`
	User     string `yaml:"user"     validate:"required_if=Driver postgres"`
	Password string `yaml:"password" mask:"true"`
	Database string `yaml:"database" validate:"required_if=Driver postgres"`

	SSLMode        string        `yaml:"sslmode"         default:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	SearchPath     string        `yaml:"search_path"     default:"public"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" default:"10s"`

	PoolMaxConns        int32         `yaml:"pool_max_conns"          default:"4"`
	PoolMinConns        int32         `yaml:"pool_min_conns"          default:"1"`
	PoolMaxConnLifetime time.Duration `yaml:"pool_max_conn_lifetime"  default:"1h"`
	PoolMaxConnIdleTime time.Duration `yaml:"pool_max_conn_idle_time" default:"30m"`

	// AutoMigrate creates missing application tables on startup.
	AutoMigrate bool `yaml:"auto_migrate"`

	// PingAttempts and PingDelay control the startup connectivity check.
	PingAttempts uint          `yaml:"ping_attempts" default:"5"`
	PingDelay    time.Duration `yaml:"ping_delay"    default:"1s"`
}

// Schema is the schema that tables are qualified with.
func (c Config) Schema() string {
	if c.Driver == DriverSQLite {
		return "main"
	}
	return c.SearchPath
}

func (c Config) postgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s connect_timeout=%d",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
		c.SearchPath,
		int(c.ConnectTimeout.Seconds()),
	)
}
