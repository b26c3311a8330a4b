package app

import (
	"time"

	"github.com/rise-and-shine/agenda/calendar/export"
	"github.com/rise-and-shine/agenda/calendar/querystore"
	"github.com/rise-and-shine/agenda/http/server"
	"github.com/rise-and-shine/agenda/observability/logger"
	"github.com/rise-and-shine/agenda/observability/tracing"
	"github.com/rise-and-shine/agenda/sqldb"
)

// Config is the whole service configuration, read from config/${ENVIRONMENT}.yaml.
type Config struct {
	Service    ServiceConfig     `yaml:"service"`
	Logger     logger.Config     `yaml:"logger"`
	HTTPServer server.Config     `yaml:"http_server"`
	Database   sqldb.Config      `yaml:"database"`
	QueryStore querystore.Config `yaml:"query_store"`
	Commands   CommandsConfig    `yaml:"commands"`
	Export     export.Config     `yaml:"export"`
	Tracing    tracing.Config    `yaml:"tracing"`
}

type ServiceConfig struct {
	Name    string `yaml:"name"    default:"agenda"`
	Version string `yaml:"version" default:"0.1.0"`
}

type CommandsConfig struct {
	// Timeout bounds a single command execution. Zero disables the bound.
	Timeout time.Duration `yaml:"timeout" default:"5s"`
}
