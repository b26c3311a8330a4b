package querystore

import (
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config selects the projection backend.
type Config struct {
	Driver string `yaml:"driver" validate:"oneof=memory redis" default:"memory"`

	// RebuildOnStart replays the command store into the projection at startup.
	RebuildOnStart bool `yaml:"rebuild_on_start" default:"false"`

	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig defines the connection and key of the redis projection.
type RedisConfig struct {
	// Addrs is the list of redis addresses in the format "host:port,host2:port2".
	Addrs string `yaml:"addrs" default:"localhost:6379"`

	Username string `yaml:"username"`
	Password string `yaml:"password" mask:"true"`
	DB       int    `yaml:"db"`

	IsClusterMode bool `yaml:"is_cluster_mode"`

	// Key is the hash holding the projection.
	Key string `yaml:"key" default:"agenda:events"`
}

// NewRedisClient creates a redis client, a cluster client when IsClusterMode is set.
func NewRedisClient(cfg RedisConfig) redis.UniversalClient {
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:         strings.Split(cfg.Addrs, ","),
		Username:      cfg.Username,
		Password:      cfg.Password,
		DB:            cfg.DB,
		IsClusterMode: cfg.IsClusterMode,
	})
}
