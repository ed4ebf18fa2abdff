package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`

	Sweep SweepConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type SweepConfig struct {
	// Interval between background sweeps over pending/processing orders.
	Interval time.Duration `env:"SWEEP_INTERVAL, default=2m"`
	// Minimum age before a pending order is picked up; 0 advances all
	// eligible orders unconditionally each sweep.
	ProcessAfter time.Duration `env:"SWEEP_PROCESS_AFTER, default=0"`
	// Minimum time in processing before an order completes; 0 = next sweep.
	CompleteAfter time.Duration `env:"SWEEP_COMPLETE_AFTER, default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=order_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
