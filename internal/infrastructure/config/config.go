package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-wide configuration. It is loaded once at startup
// and treated as immutable for the process lifetime.
type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BcryptCost is the password hashing cost factor. Raising it slows
	// every signup and signin by roughly 2x per increment.
	BcryptCost int `env:"BCRYPT_COST, default=10"`

	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Token TokenConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// TokenConfig holds the signing secrets and lifetimes for the two token
// kinds. The secrets are independent so a leaked access secret cannot be
// used to forge refresh tokens.
type TokenConfig struct {
	AccessSecret  string        `env:"ACCESS_TOKEN_SECRET,  required"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL,     default=15m"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET, required"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL,    default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
