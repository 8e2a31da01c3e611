package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-wide configuration, loaded once at startup. Signing
// secrets and the cipher key are injected from here into their components and
// never mutated afterwards.
type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// Two independent signing secrets: access-family tokens are never valid
	// under the refresh secret and vice versa.
	AccessSecret  string `env:"ACCESS_SECRET_KEY, required"`
	RefreshSecret string `env:"REFRESH_SECRET_KEY, required"`

	// EncryptionKey protects identity fields at rest; must be 32 bytes.
	EncryptionKey string `env:"ENCRYPTION_KEY, required"`

	// BootstrapSecret gates the one-time creation of the first SUPER user.
	BootstrapSecret string `env:"BOOTSTRAP_SECRET_KEY, required"`

	// ServiceAccounts maps clientId to client secret, e.g.
	// SERVICE_ACCOUNTS="email:s3cret,vault:other". Seeded at startup.
	ServiceAccounts map[string]string `env:"SERVICE_ACCOUNTS"`

	OutboundWorkers int `env:"OUTBOUND_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=authservice"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR, default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,   default=0"`
	GuardTTL time.Duration `env:"BOOTSTRAP_GUARD_TTL, default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
