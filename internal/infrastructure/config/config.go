package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	Store      StoreConfig
	SuperAdmin SuperAdminConfig
}

type StoreConfig struct {
	// Path of the single JSON document holding all user records.
	Path string `env:"STORE_PATH, default=data/users.json"`
	// AllowReset makes a corrupt document non-fatal at startup: the store
	// logs the damage and begins from the empty default. Off by default —
	// in normal deployments corrupt state must stop the process.
	AllowReset bool `env:"STORE_ALLOW_RESET, default=false"`
}

// SuperAdminConfig seeds the distinguished bootstrap account. The public
// API can only create customers and (for superAdmins) admins, so the
// first superAdmin has to come from deployment configuration.
type SuperAdminConfig struct {
	Email     string `env:"SUPERADMIN_EMAIL"`
	Password  string `env:"SUPERADMIN_PASSWORD"`
	FirstName string `env:"SUPERADMIN_FIRST_NAME, default=Root"`
	LastName  string `env:"SUPERADMIN_LAST_NAME,  default=Admin"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET must be set")
	}
	return &cfg, nil
}
