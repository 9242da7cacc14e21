package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=2727"`
	Env      string `env:"ENV,       default=production"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// EncryptionKey is the base64 ENKEY used to seal bearer tokens.
	EncryptionKey string `env:"ENKEY"`
	DistrictsFile string `env:"DISTRICTS_FILE"`
	AuditWorkers  int    `env:"AUDIT_WORKERS, default=4"`

	StudentVue StudentVueConfig
	Auth       AuthConfig
	Mongo      MongoConfig
	Redis      RedisConfig
}

type StudentVueConfig struct {
	VersionNumber      string        `env:"VERSION_NUMBER"`
	VersionKeyURL      string        `env:"VERSION_KEY_URL"`
	DefaultDistrictURL string        `env:"DEFAULT_DISTRICT_URL, default=md-mcps-psv.edupoint.com"`
	Timeout            time.Duration `env:"UPSTREAM_TIMEOUT,     default=30s"`
}

type AuthConfig struct {
	TokenTTL       time.Duration `env:"TOKEN_TTL,        default=24h"`
	AdminJWTSecret string        `env:"ADMIN_JWT_SECRET"`
}

// MongoConfig is optional; an empty URI keeps the directory in memory and
// audit events in the log.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=svue"`
}

// RedisConfig is optional; an empty Addr disables response caching.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,  default=0"`
	CacheTTL time.Duration `env:"CACHE_TTL, default=60s"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads the given .env files (missing ones are skipped) and then the
// process environment.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom resolves the configuration through l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Auth.TokenTTL <= 0:
		return fmt.Errorf("config: TOKEN_TTL must be positive")
	case c.StudentVue.Timeout <= 0:
		return fmt.Errorf("config: UPSTREAM_TIMEOUT must be positive")
	case c.AuditWorkers <= 0:
		return fmt.Errorf("config: AUDIT_WORKERS must be positive")
	case c.Redis.CacheTTL < 0:
		return fmt.Errorf("config: CACHE_TTL must not be negative")
	case c.StudentVue.DefaultDistrictURL == "":
		return fmt.Errorf("config: DEFAULT_DISTRICT_URL is required")
	}
	return nil
}
