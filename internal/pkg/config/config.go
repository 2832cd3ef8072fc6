package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"

	"github.com/keyline/property-api/internal/core/domain"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`
	StaticDir string `env:"STATIC_DIR, default=client/build"`

	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`

	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Mongo    MongoConfig
}

type DatabaseConfig struct {
	URL          string `env:"DATABASE_URL,      required"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=10"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS, default=5"`
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET,          required"`
	JWTIssuer     string        `env:"JWT_ISSUER,          default=property-api"`
	JWTTTL        time.Duration `env:"JWT_TTL,             default=24h"`
	AutoProvision bool          `env:"AUTH_AUTO_PROVISION, default=true"`
	ProvisionRole string        `env:"AUTH_PROVISION_ROLE, default=admin"`
	BCryptCost    int           `env:"BCRYPT_COST,         default=10"`
}

// RedisConfig configures the login throttle. An empty Addr disables it.
type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR"`
	DB           int           `env:"REDIS_DB,           default=0"`
	MaxFailures  int           `env:"LOGIN_MAX_FAILURES, default=5"`
	LockoutAfter time.Duration `env:"LOGIN_LOCKOUT,      default=15m"`
}

// MongoConfig configures the authentication audit trail. An empty URI
// disables it.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB,      default=property_audit"`
	Workers  int    `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if !domain.ValidRole(c.Auth.ProvisionRole) {
		return fmt.Errorf("config: AUTH_PROVISION_ROLE %q: %w", c.Auth.ProvisionRole, domain.ErrInvalidRole)
	}
	if c.Auth.BCryptCost < bcrypt.MinCost || c.Auth.BCryptCost > bcrypt.MaxCost {
		return fmt.Errorf("config: BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.Auth.JWTTTL <= 0 {
		return fmt.Errorf("config: JWT_TTL must be positive")
	}
	return nil
}
