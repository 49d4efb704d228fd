// internal/config/config.go
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Database DatabaseConfig `env:",prefix=DB_"`
	Redis    RedisConfig    `env:",prefix=REDIS_"`
	Auth     AuthConfig     `env:",prefix=AUTH_"`
	App      AppConfig      `env:",prefix=APP_"`
}

type ServerConfig struct {
	Host         string `env:"HOST,default=0.0.0.0"`
	Port         string `env:"PORT,default=8000"`
	ReadTimeout  int    `env:"READ_TIMEOUT,default=30"`  // seconds
	WriteTimeout int    `env:"WRITE_TIMEOUT,default=30"` // seconds
}

type DatabaseConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=postgres"`
	Password string `env:"PASSWORD,default=postgres"`
	Name     string `env:"NAME,default=fotolio"`
	SSLMode  string `env:"SSL_MODE,default=disable"`
	MaxConns int32  `env:"MAX_CONNS,default=25"`
	MinConns int32  `env:"MIN_CONNS,default=5"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR,default=localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB,default=0"`
	PoolSize int    `env:"POOL_SIZE,default=10"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET,default=dev-only-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,default=12h"`

	// Bootstrap credentials for the initial admin account
	AdminEmail    string `env:"ADMIN_EMAIL,default=admin@fotolio.app"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME,default=Administrator"`
}

type AppConfig struct {
	Environment string `env:"ENVIRONMENT,default=development"`
	// BaseURL anchors promo redemption URLs; it must stay stable for the
	// lifetime of published campaign links.
	BaseURL string `env:"BASE_URL,default=https://fotolio.app"`
}

// Load loads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *DatabaseConfig) DatabaseURL() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ServerAddr returns the HTTP listen address.
func (c *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsProduction returns true if running in production environment.
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}
