package config

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	DBConn   string `env:"DB_CONN" envDefault:"host=localhost port=5436 user=test password=test dbname=gcare sslmode=disable"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	// SealKey is the hex encoded 32 byte key that seals stored snapshots
	SealKey string `env:"SEAL_KEY" envDefault:"a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"`

	RedisAddr string        `env:"REDIS_ADDR"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"1h"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"localhost"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"1025"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SenderEmail  string `env:"SENDER_EMAIL" envDefault:"noreply@gcare.local"`

	ReviewEnabled  bool   `env:"REVIEW_ENABLED" envDefault:"true"`
	ReviewSchedule string `env:"REVIEW_SCHEDULE" envDefault:"0 6 * * 1"`
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.DBConn == "" {
		return fmt.Errorf("DB_CONN is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if _, err := c.SealKeyBytes(); err != nil {
		return err
	}
	return nil
}

// SealKeyBytes decodes SealKey
func (c *Config) SealKeyBytes() ([]byte, error) {
	key, err := hex.DecodeString(c.SealKey)
	if err != nil {
		return nil, fmt.Errorf("SEAL_KEY must be hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("SEAL_KEY must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
