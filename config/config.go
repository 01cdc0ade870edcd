package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the full gateway configuration. It is built once in main
// and passed by reference; nothing reads the environment after Load.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Keys     KeysConfig
	Redis    RedisConfig
	Vault    VaultConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port           int    `envconfig:"SERVER_PORT" default:"8080"`
	ProductionMode bool   `envconfig:"SERVER_PRODUCTION_MODE" default:"false"`
}

// DatabaseConfig holds PostgreSQL connection configuration
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"gateway"`
	Password string `envconfig:"DB_PASSWORD" default:""`
	Database string `envconfig:"DB_NAME" default:"gateway"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// KeysConfig holds the two shared secrets gating the API. The admin key
// gates account and license management; the client key gates login.
type KeysConfig struct {
	AdminKey  string `envconfig:"ADMIN_KEY" default:""`
	ClientKey string `envconfig:"CLIENT_KEY" default:""`
}

// RedisConfig holds the optional cache configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Address  string `envconfig:"REDIS_ADDRESS" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	PoolSize int    `envconfig:"REDIS_POOL_SIZE" default:"10"`
}

// VaultConfig holds the optional Vault configuration. When enabled, the
// admin and client keys are read from Vault KV instead of the environment.
type VaultConfig struct {
	Enabled    bool   `envconfig:"VAULT_ENABLED" default:"false"`
	Address    string `envconfig:"VAULT_ADDRESS" default:"http://localhost:8200"`
	Token      string `envconfig:"VAULT_TOKEN" default:""`
	SecretPath string `envconfig:"VAULT_SECRET_PATH" default:"secret/data/gateway/keys"`
	TLSEnabled bool   `envconfig:"VAULT_TLS_ENABLED" default:"false"`
	CACert     string `envconfig:"VAULT_CA_CERT" default:""`
}

// LoggingConfig controls zerolog output
type LoggingConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the secrets required to serve traffic are present.
// Keys may arrive from the environment or from Vault, so this runs after
// both sources have been consulted.
func (c *Config) Validate() error {
	if c.Keys.AdminKey == "" {
		return fmt.Errorf("ADMIN_KEY is not set")
	}
	if c.Keys.ClientKey == "" {
		return fmt.Errorf("CLIENT_KEY is not set")
	}
	return nil
}
