package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
// It is built once at startup and never mutated afterwards.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Auth     AuthConfig     `yaml:"auth"`
	Webhook  WebhookConfig  `yaml:"webhook"`
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string `yaml:"path"` // SQLite database file path
}

// HTTPConfig contains API server settings.
type HTTPConfig struct {
	Address        string   `yaml:"address"`         // listen address (e.g., ":8787")
	AllowedOrigins []string `yaml:"allowed_origins"` // CORS origins for the front-end
}

// GRPCConfig contains health server settings. An empty address disables it.
type GRPCConfig struct {
	Address string `yaml:"address"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
	PasswordHash  string `yaml:"password_hash"` // "bcrypt" or "sha256"
}

// WebhookConfig contains the shared secret for signal ingestion.
type WebhookConfig struct {
	Secret string `yaml:"secret"`
}

// Password hash names accepted in auth.password_hash; auth.NewHasher builds them.
const (
	HashBcrypt = "bcrypt"
	HashSHA256 = "sha256"
)

// Load loads configuration from an optional YAML file (CONFIG_FILE) and
// environment variables. Environment values take precedence.
func Load() (*Config, error) {
	cfg, err := load(defaults(""))
	if err != nil {
		return nil, err
	}

	// Validate critical settings
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	if cfg.Webhook.Secret == "" {
		return nil, fmt.Errorf("WEBHOOK_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses development defaults for the secrets.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	d := defaults("dev-secret-change-me")
	d.Webhook.Secret = "dev-webhook-secret-change-me"
	return load(d)
}

func defaults(jwtSecret string) *Config {
	return &Config{
		Database: DatabaseConfig{Path: "app.db"},
		HTTP:     HTTPConfig{Address: ":8787"},
		GRPC:     GRPCConfig{Address: ":50051"},
		Auth: AuthConfig{
			JWTSecret:     jwtSecret,
			TokenTTLHours: 24,
			PasswordHash:  HashBcrypt,
		},
	}
}

func load(cfg *Config) (*Config, error) {
	if path := getEnv("CONFIG_FILE", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.HTTP.Address = getEnv("HTTP_ADDRESS", cfg.HTTP.Address)
	cfg.GRPC.Address = getEnv("GRPC_ADDRESS", cfg.GRPC.Address)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.PasswordHash = strings.ToLower(getEnv("AUTH_PASSWORD_HASH", cfg.Auth.PasswordHash))
	cfg.Webhook.Secret = getEnv("WEBHOOK_SECRET", cfg.Webhook.Secret)
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	ttl, err := getEnvInt("TOKEN_TTL_HOURS", cfg.Auth.TokenTTLHours)
	if err != nil {
		return nil, err
	}
	cfg.Auth.TokenTTLHours = ttl

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	if c.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("token ttl must be positive, got %d", c.Auth.TokenTTLHours)
	}
	switch c.Auth.PasswordHash {
	case HashBcrypt, HashSHA256:
	default:
		return fmt.Errorf("unsupported password hash %q", c.Auth.PasswordHash)
	}
	if c.HTTP.Address == "" {
		return fmt.Errorf("http address is empty")
	}
	return nil
}

// TokenTTL returns the session token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, HTTP: %s, gRPC: %s, TokenTTL: %dh, Hash: %s, Auth: *** (masked) ***, Webhook: *** (masked) ***}",
		c.Database.Path, c.HTTP.Address, c.GRPC.Address, c.Auth.TokenTTLHours, c.Auth.PasswordHash)
}
