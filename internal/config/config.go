package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	localDevOrigin = "http://localhost:5173"

	// DefaultJWTSecret must match the env-default of Config.JWTSecret
	DefaultJWTSecret = "your-secret-key-change-this-in-production"
)

type Config struct {
	Port               string        `env:"PORT" env-default:"8080"`
	LogLevel           string        `env:"LOG_LEVEL" env-default:"info"`
	FrontendURL        string        `env:"FRONTEND_URL" env-default:"http://localhost:5173"`
	AllowedOrigins     []string      `env:"ALLOWED_ORIGINS" env-separator:","`
	JWTSecret          string        `env:"JWT_SECRET" env-default:"your-secret-key-change-this-in-production"`
	SeatTokenTTL       time.Duration `env:"SEAT_TOKEN_TTL" env-default:"24h"`
	CleanupInterval    time.Duration `env:"CLEANUP_INTERVAL" env-default:"1h"`
	FinishedSessionTTL time.Duration `env:"FINISHED_SESSION_TTL" env-default:"1h"`
	StaleSessionTTL    time.Duration `env:"STALE_SESSION_TTL" env-default:"24h"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// Load reads the configuration from the environment. Call godotenv first to
// pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("unable to read config from environment: %w", err)
	}

	if cfg.CleanupInterval <= 0 {
		return nil, fmt.Errorf("CLEANUP_INTERVAL must be positive, got %s", cfg.CleanupInterval)
	}
	if cfg.SeatTokenTTL <= 0 {
		return nil, fmt.Errorf("SEAT_TOKEN_TTL must be positive, got %s", cfg.SeatTokenTTL)
	}

	// Build allowed origins list (Frontend URL + Localhost + CSV values)
	cfg.AllowedOrigins = buildAllowedOrigins(cfg.FrontendURL, cfg.AllowedOrigins)

	return cfg, nil
}

func buildAllowedOrigins(frontendURL string, extras []string) []string {
	origins := make([]string, 0, len(extras)+2)
	seen := make(map[string]bool)

	for _, origin := range append([]string{frontendURL, localDevOrigin}, extras...) {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		origins = append(origins, trimmed)
	}

	return origins
}

// UsesDefaultJWTSecret reports whether seat tokens would be signed with the
// publicly known fallback secret
func (c *Config) UsesDefaultJWTSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// Description lists the supported environment variables, for --help output
func Description() string {
	text, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return text
}
