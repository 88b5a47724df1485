package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port     string
	Env      string // development, staging, production
	LogLevel string

	// Database. Empty keeps analysis history in memory (development only).
	DatabaseURL string

	// Report cache. Empty RedisURL uses an in-process cache.
	RedisURL       string
	ReportCacheTTL time.Duration

	// Firebase
	FirebaseProjectID string
	AuthDisabled      bool

	// Rate Limiting
	RateLimitRPS int

	// Uploads
	MaxUploadBytes int64

	// CORS
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists (development only)
	loadEnvFile(".env")

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               normalizeEnv(getEnv("ENV", "development")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		ReportCacheTTL:    time.Duration(getEnvInt("REPORT_CACHE_TTL_MINUTES", 60)) * time.Minute,
		FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
		AuthDisabled:      getEnvBool("AUTH_DISABLED", false),
		RateLimitRPS:      getEnvInt("RATE_LIMIT_RPS", 10),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_MB", 10)) * 1024 * 1024,
		AllowedOrigins:    splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if c.IsProduction() {
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required in production")
		}
		if c.AuthDisabled {
			return fmt.Errorf("AUTH_DISABLED cannot be set in production")
		}
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %d", c.RateLimitRPS)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	if c.ReportCacheTTL < 0 {
		return fmt.Errorf("REPORT_CACHE_TTL_MINUTES cannot be negative")
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS must list at least one origin")
	}
	return nil
}

// loadEnvFile reads a .env file and sets environment variables.
// Silently skips if the file doesn't exist (production uses real env vars).
func loadEnvFile(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Split on first = sign
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		// Don't overwrite existing env vars (real env takes precedence)
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "development"
	}
}
