package config

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the upstream connection.
const (
	DefaultBaseURL    = "https://cloud.tenable.com"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
)

// Config holds all application configuration.
type Config struct {
	Addr       string
	AccessKey  string
	SecretKey  string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	Debug      bool
}

// Load reads a .env file if present, then environment variables, then command
// line flags. Flags take precedence over environment variables.
func Load() *Config {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Addr = getEnv("VULNIQ_ADDR", ":8080")
	cfg.AccessKey = getEnv("VULNIQ_ACCESS_KEY", "")
	cfg.SecretKey = getEnv("VULNIQ_SECRET_KEY", "")
	cfg.BaseURL = getEnv("VULNIQ_BASE_URL", DefaultBaseURL)
	cfg.Timeout = time.Duration(getEnvInt("VULNIQ_TIMEOUT_MS", int(DefaultTimeout/time.Millisecond))) * time.Millisecond
	cfg.MaxRetries = getEnvInt("VULNIQ_MAX_RETRIES", DefaultMaxRetries)
	cfg.Debug = getEnvBool("VULNIQ_DEBUG", false)

	timeoutMillis := int(cfg.Timeout / time.Millisecond)

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	flag.StringVar(&cfg.AccessKey, "access-key", cfg.AccessKey, "Upstream API access key")
	flag.StringVar(&cfg.SecretKey, "secret-key", cfg.SecretKey, "Upstream API secret key")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Upstream API base URL")
	flag.IntVar(&timeoutMillis, "timeout-ms", timeoutMillis, "Upstream request timeout in milliseconds")
	flag.IntVar(&cfg.MaxRetries, "max-retries", cfg.MaxRetries, "Retry budget for idempotent upstream calls")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")

	flag.Parse()

	cfg.Timeout = time.Duration(timeoutMillis) * time.Millisecond
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
