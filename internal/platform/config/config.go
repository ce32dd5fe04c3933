package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures process-level settings so main stays lean. Screening policy
// (thresholds, tiers, bands) is separate and lives in screening/policy.
type Config struct {
	Addr       string
	LogLevel   string
	PolicyPath string

	Workers int

	Extractor ExtractorConfig
	Redis     RedisConfig
	AuditDSN  string
}

// ExtractorConfig defines how to contact the anchor-extraction model API.
type ExtractorConfig struct {
	Endpoint string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

// RedisConfig describes the optional extraction cache backend.
type RedisConfig struct {
	URL          string
	CacheTTL     time.Duration
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables with development
// defaults. Production deployments override via environment.
func FromEnv() Config {
	return Config{
		Addr:       envOr("MEDIALENS_ADDR", ":8080"),
		LogLevel:   envOr("MEDIALENS_LOG_LEVEL", "info"),
		PolicyPath: os.Getenv("MEDIALENS_POLICY_FILE"),
		Workers:    envInt("MEDIALENS_WORKERS", 4),
		Extractor: ExtractorConfig{
			Endpoint: envOr("OPENAI_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
			Model:    envOr("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:   os.Getenv("OPENAI_API_KEY"),
			Timeout:  envDuration("MEDIALENS_EXTRACT_TIMEOUT", 20*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("MEDIALENS_REDIS_URL"),
			CacheTTL:     envDuration("MEDIALENS_CACHE_TTL", 24*time.Hour),
			PoolSize:     envInt("MEDIALENS_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("MEDIALENS_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		AuditDSN: os.Getenv("MEDIALENS_AUDIT_DSN"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
