// Package config loads process configuration from TEMPUS_* environment
// variables so main stays lean. Every knob has a development default; in
// production the deploy manifest overrides what matters.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "tempus/pkg/platform/strings"
)

// Config is the root configuration for the server process.
type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Postgres  PostgresConfig
	Kafka     KafkaConfig
	Zones     ZonesConfig
	Usage     UsageConfig
	RateLimit RateLimitConfig
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr            string
	LogLevel        string
	AdminToken      string
	APIKeys         string
	JWTSigningKey   string
	ShutdownTimeout time.Duration
}

// RedisConfig configures the shared Redis client. An empty URL disables
// Redis-backed components (zone cache, distributed rate limiting).
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the usage outbox database. An empty URL keeps
// usage recording in memory.
type PostgresConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// KafkaConfig configures the usage event sink. Empty brokers disable it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ZonesConfig selects the zone resolver. Mode "static" serves the built-in
// table; "http" proxies to ResolverURL with an optional Redis cache.
type ZonesConfig struct {
	Mode        string
	ResolverURL string
	CacheTTL    time.Duration
}

// UsageConfig tunes the usage recorder. BufferSize is the async publish
// queue; RecentLimit is how many events the in-memory ring retains for
// the admin API.
type UsageConfig struct {
	BufferSize  int
	RecentLimit int
}

// RateLimitConfig holds per-class request budgets over a one-minute
// sliding window.
type RateLimitConfig struct {
	Window           time.Duration
	ComputePerWindow int
	ReadPerWindow    int
	AdminPerWindow   int
}

// FromEnv builds a Config from environment variables, applying development
// defaults for anything unset.
func FromEnv() Config {
	return Config{
		Server: ServerConfig{
			Addr:            getEnv("TEMPUS_ADDR", ":8080"),
			LogLevel:        getEnv("TEMPUS_LOG_LEVEL", "info"),
			AdminToken:      getEnv("TEMPUS_ADMIN_TOKEN", ""),
			APIKeys:         getEnv("TEMPUS_API_KEYS", ""),
			JWTSigningKey:   getEnv("TEMPUS_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			ShutdownTimeout: getDuration("TEMPUS_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URL:          getEnv("TEMPUS_REDIS_URL", ""),
			PoolSize:     getInt("TEMPUS_REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("TEMPUS_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("TEMPUS_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("TEMPUS_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("TEMPUS_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			URL:          getEnv("TEMPUS_POSTGRES_URL", ""),
			MaxOpenConns: getInt("TEMPUS_POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getInt("TEMPUS_POSTGRES_MAX_IDLE_CONNS", 5),
		},
		Kafka: KafkaConfig{
			Brokers: getList("TEMPUS_KAFKA_BROKERS"),
			Topic:   getEnv("TEMPUS_KAFKA_TOPIC", "tempus.usage.v1"),
		},
		Zones: ZonesConfig{
			Mode:        getEnv("TEMPUS_ZONES_MODE", "static"),
			ResolverURL: getEnv("TEMPUS_ZONES_RESOLVER_URL", ""),
			CacheTTL:    getDuration("TEMPUS_ZONES_CACHE_TTL", 5*time.Minute),
		},
		Usage: UsageConfig{
			BufferSize:  getInt("TEMPUS_USAGE_BUFFER_SIZE", 1024),
			RecentLimit: getInt("TEMPUS_USAGE_RECENT_LIMIT", 100),
		},
		RateLimit: RateLimitConfig{
			Window:           getDuration("TEMPUS_RATELIMIT_WINDOW", time.Minute),
			ComputePerWindow: getInt("TEMPUS_RATELIMIT_COMPUTE", 600),
			ReadPerWindow:    getInt("TEMPUS_RATELIMIT_READ", 1200),
			AdminPerWindow:   getInt("TEMPUS_RATELIMIT_ADMIN", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	out := platformstrings.DedupeAndTrim(strings.Split(v, ","))
	if len(out) == 0 {
		return nil
	}
	return out
}
