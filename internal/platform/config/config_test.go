package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "static", cfg.Zones.Mode)
	assert.Equal(t, 5*time.Minute, cfg.Zones.CacheTTL)
	assert.Equal(t, "tempus.usage.v1", cfg.Kafka.Topic)
	assert.Nil(t, cfg.Kafka.Brokers)
	assert.Equal(t, 1024, cfg.Usage.BufferSize)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 600, cfg.RateLimit.ComputePerWindow)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("TEMPUS_ADDR", ":9999")
	t.Setenv("TEMPUS_KAFKA_BROKERS", "broker-a:9092, broker-b:9092, broker-a:9092")
	t.Setenv("TEMPUS_RATELIMIT_COMPUTE", "42")
	t.Setenv("TEMPUS_ZONES_CACHE_TTL", "30s")
	t.Setenv("TEMPUS_REDIS_URL", "redis://localhost:6379/0")

	cfg := FromEnv()

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, []string{"broker-a:9092", "broker-b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 42, cfg.RateLimit.ComputePerWindow)
	assert.Equal(t, 30*time.Second, cfg.Zones.CacheTTL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("TEMPUS_RATELIMIT_COMPUTE", "not-a-number")
	t.Setenv("TEMPUS_ZONES_CACHE_TTL", "eventually")

	cfg := FromEnv()

	assert.Equal(t, 600, cfg.RateLimit.ComputePerWindow)
	assert.Equal(t, 5*time.Minute, cfg.Zones.CacheTTL)
}
