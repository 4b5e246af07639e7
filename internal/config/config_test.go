package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "CACHE_TTL_MINUTES", "MAX_PARALLEL_RUNS", "DEFAULT_CONFIDENCE", "RATE_LIMIT_PER_MINUTE", "BODY_LIMIT_MB"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 4, cfg.MaxParallelRuns)
	assert.Equal(t, 0.95, cfg.DefaultConfidence)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
	assert.Equal(t, 4, cfg.BodyLimitMB)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TTL_MINUTES", "5")
	t.Setenv("MAX_PARALLEL_RUNS", "0")
	t.Setenv("DEFAULT_CONFIDENCE", "0.9")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 1, cfg.MaxParallelRuns)
	assert.Equal(t, 0.9, cfg.DefaultConfidence)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
}

func TestLoadRejectsUnsupportedConfidence(t *testing.T) {
	t.Setenv("DEFAULT_CONFIDENCE", "0.5")
	assert.Equal(t, 0.95, Load().DefaultConfidence)
}

func TestZScore(t *testing.T) {
	z, ok := ZScore(0.95)
	assert.True(t, ok)
	assert.Equal(t, 1.96, z)

	_, ok = ZScore(0.5)
	assert.False(t, ok)
}
