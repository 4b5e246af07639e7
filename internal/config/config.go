package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	Environment        string
	CacheTTL           time.Duration
	MaxParallelRuns    int
	DefaultConfidence  float64
	RateLimitPerMinute int
	BodyLimitMB        int
}

func Load() *Config {
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  Could not read .env file: %v", err)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "production"),
		CacheTTL:           time.Duration(getEnvInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
		MaxParallelRuns:    getEnvInt("MAX_PARALLEL_RUNS", 4),
		DefaultConfidence:  getEnvFloat("DEFAULT_CONFIDENCE", 0.95),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
		BodyLimitMB:        getEnvInt("BODY_LIMIT_MB", 4),
	}

	if cfg.MaxParallelRuns < 1 {
		log.Printf("⚠️  MAX_PARALLEL_RUNS=%d is invalid, running comparisons sequentially", cfg.MaxParallelRuns)
		cfg.MaxParallelRuns = 1
	}

	if _, ok := ZScore(cfg.DefaultConfidence); !ok {
		log.Printf("⚠️  DEFAULT_CONFIDENCE=%v is not supported, using 0.95", cfg.DefaultConfidence)
		cfg.DefaultConfidence = 0.95
	}

	return cfg
}

// ZScore returns the two-sided normal quantile for a supported confidence
// level.
func ZScore(confidence float64) (float64, bool) {
	switch confidence {
	case 0.80:
		return 1.2816, true
	case 0.90:
		return 1.6449, true
	case 0.95:
		return 1.96, true
	case 0.99:
		return 2.5758, true
	}
	return 0, false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  %s=%q is not an integer, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("⚠️  %s=%q is not a number, using %v", key, value, defaultValue)
		return defaultValue
	}
	return f
}
