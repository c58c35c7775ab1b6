// Package config loads simulation settings from environment variables.
package config

import (
	"os"
	"strconv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	CivCount       int
	TurnLimit      int
	ActionsPerTurn int
	QueueCapacity  int
	MaxRetries     int
	RngSeed        int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		CivCount:       envOrDefaultInt("CIV_COUNT", 4),
		TurnLimit:      envOrDefaultInt("TURN_LIMIT", 100),
		ActionsPerTurn: envOrDefaultInt("ACTIONS_PER_TURN", 3),
		QueueCapacity:  envOrDefaultInt("QUEUE_CAPACITY", 20),
		MaxRetries:     envOrDefaultInt("MAX_RETRIES", 2),
		RngSeed:        int64(envOrDefaultInt("RNG_SEED", 42)),
	}
}

func envOrDefaultInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
