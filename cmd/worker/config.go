package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"unispattes/internal/config"
)

// Config holds the worker-only settings; Redis and queue sizing come from the shared config.
type Config struct {
	Concurrency int
	HealthAddr  string
}

func loadConfig(app *config.Config) *Config {
	cfg := &Config{
		Concurrency: app.Queue.Concurrency,
		HealthAddr:  os.Getenv("WORKER_HEALTH_ADDR"),
	}
	if cfg.HealthAddr == "" {
		cfg.HealthAddr = ":9999"
	}

	log.Info().
		Str("redis", app.Redis.Host).
		Int("concurrency", cfg.Concurrency).
		Str("health_addr", cfg.HealthAddr).
		Msg("[Config] Worker configuration loaded")

	return cfg
}
