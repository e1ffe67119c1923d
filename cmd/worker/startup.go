package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"unispattes/pkg/container"
)

var healthServer *http.Server

// startServices checks the worker's dependencies, then exposes /health and /ready.
func startServices(c *container.Container, cfg *Config) error {
	log.Info().Msg("[Startup] UniSpattes worker starting")

	checks := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"Redis Connection", func(ctx context.Context) error {
			// Tasks live in Redis; the in-memory fallback is useless here
			if c.Redis == nil {
				return errors.New("redis is not available")
			}
			return c.Redis.HealthCheck(ctx)
		}},
		{"Database", c.DB.HealthCheck},
	}

	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("[Startup] OK")
	}

	healthServer = newHealthCheckServer(cfg.HealthAddr)
	go func() {
		log.Info().Str("addr", cfg.HealthAddr).Msg("[Health] Starting health check server")
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("[Health] Failed to start")
		}
	}()
	return nil
}

func newHealthCheckServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, `{"status":"UP","service":"unispattes-worker"}`)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, `{"status":"READY"}`)
	})

	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}

func stopHealthCheckServer() {
	if healthServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = healthServer.Shutdown(ctx)
}

func writeStatus(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
