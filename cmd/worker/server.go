package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"unispattes/internal/config"
	"unispattes/internal/infrastructure/queue"
)

// asynqServer wraps asynq.Server with logging around its lifecycle
type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(app *config.Config, cfg *Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := queue.NewServer(app.Redis, cfg.Concurrency)

	go func() {
		log.Info().Msg("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("[Worker] Failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks up to the server's ShutdownTimeout.
func (s *asynqServer) Shutdown() {
	log.Info().Msg("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Info().Msg("[Worker] Gracefully stopped")
}
