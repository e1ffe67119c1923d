package main

import (
	"github.com/hibiken/asynq"

	accountJob "unispattes/internal/domains/account/job"
	"unispattes/internal/shared"
	"unispattes/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	failedLogin *accountJob.FailedLoginHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		failedLogin: c.FailedLoginHandler,
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Security tasks
	mux.HandleFunc(shared.TypeProcessFailedLogin, h.failedLogin.ProcessTask)
}
