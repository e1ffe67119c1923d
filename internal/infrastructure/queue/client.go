package queue

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"unispattes/internal/config"
	"unispattes/internal/shared"
)

// RedisOpt derives the asynq connection from the shared Redis settings.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}

// NewServer builds the worker server. Auth tasks are served first.
func NewServer(cfg config.RedisConfig, concurrency int) *asynq.Server {
	if concurrency < 1 {
		concurrency = 5
	}

	return asynq.NewServer(RedisOpt(cfg), asynq.Config{
		Queues: map[string]int{
			shared.QueueAuth:    6,
			shared.QueueDefault: 3,
		},
		Concurrency:     concurrency,
		ShutdownTimeout: 30 * time.Second,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			log.Error().
				Err(err).
				Str("task_type", task.Type()).
				Int("retry", retried).
				Int("max_retry", maxRetry).
				Msg("[WORKER] Task failed")
		}),
	})
}
