package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"unispattes/internal/shared"
)

// Enqueuer is the part of *asynq.Client the tracker needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Tracker is what the login flow talks to. Failures go through the queue when
// one is configured and fall back to the handler inline otherwise.
type Tracker struct {
	handler *FailedLoginHandler
	queue   Enqueuer
}

// NewTracker accepts a nil queue.
func NewTracker(handler *FailedLoginHandler, queue Enqueuer) *Tracker {
	return &Tracker{handler: handler, queue: queue}
}

func (t *Tracker) RecordFailure(ctx context.Context, accountID int64, ip string) error {
	payload := shared.FailedLoginPayload{
		AccountID: accountID,
		IPAddress: ip,
		Timestamp: time.Now(),
	}

	if t.queue != nil {
		data, err := json.Marshal(payload)
		if err == nil {
			task := asynq.NewTask(shared.TypeProcessFailedLogin, data)
			_, err = t.queue.EnqueueContext(ctx, task,
				asynq.Queue(shared.QueueAuth),
				asynq.MaxRetry(3),
				asynq.Timeout(30*time.Second),
			)
			if err == nil {
				return nil
			}
		}
		log.Warn().Err(err).Int64("account_id", accountID).Msg("Failed to enqueue failed-login task, recording inline")
	}

	return t.handler.Handle(ctx, payload)
}

func (t *Tracker) IsLocked(ctx context.Context, accountID int64) (bool, error) {
	return t.handler.IsLocked(ctx, accountID)
}

func (t *Tracker) Reset(ctx context.Context, accountID int64) error {
	return t.handler.Reset(ctx, accountID)
}
