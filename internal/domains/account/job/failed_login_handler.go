package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"unispattes/internal/domains/account/repository"
	"unispattes/internal/shared"
	"unispattes/pkg/cache"
	"unispattes/pkg/logger"
)

const (
	MaxFailedAttempts = 5
	LockoutDuration   = 15 * time.Minute
	AttemptWindow     = 15 * time.Minute
)

func attemptKey(accountID int64) string { return fmt.Sprintf("failed_login:%d", accountID) }
func lockKey(accountID int64) string    { return fmt.Sprintf("account_locked:%d", accountID) }

// FailedLoginHandler counts wrong-password attempts and locks the account
// once MaxFailedAttempts is reached inside AttemptWindow.
type FailedLoginHandler struct {
	cache cache.Cache
	repo  repository.AccountRepository
}

func NewFailedLoginHandler(cache cache.Cache, repo repository.AccountRepository) *FailedLoginHandler {
	return &FailedLoginHandler{cache: cache, repo: repo}
}

func (h *FailedLoginHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.FailedLoginPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal FailedLogin payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return h.Handle(ctx, payload)
}

func (h *FailedLoginHandler) Handle(ctx context.Context, payload shared.FailedLoginPayload) error {
	log.Info().
		Int64("account_id", payload.AccountID).
		Str("ip_address", payload.IPAddress).
		Msg("Processing failed login attempt")

	isLocked, err := h.cache.Exists(ctx, lockKey(payload.AccountID))
	if err != nil {
		return fmt.Errorf("check lock status: %w", err)
	}
	if isLocked {
		return nil
	}

	key := attemptKey(payload.AccountID)
	attempts, err := h.cache.Increment(ctx, key)
	if err != nil {
		return fmt.Errorf("increment counter: %w", err)
	}

	// Set expiry on first attempt
	if attempts == 1 {
		if err := h.cache.Expire(ctx, key, AttemptWindow); err != nil {
			logger.Error("Failed to set expiry", err)
		}
	}

	log.Info().
		Int64("account_id", payload.AccountID).
		Int64("attempts", attempts).
		Msg("Failed login attempts counted")

	if attempts >= MaxFailedAttempts {
		if err := h.lockAccount(ctx, payload, int(attempts)); err != nil {
			return fmt.Errorf("lock account: %w", err)
		}
		if err := h.cache.Delete(ctx, key); err != nil {
			logger.Error("Failed to clear attempt counter", err)
		}
		return nil
	}

	if err := h.repo.SetFailedAttempts(ctx, payload.AccountID, int(attempts), false); err != nil {
		return fmt.Errorf("persist attempts: %w", err)
	}
	return nil
}

func (h *FailedLoginHandler) lockAccount(ctx context.Context, payload shared.FailedLoginPayload, attempts int) error {
	if err := h.cache.Set(ctx, lockKey(payload.AccountID), "1", LockoutDuration); err != nil {
		return err
	}
	if err := h.repo.SetFailedAttempts(ctx, payload.AccountID, attempts, true); err != nil {
		return err
	}

	log.Warn().
		Int64("account_id", payload.AccountID).
		Str("ip_address", payload.IPAddress).
		Dur("duration", LockoutDuration).
		Msg("Account locked")
	return nil
}

// IsLocked reports whether the lockout window of the account is still running.
func (h *FailedLoginHandler) IsLocked(ctx context.Context, accountID int64) (bool, error) {
	return h.cache.Exists(ctx, lockKey(accountID))
}

// Reset clears the counter and the lock key, after a successful login or a staff unlock.
func (h *FailedLoginHandler) Reset(ctx context.Context, accountID int64) error {
	return h.cache.Delete(ctx, attemptKey(accountID), lockKey(accountID))
}
