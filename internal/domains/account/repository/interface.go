package repository

import (
	"context"

	"unispattes/internal/domains/account/model"
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Login bookkeeping
	RecordLoginSuccess(ctx context.Context, id int64) error
	SetFailedAttempts(ctx context.Context, id int64, attempts int, locked bool) error
	Unlock(ctx context.Context, id int64) error

	// ListWithRequestCount backs the staff listing (per-account adoption request count).
	ListWithRequestCount(ctx context.Context, filter model.ListFilter) ([]*model.AccountSummary, int, error)
}
