package service

import (
	"context"

	"unispattes/internal/domains/account/model"
)

type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.Account, error)
	// Login never tells an unknown email apart from a wrong password.
	Login(ctx context.Context, req model.LoginRequest, ip string) (*model.Account, error)
	Get(ctx context.Context, id int64) (*model.Account, error)

	List(ctx context.Context, filter model.ListFilter) ([]*model.AccountSummary, int, error)
	Unlock(ctx context.Context, id int64) error
}

// LoginTracker records wrong-password attempts and owns the lockout window.
type LoginTracker interface {
	RecordFailure(ctx context.Context, accountID int64, ip string) error
	IsLocked(ctx context.Context, accountID int64) (bool, error)
	Reset(ctx context.Context, accountID int64) error
}
