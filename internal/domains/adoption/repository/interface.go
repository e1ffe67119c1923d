package repository

import (
	"context"

	"unispattes/internal/domains/adoption/model"
)

type AdoptionRepository interface {
	// Create maps the unique (animal, email) and (animal, account) constraints to ErrAlreadyRequested.
	Create(ctx context.Context, req *model.AdoptionRequest) error
	GetByID(ctx context.Context, id int64) (*model.AdoptionRequest, error)
	List(ctx context.Context, filter model.ListFilter) ([]*model.AdoptionRequest, int, error)
	ListByAccount(ctx context.Context, accountID int64) ([]*model.AdoptionRequest, error)
	UpdateNotes(ctx context.Context, id int64, notes string) error

	// RunInTx runs fn in one transaction; any error rolls every write back.
	RunInTx(ctx context.Context, fn func(tx TxRepository) error) error
}

// TxRepository is the write surface of the disposition workflow.
type TxRepository interface {
	// LockForDisposition locks the request row and its animal row.
	LockForDisposition(ctx context.Context, id int64) (*model.DispositionTarget, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
	SetAnimalAvailable(ctx context.Context, animalID int64, available bool) error
}
