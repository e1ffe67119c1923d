package service

import (
	"context"

	"unispattes/internal/domains/adoption/model"
	animalModel "unispattes/internal/domains/animal/model"
)

type ServiceInterface interface {
	// Intake
	Submit(ctx context.Context, animalID int64, accountID *int64, req model.SubmitRequest) (*model.AdoptionRequest, error)

	// Disposition
	Accept(ctx context.Context, id int64) error
	Refuse(ctx context.Context, id int64) error
	Reset(ctx context.Context, id int64) error
	BulkAccept(ctx context.Context, ids []int64) (*model.BulkActionResult, error)
	BulkRefuse(ctx context.Context, ids []int64) (*model.BulkActionResult, error)
	BulkReset(ctx context.Context, ids []int64) (*model.BulkActionResult, error)
	UpdateNotes(ctx context.Context, id int64, req model.UpdateNotesRequest) error

	Get(ctx context.Context, id int64) (*model.AdoptionRequest, error)
	List(ctx context.Context, filter model.ListFilter) ([]*model.AdoptionRequest, int, error)
	ListByAccount(ctx context.Context, accountID int64) ([]*model.AdoptionRequest, error)
	Export(ctx context.Context, filter model.ListFilter) ([]byte, error)
}

// AnimalLookup is satisfied by the animal repository.
type AnimalLookup interface {
	GetByID(ctx context.Context, id int64) (*animalModel.Animal, error)
}
