package repository

import (
	"context"

	"unispattes/internal/domains/animal/model"
)

type AnimalRepository interface {
	Create(ctx context.Context, animal *model.Animal) error
	GetByID(ctx context.Context, id int64) (*model.Animal, error)
	Update(ctx context.Context, animal *model.Animal) error
	SetAvailability(ctx context.Context, id int64, available bool) error
	SetPhoto(ctx context.Context, id int64, photo string) error
	Delete(ctx context.Context, id int64) error

	// ListRecent returns the n most recently created animals (id DESC), whatever their availability.
	ListRecent(ctx context.Context, n int) ([]*model.Animal, error)

	// List returns animals ordered by arrival date, newest first, with the total matching count.
	List(ctx context.Context, filter model.ListFilter) ([]*model.Animal, int, error)
}
