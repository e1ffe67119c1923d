package service

import (
	"context"

	"unispattes/internal/domains/animal/model"
)

// HomeListingSize is the number of animals shown on the home page.
const HomeListingSize = 3

type ServiceInterface interface {
	// Public listings
	ListRecent(ctx context.Context, n int) ([]*model.Animal, error)
	List(ctx context.Context, filter model.ListFilter) ([]*model.Animal, int, error)
	Get(ctx context.Context, id int64) (*model.Animal, error)

	// Staff management
	Create(ctx context.Context, req model.CreateAnimalRequest) (*model.Animal, error)
	Update(ctx context.Context, id int64, req model.UpdateAnimalRequest) (*model.Animal, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
	Delete(ctx context.Context, id int64) error
	UploadPhoto(ctx context.Context, id int64, data []byte) (*model.Animal, error)

	PhotoURL(a *model.Animal) string
}

// PhotoStorage is implemented by storage.MinIOStorage.
type PhotoStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	URL(key string) string
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// ImageProcessor is implemented by storage.ImageProcessor.
type ImageProcessor interface {
	ValidateImage(data []byte) error
	ProcessImage(data []byte) (map[string][]byte, error)
}
