package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"unispattes/internal/domains/animal/model"
	"unispattes/internal/domains/animal/repository"
	"unispattes/internal/infrastructure/storage"
)

type animalService struct {
	repo      repository.AnimalRepository
	storage   PhotoStorage // nil when photo storage is disabled
	processor ImageProcessor
}

func NewAnimalService(repo repository.AnimalRepository, photos PhotoStorage, processor ImageProcessor) ServiceInterface {
	return &animalService{
		repo:      repo,
		storage:   photos,
		processor: processor,
	}
}

func (s *animalService) ListRecent(ctx context.Context, n int) ([]*model.Animal, error) {
	if n <= 0 {
		n = HomeListingSize
	}
	return s.repo.ListRecent(ctx, n)
}

func (s *animalService) List(ctx context.Context, filter model.ListFilter) ([]*model.Animal, int, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}

func (s *animalService) Get(ctx context.Context, id int64) (*model.Animal, error) {
	if id <= 0 {
		return nil, model.NewAnimalNotFoundError()
	}
	return s.repo.GetByID(ctx, id)
}

func (s *animalService) Create(ctx context.Context, req model.CreateAnimalRequest) (*model.Animal, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	animal := req.ToAnimal()
	if err := s.repo.Create(ctx, animal); err != nil {
		return nil, err
	}

	log.Info().Int64("animal_id", animal.ID).Str("nom", animal.Name).Msg("Animal created")
	return animal, nil
}

func (s *animalService) Update(ctx context.Context, id int64, req model.UpdateAnimalRequest) (*model.Animal, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	animal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(animal)
	if err := s.repo.Update(ctx, animal); err != nil {
		return nil, err
	}
	return animal, nil
}

func (s *animalService) SetAvailability(ctx context.Context, id int64, available bool) error {
	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		return err
	}
	log.Info().Int64("animal_id", id).Bool("disponible", available).Msg("Animal availability changed by staff")
	return nil
}

func (s *animalService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.storage != nil {
		if err := s.storage.DeleteByPrefix(ctx, photoPrefix(id)); err != nil {
			log.Warn().Err(err).Int64("animal_id", id).Msg("Failed to remove animal photos")
		}
	}
	return nil
}

// UploadPhoto stores the resized variants and points the animal at the large one.
func (s *animalService) UploadPhoto(ctx context.Context, id int64, data []byte) (*model.Animal, error) {
	if s.storage == nil {
		return nil, model.NewStorageUnavailableError()
	}
	if err := s.processor.ValidateImage(data); err != nil {
		return nil, model.NewInvalidImageError(err.Error())
	}

	animal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	variants, err := s.processor.ProcessImage(data)
	if err != nil {
		return nil, model.NewInvalidImageError(err.Error())
	}

	stem := fmt.Sprintf("%s%s", photoPrefix(id), uuid.NewString())
	uploaded := make([]string, 0, len(variants))
	for name, content := range variants {
		key := variantKey(stem, name)
		if _, err := s.storage.Upload(ctx, key, content, "image/jpeg"); err != nil {
			s.cleanup(ctx, uploaded)
			return nil, fmt.Errorf("upload %s: %w", name, err)
		}
		uploaded = append(uploaded, key)
	}

	newPhoto := variantKey(stem, storage.VariantLarge)
	if err := s.repo.SetPhoto(ctx, id, newPhoto); err != nil {
		s.cleanup(ctx, uploaded)
		return nil, err
	}

	if old := animal.Photo; old != "" {
		s.cleanup(ctx, siblingKeys(old))
	}

	animal.Photo = newPhoto
	return animal, nil
}

func (s *animalService) PhotoURL(a *model.Animal) string {
	if a == nil || a.Photo == "" || s.storage == nil {
		return ""
	}
	return s.storage.URL(a.Photo)
}

func (s *animalService) cleanup(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to delete photo object")
		}
	}
}

func photoPrefix(id int64) string {
	return fmt.Sprintf("animaux/%d/", id)
}

func variantKey(stem, variant string) string {
	return fmt.Sprintf("%s_%s.jpg", stem, variant)
}

// siblingKeys returns every variant key sharing the stem of a stored large photo key.
func siblingKeys(largeKey string) []string {
	suffix := "_" + storage.VariantLarge + ".jpg"
	if !strings.HasSuffix(largeKey, suffix) {
		return []string{largeKey}
	}
	stem := strings.TrimSuffix(largeKey, suffix)
	return []string{
		variantKey(stem, storage.VariantLarge),
		variantKey(stem, storage.VariantThumbnail),
	}
}
