package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"unispattes/internal/domains/adoption/model"
	"unispattes/internal/domains/adoption/repository"
)

type adoptionService struct {
	repo    repository.AdoptionRepository
	animals AnimalLookup
}

func NewAdoptionService(repo repository.AdoptionRepository, animals AnimalLookup) ServiceInterface {
	return &adoptionService{repo: repo, animals: animals}
}

// Submit creates a pending request. Duplicates are rejected by the unique
// constraints and come back as ErrAlreadyRequested.
func (s *adoptionService) Submit(ctx context.Context, animalID int64, accountID *int64, req model.SubmitRequest) (*model.AdoptionRequest, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	animal, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return nil, err
	}

	request := req.ToAdoptionRequest(animal.ID, accountID)
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}
	request.AnimalName = animal.Name

	log.Info().
		Int64("request_id", request.ID).
		Int64("animal_id", animal.ID).
		Bool("animal_available", animal.Available).
		Msg("Adoption request submitted")
	return request, nil
}

// Accept marks the request accepted and the animal unavailable, atomically.
func (s *adoptionService) Accept(ctx context.Context, id int64) error {
	err := s.repo.RunInTx(ctx, func(tx repository.TxRepository) error {
		target, err := tx.LockForDisposition(ctx, id)
		if err != nil {
			return err
		}
		if target.Status != model.StatusPending {
			return model.NewAlreadyProcessedError(target.Status)
		}
		if !target.AnimalAvailable {
			return model.NewAnimalAlreadyAdoptedError()
		}
		if err := tx.UpdateStatus(ctx, id, model.StatusAccepted); err != nil {
			return err
		}
		return tx.SetAnimalAvailable(ctx, target.AnimalID, false)
	})
	if err != nil {
		return err
	}

	log.Info().Int64("request_id", id).Msg("Adoption request accepted")
	return nil
}

func (s *adoptionService) Refuse(ctx context.Context, id int64) error {
	err := s.repo.RunInTx(ctx, func(tx repository.TxRepository) error {
		target, err := tx.LockForDisposition(ctx, id)
		if err != nil {
			return err
		}
		if target.Status != model.StatusPending {
			return model.NewAlreadyProcessedError(target.Status)
		}
		return tx.UpdateStatus(ctx, id, model.StatusRefused)
	})
	if err != nil {
		return err
	}

	log.Info().Int64("request_id", id).Msg("Adoption request refused")
	return nil
}

// Reset puts the request back to pending. The animal's availability is not restored.
func (s *adoptionService) Reset(ctx context.Context, id int64) error {
	err := s.repo.RunInTx(ctx, func(tx repository.TxRepository) error {
		if _, err := tx.LockForDisposition(ctx, id); err != nil {
			return err
		}
		return tx.UpdateStatus(ctx, id, model.StatusPending)
	})
	if err != nil {
		return err
	}

	log.Info().Int64("request_id", id).Msg("Adoption request reset to pending")
	return nil
}

func (s *adoptionService) BulkAccept(ctx context.Context, ids []int64) (*model.BulkActionResult, error) {
	return s.bulk(ctx, ids, s.Accept)
}

func (s *adoptionService) BulkRefuse(ctx context.Context, ids []int64) (*model.BulkActionResult, error) {
	return s.bulk(ctx, ids, s.Refuse)
}

func (s *adoptionService) BulkReset(ctx context.Context, ids []int64) (*model.BulkActionResult, error) {
	return s.bulk(ctx, ids, s.Reset)
}

// bulk applies action to each distinct id in its own transaction. Domain
// refusals are reported per id; an infrastructure error stops the batch.
func (s *adoptionService) bulk(ctx context.Context, ids []int64, action func(context.Context, int64) error) (*model.BulkActionResult, error) {
	if err := (model.BulkActionRequest{IDs: ids}).Validate(); err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(ids))
	result := &model.BulkActionResult{Items: make([]model.BulkItem, 0, len(ids))}

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result.Requested++

		err := action(ctx, id)
		if err == nil {
			result.Succeeded++
			result.Items = append(result.Items, model.BulkItem{ID: id, Outcome: model.OutcomeApplied})
			continue
		}

		var adoptionErr *model.AdoptionError
		if !errors.As(err, &adoptionErr) {
			return nil, err
		}
		result.Failed++
		result.Items = append(result.Items, model.BulkItem{ID: id, Outcome: model.OutcomeSkipped, Reason: adoptionErr.Message})
	}

	log.Info().
		Int("requested", result.Requested).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("Bulk disposition done")
	return result, nil
}

func (s *adoptionService) UpdateNotes(ctx context.Context, id int64, req model.UpdateNotesRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.UpdateNotes(ctx, id, req.Notes)
}

func (s *adoptionService) Get(ctx context.Context, id int64) (*model.AdoptionRequest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *adoptionService) List(ctx context.Context, filter model.ListFilter) ([]*model.AdoptionRequest, int, error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

func (s *adoptionService) ListByAccount(ctx context.Context, accountID int64) ([]*model.AdoptionRequest, error) {
	return s.repo.ListByAccount(ctx, accountID)
}
