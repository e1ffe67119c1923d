package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"unispattes/internal/domains/account/model"
	"unispattes/internal/domains/account/repository"
)

const BcryptCost = 12

type accountService struct {
	repo    repository.AccountRepository
	tracker LoginTracker
	cost    int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAccountService(repo repository.AccountRepository, tracker LoginTracker) ServiceInterface {
	return &accountService{repo: repo, tracker: tracker, cost: BcryptCost}
}

func (s *accountService) Register(ctx context.Context, req model.RegisterRequest) (*model.Account, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validation.Errors{"email": errors.New(model.MsgEmailExists)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password1), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		// Lost a race against a concurrent registration
		if errors.Is(err, model.ErrEmailAlreadyExists) {
			return nil, validation.Errors{"email": errors.New(model.MsgEmailExists)}
		}
		return nil, err
	}

	log.Info().Int64("account_id", account.ID).Msg("Account registered")
	return account, nil
}

func (s *accountService) Login(ctx context.Context, req model.LoginRequest, ip string) (*model.Account, error) {
	req.Email = model.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	account, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			s.compareDummy(req.Password)
			return nil, model.NewInvalidCredentialsError()
		}
		return nil, err
	}

	if !account.IsActive {
		s.compareDummy(req.Password)
		return nil, model.NewInvalidCredentialsError()
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password))

	if account.Locked {
		stillLocked, err := s.tracker.IsLocked(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("check lock: %w", err)
		}
		if stillLocked {
			// The lockout is only disclosed to a caller holding the right password
			if passwordErr != nil {
				return nil, model.NewInvalidCredentialsError()
			}
			return nil, model.NewAccountLockedError()
		}
		// Lockout window elapsed
		if err := s.repo.Unlock(ctx, account.ID); err != nil {
			return nil, err
		}
		account.Locked = false
		account.FailedAttempts = 0
	}

	if passwordErr != nil {
		if err := s.tracker.RecordFailure(ctx, account.ID, ip); err != nil {
			log.Error().Err(err).Int64("account_id", account.ID).Msg("Failed to record failed login")
		}
		return nil, model.NewInvalidCredentialsError()
	}

	if err := s.repo.RecordLoginSuccess(ctx, account.ID); err != nil {
		return nil, err
	}
	if err := s.tracker.Reset(ctx, account.ID); err != nil {
		log.Warn().Err(err).Int64("account_id", account.ID).Msg("Failed to reset login counters")
	}

	log.Info().Int64("account_id", account.ID).Str("ip", ip).Msg("Login succeeded")
	return account, nil
}

// compareDummy keeps the response time of unknown emails close to that of wrong passwords.
func (s *accountService) compareDummy(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("unispattes-dummy-password"), s.cost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

func (s *accountService) Get(ctx context.Context, id int64) (*model.Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *accountService) List(ctx context.Context, filter model.ListFilter) ([]*model.AccountSummary, int, error) {
	return s.repo.ListWithRequestCount(ctx, filter)
}

func (s *accountService) Unlock(ctx context.Context, id int64) error {
	if err := s.repo.Unlock(ctx, id); err != nil {
		return err
	}
	if err := s.tracker.Reset(ctx, id); err != nil {
		log.Warn().Err(err).Int64("account_id", id).Msg("Failed to clear lock keys")
	}
	log.Info().Int64("account_id", id).Msg("Account unlocked")
	return nil
}
