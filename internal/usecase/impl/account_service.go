package impl

import (
	"context"
	"log/slog"
	"time"

	"petfeeder/internal/domain/entity"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/domain/repository"
	"petfeeder/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type accountService struct {
	accountRepo repository.AccountRepository
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Logger      *slog.Logger
}

// NewAccountService creates a new account service instance
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		accountRepo: params.AccountRepo,
		logger:      params.Logger,
	}
}

// UpdateProfile changes the caller's own display fields
func (s *accountService) UpdateProfile(ctx context.Context, uid string, input *usecase.UpdateProfileInput) (*entity.UserAccount, error) {
	account, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}

	account.DisplayName = input.DisplayName
	if input.FCMToken != "" {
		account.FCMToken = input.FCMToken
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, domainerrors.NewBackendUnavailableError(err, "failed to update profile")
	}

	return account, nil
}

// UpdatePet replaces the caller's pet card
func (s *accountService) UpdatePet(ctx context.Context, uid string, input *usecase.PetProfileInput) (*entity.UserAccount, error) {
	account, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}

	account.Pet = &entity.PetProfile{
		Name:     input.Name,
		Breed:    input.Breed,
		AgeYears: input.AgeYears,
		WeightKg: input.WeightKg,
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, domainerrors.NewBackendUnavailableError(err, "failed to update pet profile")
	}

	return account, nil
}

// ListAccounts returns every account (admin only)
func (s *accountService) ListAccounts(ctx context.Context, actor *entity.UserAccount) ([]*entity.UserAccount, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.List(ctx, 0)
	if err != nil {
		return nil, domainerrors.NewBackendUnavailableError(err, "failed to list accounts")
	}

	return accounts, nil
}

func (s *accountService) load(ctx context.Context, uid string) (*entity.UserAccount, error) {
	account, err := s.accountRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, domainerrors.NewBackendUnavailableError(err, "failed to load account")
	}

	return account, nil
}
