package usecase

import (
	"context"

	"petfeeder/internal/domain/entity"
)

// UpdateProfileInput carries the account fields a user may change
type UpdateProfileInput struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
	FCMToken    string `json:"fcm_token"`
}

// PetProfileInput carries the pet card fields
type PetProfileInput struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Breed    string  `json:"breed" validate:"max=100"`
	AgeYears int     `json:"age_years" validate:"gte=0,lte=50"`
	WeightKg float64 `json:"weight_kg" validate:"gte=0,lte=200"`
}

// AccountUsecase defines the interface for account profile management
type AccountUsecase interface {
	// UpdateProfile changes the caller's own display fields
	UpdateProfile(ctx context.Context, uid string, input *UpdateProfileInput) (*entity.UserAccount, error)

	// UpdatePet replaces the caller's pet card
	UpdatePet(ctx context.Context, uid string, input *PetProfileInput) (*entity.UserAccount, error)

	// ListAccounts returns every account (admin only)
	ListAccounts(ctx context.Context, actor *entity.UserAccount) ([]*entity.UserAccount, error)
}
