package usecase

import (
	"context"

	"petfeeder/internal/domain/entity"
)

// ScheduleInput carries the mutable fields of a feeding schedule
type ScheduleInput struct {
	Days         []int   `json:"days" validate:"required,min=1,dive,gte=0,lte=6"`
	Time         string  `json:"time" validate:"required"`
	PortionGrams float64 `json:"portion_grams" validate:"required,gt=0"`
	Enabled      *bool   `json:"enabled"`
}

// ScheduleUsecase defines the interface for feeding schedule management
type ScheduleUsecase interface {
	// List returns the device's schedules, owner or admin only
	List(ctx context.Context, actor *entity.UserAccount, deviceID string) ([]entity.Schedule, error)

	// Add appends a new schedule to the device
	Add(ctx context.Context, actor *entity.UserAccount, deviceID string, input *ScheduleInput) (*entity.Schedule, error)

	// Update replaces an existing schedule's fields
	Update(ctx context.Context, actor *entity.UserAccount, deviceID, scheduleID string, input *ScheduleInput) (*entity.Schedule, error)

	// SetEnabled toggles a schedule without touching its other fields
	SetEnabled(ctx context.Context, actor *entity.UserAccount, deviceID, scheduleID string, enabled bool) error

	// Remove deletes a schedule, archiving a copy first
	Remove(ctx context.Context, actor *entity.UserAccount, deviceID, scheduleID string) error
}
