package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"petfeeder/internal/domain/entity"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/domain/repository"
	"petfeeder/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type scheduleService struct {
	deviceRepo repository.DeviceRepository
	auditRepo  repository.AuditRepository
	logger     *slog.Logger
}

// ScheduleServiceParams holds dependencies for ScheduleService, injected by Fx.
type ScheduleServiceParams struct {
	fx.In

	DeviceRepo repository.DeviceRepository
	AuditRepo  repository.AuditRepository
	Logger     *slog.Logger
}

// NewScheduleService creates a new schedule service instance
func NewScheduleService(params ScheduleServiceParams) usecase.ScheduleUsecase {
	return &scheduleService{
		deviceRepo: params.DeviceRepo,
		auditRepo:  params.AuditRepo,
		logger:     params.Logger,
	}
}

// List returns the device's schedules, owner or admin only
func (s *scheduleService) List(ctx context.Context, actor *entity.UserAccount, deviceID string) ([]entity.Schedule, error) {
	device, err := s.loadAuthorizedDevice(ctx, actor, deviceID)
	if err != nil {
		return nil, err
	}

	return device.Schedules, nil
}

// Add appends a new schedule to the device
func (s *scheduleService) Add(ctx context.Context, actor *entity.UserAccount, deviceID string, input *usecase.ScheduleInput) (*entity.Schedule, error) {
	device, err := s.loadAuthorizedDevice(ctx, actor, deviceID)
	if err != nil {
		return nil, err
	}

	schedule := entity.Schedule{
		ID:           uuid.NewString(),
		Days:         input.Days,
		Time:         input.Time,
		PortionGrams: input.PortionGrams,
		Enabled:      true,
	}
	if input.Enabled != nil {
		schedule.Enabled = *input.Enabled
	}
	schedule.NormalizeDays()
	if err := schedule.Validate(); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	device.Schedules = append(device.Schedules, schedule)
	device.UpdatedAt = time.Now().UTC()
	if err := s.deviceRepo.Update(ctx, device); err != nil {
		return nil, domainerrors.NewBackendUnavailableError(err, "failed to save schedule")
	}

	return &schedule, nil
}

// Update replaces an existing schedule's fields
func (s *scheduleService) Update(ctx context.Context, actor *entity.UserAccount, deviceID, scheduleID string, input *usecase.ScheduleInput) (*entity.Schedule, error) {
	device, err := s.loadAuthorizedDevice(ctx, actor, deviceID)
	if err != nil {
		return nil, err
	}

	existing, idx := device.ScheduleByID(scheduleID)
	if existing == nil {
		return nil, domainerrors.ErrScheduleNotFound
	}

	updated := entity.Schedule{
		ID:           scheduleID,
		Days:         input.Days,
		Time:         input.Time,
		PortionGrams: input.PortionGrams,
		Enabled:      existing.Enabled,
	}
	if input.Enabled != nil {
		updated.Enabled = *input.Enabled
	}
	updated.NormalizeDays()
	if err := updated.Validate(); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	device.Schedules[idx] = updated
	device.UpdatedAt = time.Now().UTC()
	if err := s.deviceRepo.Update(ctx, device); err != nil {
		return nil, domainerrors.NewBackendUnavailableError(err, "failed to save schedule")
	}

	return &updated, nil
}

// SetEnabled toggles a schedule without touching its other fields
func (s *scheduleService) SetEnabled(ctx context.Context, actor *entity.UserAccount, deviceID, scheduleID string, enabled bool) error {
	device, err := s.loadAuthorizedDevice(ctx, actor, deviceID)
	if err != nil {
		return err
	}

	schedule, idx := device.ScheduleByID(scheduleID)
	if schedule == nil {
		return domainerrors.ErrScheduleNotFound
	}

	device.Schedules[idx].Enabled = enabled
	device.UpdatedAt = time.Now().UTC()
	if err := s.deviceRepo.Update(ctx, device); err != nil {
		return domainerrors.NewBackendUnavailableError(err, "failed to save schedule")
	}

	return nil
}

// Remove deletes a schedule. The archive copy is written durably first, so
// an archive failure aborts the removal and the schedule stays in place.
func (s *scheduleService) Remove(ctx context.Context, actor *entity.UserAccount, deviceID, scheduleID string) error {
	device, err := s.loadAuthorizedDevice(ctx, actor, deviceID)
	if err != nil {
		return err
	}

	schedule, idx := device.ScheduleByID(scheduleID)
	if schedule == nil {
		return domainerrors.ErrScheduleNotFound
	}

	if err := s.deviceRepo.ArchiveSchedule(ctx, deviceID, *schedule); err != nil {
		return domainerrors.NewBackendUnavailableError(err, "failed to archive schedule")
	}

	device.Schedules = append(device.Schedules[:idx], device.Schedules[idx+1:]...)
	device.UpdatedAt = time.Now().UTC()
	if err := s.deviceRepo.Update(ctx, device); err != nil {
		return domainerrors.NewBackendUnavailableError(err, "failed to remove schedule")
	}

	entry := entity.NewAuditLogEntry(entity.ActionScheduleRemoved, entity.CategorySchedule,
		entity.SeverityInfo, deviceID,
		fmt.Sprintf("Horario %s eliminado y archivado", scheduleID))
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to audit schedule removal",
			slog.String("device_id", deviceID),
			slog.String("schedule_id", scheduleID),
			slog.Any("error", err),
		)
	}

	return nil
}

func (s *scheduleService) loadAuthorizedDevice(ctx context.Context, actor *entity.UserAccount, deviceID string) (*entity.Device, error) {
	device, err := s.deviceRepo.FindByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return nil, domainerrors.ErrDeviceNotFound
		}

		return nil, domainerrors.NewBackendUnavailableError(err, "failed to load device")
	}
	if err := authorizeDevice(actor, device); err != nil {
		return nil, err
	}

	return device, nil
}
