package impl

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"petfeeder/internal/domain/entity"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/domain/repository"
	"petfeeder/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Spanish labels for dispense kinds in CSV downloads.
var dispenseKindLabels = map[entity.DispenseKind]string{
	entity.DispenseScheduled: "Programada",
	entity.DispenseManual:    "Manual",
}

type consumptionService struct {
	consumptionRepo repository.ConsumptionRepository
	deviceRepo      repository.DeviceRepository
	auditRepo       repository.AuditRepository
	logger          *slog.Logger
}

// ConsumptionServiceParams holds dependencies for ConsumptionService, injected by Fx.
type ConsumptionServiceParams struct {
	fx.In

	ConsumptionRepo repository.ConsumptionRepository
	DeviceRepo      repository.DeviceRepository
	AuditRepo       repository.AuditRepository
	Logger          *slog.Logger
}

// NewConsumptionService creates a new consumption service instance
func NewConsumptionService(params ConsumptionServiceParams) usecase.ConsumptionUsecase {
	return &consumptionService{
		consumptionRepo: params.ConsumptionRepo,
		deviceRepo:      params.DeviceRepo,
		auditRepo:       params.AuditRepo,
		logger:          params.Logger,
	}
}

// RecordDispense persists a dispense event and its audit entry
func (s *consumptionService) RecordDispense(ctx context.Context, event *entity.DispenseEvent) error {
	if event.DeviceID == "" || event.Grams <= 0 || !event.Kind.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("evento de dispensado incompleto")
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.DispensedAt.IsZero() {
		event.DispensedAt = time.Now().UTC()
	}

	if err := s.consumptionRepo.Record(ctx, event); err != nil {
		return domainerrors.NewBackendUnavailableError(err, "failed to record dispense event")
	}

	entry := entity.NewAuditLogEntry(entity.ActionDispenseRecorded, entity.CategoryFeeding,
		entity.SeverityInfo, event.DeviceID,
		fmt.Sprintf("Dispensado de %.1f g (%s)", event.Grams, dispenseKindLabels[event.Kind]))
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to audit dispense event",
			slog.String("device_id", event.DeviceID),
			slog.Any("error", err),
		)
	}

	return nil
}

// History returns dispense events for a device, newest first
func (s *consumptionService) History(ctx context.Context, actor *entity.UserAccount, deviceID string, query *usecase.HistoryQuery) ([]*entity.DispenseEvent, error) {
	if err := s.authorize(ctx, actor, deviceID); err != nil {
		return nil, err
	}

	if query == nil {
		query = &usecase.HistoryQuery{}
	}
	events, err := s.consumptionRepo.ListByDevice(ctx, deviceID, query.Since, query.Until, query.Limit)
	if err != nil {
		return nil, domainerrors.NewBackendUnavailableError(err, "failed to list dispense events")
	}

	return events, nil
}

// ExportCSV renders the device's history as a CSV download. An empty history
// still yields the header row.
func (s *consumptionService) ExportCSV(ctx context.Context, actor *entity.UserAccount, deviceID string, query *usecase.HistoryQuery) ([]byte, error) {
	events, err := s.History(ctx, actor, deviceID, query)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Fecha y Hora", "Gramos Consumidos", "Tipo"}); err != nil {
		return nil, errors.Wrap(err, "failed to write CSV header")
	}
	for _, event := range events {
		record := []string{
			event.DispensedAt.Format(exportTimeLayout),
			strconv.FormatFloat(event.Grams, 'f', -1, 64),
			dispenseKindLabels[event.Kind],
		}
		if err := writer.Write(record); err != nil {
			return nil, errors.Wrap(err, "failed to write CSV record")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to flush CSV")
	}

	return buf.Bytes(), nil
}

func (s *consumptionService) authorize(ctx context.Context, actor *entity.UserAccount, deviceID string) error {
	device, err := s.deviceRepo.FindByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return domainerrors.ErrDeviceNotFound
		}

		return domainerrors.NewBackendUnavailableError(err, "failed to load device")
	}

	return authorizeDevice(actor, device)
}
