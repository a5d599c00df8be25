package impl

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"petfeeder/internal/domain/entity"
	domainerrors "petfeeder/internal/domain/errors"
	mockRepo "petfeeder/internal/mocks/repository"
	"petfeeder/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// consumptionServiceFixtures holds all test dependencies for consumption service tests.
type consumptionServiceFixtures struct {
	service         usecase.ConsumptionUsecase
	consumptionRepo *mockRepo.MockConsumptionRepository
	deviceRepo      *mockRepo.MockDeviceRepository
	auditRepo       *mockRepo.MockAuditRepository
}

func createTestConsumptionService(t *testing.T) consumptionServiceFixtures {
	consumptionRepo := mockRepo.NewMockConsumptionRepository(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	auditRepo := mockRepo.NewMockAuditRepository(t)

	svc := NewConsumptionService(ConsumptionServiceParams{
		ConsumptionRepo: consumptionRepo,
		DeviceRepo:      deviceRepo,
		AuditRepo:       auditRepo,
		Logger:          slog.Default(),
	})

	return consumptionServiceFixtures{
		service:         svc,
		consumptionRepo: consumptionRepo,
		deviceRepo:      deviceRepo,
		auditRepo:       auditRepo,
	}
}

func TestConsumptionService_RecordDispense_FillsDefaults(t *testing.T) {
	fx := createTestConsumptionService(t)
	ctx := context.Background()

	fx.consumptionRepo.EXPECT().
		Record(ctx, mock.AnythingOfType("*entity.DispenseEvent")).
		Run(func(_ context.Context, event *entity.DispenseEvent) {
			assert.NotEmpty(t, event.ID)
			assert.False(t, event.DispensedAt.IsZero())
		}).
		Return(nil)
	fx.auditRepo.EXPECT().
		Append(ctx, mock.AnythingOfType("*entity.AuditLogEntry")).
		Run(func(_ context.Context, entry *entity.AuditLogEntry) {
			assert.Equal(t, entity.ActionDispenseRecorded, entry.Action)
			assert.Contains(t, entry.Detail, "25.0 g")
			assert.Contains(t, entry.Detail, "Manual")
		}).
		Return(nil)

	err := fx.service.RecordDispense(ctx, &entity.DispenseEvent{
		DeviceID: "ESP-PET-0001",
		UserID:   "U1",
		Grams:    25,
		Kind:     entity.DispenseManual,
	})
	require.NoError(t, err)
}

func TestConsumptionService_RecordDispense_RejectsIncompleteEvents(t *testing.T) {
	fx := createTestConsumptionService(t)
	ctx := context.Background()

	events := []*entity.DispenseEvent{
		{Grams: 25, Kind: entity.DispenseManual},
		{DeviceID: "ESP-PET-0001", Grams: 0, Kind: entity.DispenseManual},
		{DeviceID: "ESP-PET-0001", Grams: 25, Kind: "unknown"},
	}
	for _, event := range events {
		err := fx.service.RecordDispense(ctx, event)
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.ErrorCode())
	}
}

func TestConsumptionService_RecordDispense_AuditFailureIsNotFatal(t *testing.T) {
	fx := createTestConsumptionService(t)
	ctx := context.Background()

	fx.consumptionRepo.EXPECT().
		Record(ctx, mock.AnythingOfType("*entity.DispenseEvent")).
		Return(nil)
	fx.auditRepo.EXPECT().
		Append(ctx, mock.AnythingOfType("*entity.AuditLogEntry")).
		Return(assert.AnError)

	err := fx.service.RecordDispense(ctx, &entity.DispenseEvent{
		DeviceID: "ESP-PET-0001",
		Grams:    25,
		Kind:     entity.DispenseScheduled,
	})
	require.NoError(t, err)
}

func TestConsumptionService_History(t *testing.T) {
	fx := createTestConsumptionService(t)
	ctx := context.Background()
	actor := testActor()

	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	events := []*entity.DispenseEvent{
		{ID: "e1", DeviceID: "ESP-PET-0001", Grams: 25, Kind: entity.DispenseManual},
	}

	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-0001").
		Return(linkedDevice(), nil)
	fx.consumptionRepo.EXPECT().
		ListByDevice(ctx, "ESP-PET-0001", since, until, 100).
		Return(events, nil)

	got, err := fx.service.History(ctx, actor, "ESP-PET-0001", &usecase.HistoryQuery{
		Since: since,
		Until: until,
		Limit: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestConsumptionService_History_NotOwner(t *testing.T) {
	fx := createTestConsumptionService(t)
	ctx := context.Background()

	stranger := &entity.UserAccount{UID: "U2", Role: entity.RoleUser}
	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-0001").
		Return(linkedDevice(), nil)

	_, err := fx.service.History(ctx, stranger, "ESP-PET-0001", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDeviceNotOwned)
}

func TestConsumptionService_ExportCSV(t *testing.T) {
	fx := createTestConsumptionService(t)
	ctx := context.Background()
	actor := testActor()

	dispensedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-0001").
		Return(linkedDevice(), nil)
	fx.consumptionRepo.EXPECT().
		ListByDevice(ctx, "ESP-PET-0001", time.Time{}, time.Time{}, 0).
		Return([]*entity.DispenseEvent{
			{ID: "e1", DeviceID: "ESP-PET-0001", Grams: 25.5, Kind: entity.DispenseScheduled, DispensedAt: dispensedAt},
			{ID: "e2", DeviceID: "ESP-PET-0001", Grams: 10, Kind: entity.DispenseManual, DispensedAt: dispensedAt},
		}, nil)

	data, err := fx.service.ExportCSV(ctx, actor, "ESP-PET-0001", nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Fecha y Hora,Gramos Consumidos,Tipo", lines[0])
	assert.Equal(t, "14/03/2026 09:30:00,25.5,Programada", lines[1])
	assert.Equal(t, "14/03/2026 09:30:00,10,Manual", lines[2])
}

func TestConsumptionService_ExportCSV_EmptyStillHasHeader(t *testing.T) {
	fx := createTestConsumptionService(t)
	ctx := context.Background()
	actor := testActor()

	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-0001").
		Return(linkedDevice(), nil)
	fx.consumptionRepo.EXPECT().
		ListByDevice(ctx, "ESP-PET-0001", time.Time{}, time.Time{}, 0).
		Return(nil, nil)

	data, err := fx.service.ExportCSV(ctx, actor, "ESP-PET-0001", nil)
	require.NoError(t, err)
	assert.Equal(t, "Fecha y Hora,Gramos Consumidos,Tipo\n", string(data))
}
