package impl

import (
	"context"
	"log/slog"
	"testing"

	"petfeeder/internal/domain/entity"
	domainerrors "petfeeder/internal/domain/errors"
	mockRepo "petfeeder/internal/mocks/repository"
	"petfeeder/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// scheduleServiceFixtures holds all test dependencies for schedule service tests.
type scheduleServiceFixtures struct {
	service    usecase.ScheduleUsecase
	deviceRepo *mockRepo.MockDeviceRepository
	auditRepo  *mockRepo.MockAuditRepository
}

func createTestScheduleService(t *testing.T) scheduleServiceFixtures {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	auditRepo := mockRepo.NewMockAuditRepository(t)

	svc := NewScheduleService(ScheduleServiceParams{
		DeviceRepo: deviceRepo,
		AuditRepo:  auditRepo,
		Logger:     slog.Default(),
	})

	return scheduleServiceFixtures{
		service:    svc,
		deviceRepo: deviceRepo,
		auditRepo:  auditRepo,
	}
}

func scheduledDevice(schedules ...entity.Schedule) *entity.Device {
	return &entity.Device{
		ID:           "ESP-PET-0001",
		State:        entity.DeviceStateLinked,
		LinkedUserID: "U1",
		OwnerEmail:   "u1@example.com",
		Schedules:    schedules,
	}
}

func TestScheduleService_Add_Success(t *testing.T) {
	fx := createTestScheduleService(t)
	ctx := context.Background()
	actor := testActor()

	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-0001").
		Return(scheduledDevice(), nil)
	fx.deviceRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Device")).
		Run(func(_ context.Context, device *entity.Device) {
			require.Len(t, device.Schedules, 1)
			assert.Equal(t, []int{1, 3, 5}, device.Schedules[0].Days)
		}).
		Return(nil)

	schedule, err := fx.service.Add(ctx, actor, "ESP-PET-0001", &usecase.ScheduleInput{
		Days:         []int{5, 3, 1, 3},
		Time:         "07:30",
		PortionGrams: 50,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, schedule.ID)
	assert.Equal(t, []int{1, 3, 5}, schedule.Days)
	assert.True(t, schedule.Enabled)
}

func TestScheduleService_Add_InvalidInput(t *testing.T) {
	fx := createTestScheduleService(t)
	ctx := context.Background()
	actor := testActor()

	inputs := []*usecase.ScheduleInput{
		{Days: []int{1}, Time: "25:00", PortionGrams: 50},
		{Days: []int{}, Time: "07:30", PortionGrams: 50},
		{Days: []int{7}, Time: "07:30", PortionGrams: 50},
		{Days: []int{1}, Time: "07:30", PortionGrams: 0},
	}
	for _, input := range inputs {
		fx.deviceRepo.EXPECT().
			FindByID(ctx, "ESP-PET-0001").
			Return(scheduledDevice(), nil).
			Once()

		_, err := fx.service.Add(ctx, actor, "ESP-PET-0001", input)
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.ErrorCode())
	}
}

func TestScheduleService_Add_NotOwner(t *testing.T) {
	fx := createTestScheduleService(t)
	ctx := context.Background()

	stranger := &entity.UserAccount{UID: "U2", Role: entity.RoleUser}
	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-0001").
		Return(scheduledDevice(), nil)

	_, err := fx.service.Add(ctx, stranger, "ESP-PET-0001", &usecase.ScheduleInput{
		Days:         []int{1},
		Time:         "07:30",
		PortionGrams: 50,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDeviceNotOwned)
}

func TestScheduleService_Update_PreservesEnabledWhenUnset(t *testing.T) {
	fx := createTestScheduleService(t)
	ctx := context.Background()
	actor := testActor()

	existing := entity.Schedule{
		ID:           "sched-1",
		Days:         []int{1},
		Time:         "07:30",
		PortionGrams: 50,
		Enabled:      false,
	}
	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-0001").
		Return(scheduledDevice(existing), nil)
	fx.deviceRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Device")).
		Return(nil)

	updated, err := fx.service.Update(ctx, actor, "ESP-PET-0001", "sched-1", &usecase.ScheduleInput{
		Days:         []int{2, 4},
		Time:         "18:00",
		PortionGrams: 70,
	})
	require.NoError(t, err)
	assert.Equal(t, "sched-1", updated.ID)
	assert.Equal(t, "18:00", updated.Time)
	assert.False(t, updated.Enabled)
}

func TestScheduleService_Update_NotFound(t *testing.T) {
	fx := createTestScheduleService(t)
	ctx := context.Background()
	actor := testActor()

	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-0001").
		Return(scheduledDevice(), nil)

	_, err := fx.service.Update(ctx, actor, "ESP-PET-0001", "missing", &usecase.ScheduleInput{
		Days:         []int{1},
		Time:         "07:30",
		PortionGrams: 50,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrScheduleNotFound)
}

func TestScheduleService_SetEnabled(t *testing.T) {
	fx := createTestScheduleService(t)
	ctx := context.Background()
	actor := testActor()

	existing := entity.Schedule{
		ID:           "sched-1",
		Days:         []int{1},
		Time:         "07:30",
		PortionGrams: 50,
		Enabled:      true,
	}
	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-0001").
		Return(scheduledDevice(existing), nil)
	fx.deviceRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Device")).
		Run(func(_ context.Context, device *entity.Device) {
			require.Len(t, device.Schedules, 1)
			assert.False(t, device.Schedules[0].Enabled)
			assert.Equal(t, "07:30", device.Schedules[0].Time)
		}).
		Return(nil)

	err := fx.service.SetEnabled(ctx, actor, "ESP-PET-0001", "sched-1", false)
	require.NoError(t, err)
}

func TestScheduleService_Remove_ArchivesBeforeDeleting(t *testing.T) {
	fx := createTestScheduleService(t)
	ctx := context.Background()
	actor := testActor()

	keep := entity.Schedule{ID: "sched-1", Days: []int{1}, Time: "07:30", PortionGrams: 50, Enabled: true}
	remove := entity.Schedule{ID: "sched-2", Days: []int{2}, Time: "18:00", PortionGrams: 70, Enabled: true}

	var order []string
	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-0001").
		Return(scheduledDevice(keep, remove), nil)
	fx.deviceRepo.EXPECT().
		ArchiveSchedule(ctx, "ESP-PET-0001", remove).
		Run(func(_ context.Context, _ string, _ entity.Schedule) {
			order = append(order, "archive")
		}).
		Return(nil)
	fx.deviceRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Device")).
		Run(func(_ context.Context, device *entity.Device) {
			order = append(order, "update")
			require.Len(t, device.Schedules, 1)
			assert.Equal(t, "sched-1", device.Schedules[0].ID)
		}).
		Return(nil)
	fx.auditRepo.EXPECT().
		Append(ctx, mock.AnythingOfType("*entity.AuditLogEntry")).
		Run(func(_ context.Context, entry *entity.AuditLogEntry) {
			assert.Equal(t, entity.ActionScheduleRemoved, entry.Action)
		}).
		Return(nil)

	err := fx.service.Remove(ctx, actor, "ESP-PET-0001", "sched-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"archive", "update"}, order)
}

func TestScheduleService_Remove_ArchiveFailureAborts(t *testing.T) {
	fx := createTestScheduleService(t)
	ctx := context.Background()
	actor := testActor()

	remove := entity.Schedule{ID: "sched-1", Days: []int{1}, Time: "07:30", PortionGrams: 50, Enabled: true}
	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-0001").
		Return(scheduledDevice(remove), nil)
	fx.deviceRepo.EXPECT().
		ArchiveSchedule(ctx, "ESP-PET-0001", remove).
		Return(assert.AnError)

	err := fx.service.Remove(ctx, actor, "ESP-PET-0001", "sched-1")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "BACKEND_UNAVAILABLE", appErr.ErrorCode())
}

func TestScheduleService_List(t *testing.T) {
	fx := createTestScheduleService(t)
	ctx := context.Background()
	actor := testActor()

	existing := entity.Schedule{ID: "sched-1", Days: []int{1}, Time: "07:30", PortionGrams: 50, Enabled: true}
	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-0001").
		Return(scheduledDevice(existing), nil)

	schedules, err := fx.service.List(ctx, actor, "ESP-PET-0001")
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, "sched-1", schedules[0].ID)
}
