package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"petfeeder/config"
	"petfeeder/internal/domain/entity"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/domain/repository"
	"petfeeder/internal/domain/service"
	mockRepo "petfeeder/internal/mocks/repository"
	mockSvc "petfeeder/internal/mocks/service"
	"petfeeder/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// statusServiceFixtures holds all test dependencies for status service tests.
type statusServiceFixtures struct {
	service      usecase.StatusUsecase
	deviceRepo   *mockRepo.MockDeviceRepository
	statusRepo   *mockRepo.MockStatusRepository
	accountRepo  *mockRepo.MockAccountRepository
	notification *mockSvc.MockNotificationService
	publisher    *mockSvc.MockEventPublisher
}

func createTestStatusService(t *testing.T) statusServiceFixtures {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	statusRepo := mockRepo.NewMockStatusRepository(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	notification := mockSvc.NewMockNotificationService(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	cfg := &config.Config{
		Notification: &config.NotificationConfig{Enabled: true},
	}

	svc := NewStatusService(StatusServiceParams{
		DeviceRepo:   deviceRepo,
		StatusRepo:   statusRepo,
		AccountRepo:  accountRepo,
		Notification: notification,
		Publisher:    publisher,
		Config:       cfg,
		Logger:       slog.Default(),
	})

	return statusServiceFixtures{
		service:      svc,
		deviceRepo:   deviceRepo,
		statusRepo:   statusRepo,
		accountRepo:  accountRepo,
		notification: notification,
		publisher:    publisher,
	}
}

func linkedDevice() *entity.Device {
	return &entity.Device{
		ID:           "ESP-PET-0001",
		State:        entity.DeviceStateLinked,
		LinkedUserID: "U1",
		OwnerEmail:   "u1@example.com",
		FoodLevel:    42,
		Firmware:     "1.4.0",
	}
}

func TestStatusService_Status_MergesBothSources(t *testing.T) {
	fx := createTestStatusService(t)
	ctx := context.Background()

	fx.deviceRepo.EXPECT().FindByID(ctx, "ESP-PET-0001").Return(linkedDevice(), nil)
	fx.statusRepo.EXPECT().
		Get(ctx, "ESP-PET-0001").
		Return(&entity.RealtimeStatus{Online: boolPtr(true), FoodLevel: intPtr(90)}, nil)

	view, err := fx.service.Status(ctx, testActor(), "ESP-PET-0001")
	require.NoError(t, err)
	assert.Equal(t, entity.ConnectionOnline, view.Connection)
	assert.Equal(t, 90, view.FoodLevel)
	assert.Equal(t, "u1@example.com", view.OwnerEmail)
}

func TestStatusService_Status_MissingFragmentDegradesToDurable(t *testing.T) {
	fx := createTestStatusService(t)
	ctx := context.Background()

	fx.deviceRepo.EXPECT().FindByID(ctx, "ESP-PET-0001").Return(linkedDevice(), nil)
	fx.statusRepo.EXPECT().
		Get(ctx, "ESP-PET-0001").
		Return(nil, repository.ErrStatusNotFound)

	view, err := fx.service.Status(ctx, testActor(), "ESP-PET-0001")
	require.NoError(t, err)
	assert.Equal(t, entity.ConnectionOffline, view.Connection)
	assert.Equal(t, 42, view.FoodLevel)
}

func TestStatusService_Status_FragmentReadErrorDegradesToDurable(t *testing.T) {
	fx := createTestStatusService(t)
	ctx := context.Background()

	fx.deviceRepo.EXPECT().FindByID(ctx, "ESP-PET-0001").Return(linkedDevice(), nil)
	fx.statusRepo.EXPECT().
		Get(ctx, "ESP-PET-0001").
		Return(nil, errors.New("realtime database unreachable"))

	view, err := fx.service.Status(ctx, testActor(), "ESP-PET-0001")
	require.NoError(t, err)
	assert.Equal(t, 42, view.FoodLevel)
}

func TestStatusService_Status_NotOwner(t *testing.T) {
	fx := createTestStatusService(t)
	ctx := context.Background()

	stranger := &entity.UserAccount{UID: "U2", Role: entity.RoleUser}

	fx.deviceRepo.EXPECT().FindByID(ctx, "ESP-PET-0001").Return(linkedDevice(), nil)

	_, err := fx.service.Status(ctx, stranger, "ESP-PET-0001")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDeviceNotOwned)
}

func TestStatusService_Watch_EmitsOnEachSourceUpdate(t *testing.T) {
	fx := createTestStatusService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deviceCh := make(chan *entity.Device)
	statusCh := make(chan *entity.RealtimeStatus)

	fx.deviceRepo.EXPECT().FindByID(ctx, "ESP-PET-0001").Return(linkedDevice(), nil)
	fx.deviceRepo.EXPECT().
		Watch(ctx, "ESP-PET-0001").
		Return((<-chan *entity.Device)(deviceCh), nil)
	fx.statusRepo.EXPECT().
		Watch(ctx, "ESP-PET-0001").
		Return((<-chan *entity.RealtimeStatus)(statusCh), nil)

	out, err := fx.service.Watch(ctx, testActor(), "ESP-PET-0001")
	require.NoError(t, err)

	// Initial snapshot from the durable record.
	first := <-out
	assert.Equal(t, 42, first.FoodLevel)

	statusCh <- &entity.RealtimeStatus{Online: boolPtr(true), FoodLevel: intPtr(77)}
	second := <-out
	assert.Equal(t, entity.ConnectionOnline, second.Connection)
	assert.Equal(t, 77, second.FoodLevel)

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-out
		return !open
	}, time.Second, 10*time.Millisecond)
}

func TestStatusService_Watch_NotifiesOwnerOnOnlineEdge(t *testing.T) {
	fx := createTestStatusService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deviceCh := make(chan *entity.Device)
	statusCh := make(chan *entity.RealtimeStatus)

	fx.deviceRepo.EXPECT().FindByID(ctx, "ESP-PET-0001").Return(linkedDevice(), nil)
	fx.deviceRepo.EXPECT().
		Watch(ctx, "ESP-PET-0001").
		Return((<-chan *entity.Device)(deviceCh), nil)
	fx.statusRepo.EXPECT().
		Watch(ctx, "ESP-PET-0001").
		Return((<-chan *entity.RealtimeStatus)(statusCh), nil)

	owner := &entity.UserAccount{UID: "U1", FCMToken: "fcm-token-1"}
	fx.accountRepo.EXPECT().FindByUID(mock.Anything, "U1").Return(owner, nil)

	sent := make(chan struct{}, 1)
	fx.notification.EXPECT().
		Send(mock.Anything, "fcm-token-1", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).
		Run(func(_ context.Context, _ string, _ string, _ string, _ map[string]string) {
			sent <- struct{}{}
		}).
		Return(nil)

	out, err := fx.service.Watch(ctx, testActor(), "ESP-PET-0001")
	require.NoError(t, err)
	<-out

	// Seed value: no notification.
	statusCh <- &entity.RealtimeStatus{Online: boolPtr(false)}
	<-out

	// Transition offline -> online: exactly one notification.
	statusCh <- &entity.RealtimeStatus{Online: boolPtr(true)}
	<-out

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("expected a connectivity notification")
	}
}

func TestStatusService_Dispense_Success(t *testing.T) {
	fx := createTestStatusService(t)
	ctx := context.Background()

	fx.deviceRepo.EXPECT().FindByID(ctx, "ESP-PET-0001").Return(linkedDevice(), nil)
	fx.statusRepo.EXPECT().
		PushCommand(ctx, "ESP-PET-0001", mock.AnythingOfType("entity.Command")).
		Run(func(_ context.Context, _ string, cmd entity.Command) {
			assert.Equal(t, entity.CommandDispense, cmd.Type)
			assert.Equal(t, 30, cmd.Grams)
		}).
		Return(nil)
	fx.publisher.EXPECT().
		PublishFeederEvent(ctx, mock.AnythingOfType("*service.FeederEvent")).
		Run(func(_ context.Context, event *service.FeederEvent) {
			assert.Equal(t, "ESP-PET-0001", event.DeviceID)
			assert.Equal(t, "U1", event.UserID)
			assert.Equal(t, float64(30), event.Grams)
			assert.Equal(t, string(entity.DispenseManual), event.Kind)
		}).
		Return(nil)

	err := fx.service.Dispense(ctx, testActor(), "ESP-PET-0001", 30)
	require.NoError(t, err)
}

func TestStatusService_Dispense_InvalidPortion(t *testing.T) {
	fx := createTestStatusService(t)
	ctx := context.Background()

	for _, grams := range []int{0, -5, 501} {
		err := fx.service.Dispense(ctx, testActor(), "ESP-PET-0001", grams)
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.ErrorCode())
	}
}
