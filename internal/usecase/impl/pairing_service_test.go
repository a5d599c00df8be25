package impl

import (
	"context"
	"log/slog"
	"testing"

	"petfeeder/internal/domain/entity"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/domain/repository"
	mockRepo "petfeeder/internal/mocks/repository"
	mockSvc "petfeeder/internal/mocks/service"
	"petfeeder/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// pairingServiceFixtures holds all test dependencies for pairing service tests.
type pairingServiceFixtures struct {
	service     usecase.PairingUsecase
	txManager   *mockRepo.MockTransactionManager
	factory     *mockRepo.MockRepositoryFactory
	deviceRepo  *mockRepo.MockDeviceRepository
	accountRepo *mockRepo.MockAccountRepository
	statusRepo  *mockRepo.MockStatusRepository
	auditRepo   *mockRepo.MockAuditRepository
	qrcode      *mockSvc.MockQRCodeService
}

func createTestPairingService(t *testing.T) pairingServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	statusRepo := mockRepo.NewMockStatusRepository(t)
	auditRepo := mockRepo.NewMockAuditRepository(t)
	qrcode := mockSvc.NewMockQRCodeService(t)

	service := NewPairingService(PairingServiceParams{
		TxManager:     txManager,
		DeviceRepo:    deviceRepo,
		AccountRepo:   accountRepo,
		StatusRepo:    statusRepo,
		AuditRepo:     auditRepo,
		QRCodeService: qrcode,
		Logger:        slog.Default(),
	})

	return pairingServiceFixtures{
		service:     service,
		txManager:   txManager,
		factory:     factory,
		deviceRepo:  deviceRepo,
		accountRepo: accountRepo,
		statusRepo:  statusRepo,
		auditRepo:   auditRepo,
		qrcode:      qrcode,
	}
}

// expectTransaction routes Execute through the factory mock so the callback
// runs against the per-test repository expectations.
func (f pairingServiceFixtures) expectTransaction(ctx context.Context) {
	f.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(f.factory)
		})
}

func testActor() *entity.UserAccount {
	return &entity.UserAccount{
		UID:   "U1",
		Email: "u1@example.com",
		Role:  entity.RoleUser,
	}
}

func TestPairingService_Pair_Success(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()
	actor := testActor()

	device := &entity.Device{
		ID:    "ESP-PET-0001",
		State: entity.DeviceStateAvailable,
	}
	account := &entity.UserAccount{UID: "U1", Email: "u1@example.com", Role: entity.RoleUser}

	fx.expectTransaction(ctx)
	fx.factory.EXPECT().DeviceRepo().Return(fx.deviceRepo)
	fx.factory.EXPECT().AccountRepo().Return(fx.accountRepo)

	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-0001").
		Return(device, nil)
	fx.accountRepo.EXPECT().
		FindByUID(ctx, "U1").
		Return(account, nil)
	fx.deviceRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Device")).
		Return(nil)
	fx.accountRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.UserAccount")).
		Return(nil)

	fx.statusRepo.EXPECT().
		Init(ctx, "ESP-PET-0001", mock.AnythingOfType("*entity.RealtimeStatus")).
		Return(nil)
	fx.auditRepo.EXPECT().
		Append(ctx, mock.AnythingOfType("*entity.AuditLogEntry")).
		Run(func(_ context.Context, entry *entity.AuditLogEntry) {
			assert.Equal(t, entity.ActionDeviceLinked, entry.Action)
			assert.Equal(t, "U1", entry.SubjectID)
			assert.Contains(t, entry.Detail, "ESP-PET-0001")
		}).
		Return(nil)

	paired, err := fx.service.Pair(ctx, actor, "ESP-PET-0001")
	require.NoError(t, err)
	assert.Equal(t, entity.DeviceStateLinked, paired.State)
	assert.Equal(t, "U1", paired.LinkedUserID)
	assert.Equal(t, "u1@example.com", paired.OwnerEmail)
	assert.Equal(t, "ESP-PET-0001", account.DeviceID)
}

func TestPairingService_Pair_DeviceNotFound(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()

	fx.expectTransaction(ctx)
	fx.factory.EXPECT().DeviceRepo().Return(fx.deviceRepo)

	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-9999").
		Return(nil, repository.ErrDeviceNotFound)

	_, err := fx.service.Pair(ctx, testActor(), "ESP-PET-9999")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDeviceNotFound)
}

func TestPairingService_Pair_AlreadyLinked(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()

	linked := &entity.Device{
		ID:           "ESP-PET-0001",
		State:        entity.DeviceStateLinked,
		LinkedUserID: "U2",
	}

	fx.expectTransaction(ctx)
	fx.factory.EXPECT().DeviceRepo().Return(fx.deviceRepo)

	fx.deviceRepo.EXPECT().
		FindByID(ctx, "ESP-PET-0001").
		Return(linked, nil)

	_, err := fx.service.Pair(ctx, testActor(), "ESP-PET-0001")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDeviceAlreadyLinked)
}

func TestPairingService_Pair_NullOwnerSentinelIsUnlinked(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()

	// Devices written by older firmware carry "null" instead of an empty
	// owner. They must still be pairable.
	device := &entity.Device{
		ID:           "ESP-PET-0001",
		State:        entity.DeviceStateAvailable,
		LinkedUserID: entity.NullOwnerSentinel,
	}
	account := &entity.UserAccount{UID: "U1", Email: "u1@example.com"}

	fx.expectTransaction(ctx)
	fx.factory.EXPECT().DeviceRepo().Return(fx.deviceRepo)
	fx.factory.EXPECT().AccountRepo().Return(fx.accountRepo)

	fx.deviceRepo.EXPECT().FindByID(ctx, "ESP-PET-0001").Return(device, nil)
	fx.accountRepo.EXPECT().FindByUID(ctx, "U1").Return(account, nil)
	fx.deviceRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Device")).Return(nil)
	fx.accountRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.UserAccount")).Return(nil)
	fx.statusRepo.EXPECT().Init(ctx, "ESP-PET-0001", mock.Anything).Return(nil)
	fx.auditRepo.EXPECT().Append(ctx, mock.Anything).Return(nil)

	paired, err := fx.service.Pair(ctx, testActor(), "ESP-PET-0001")
	require.NoError(t, err)
	assert.Equal(t, "U1", paired.LinkedUserID)
}

func TestPairingService_Pair_StatusInitFailureIsNotFatal(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()

	device := &entity.Device{ID: "ESP-PET-0001", State: entity.DeviceStateAvailable}
	account := &entity.UserAccount{UID: "U1", Email: "u1@example.com"}

	fx.expectTransaction(ctx)
	fx.factory.EXPECT().DeviceRepo().Return(fx.deviceRepo)
	fx.factory.EXPECT().AccountRepo().Return(fx.accountRepo)

	fx.deviceRepo.EXPECT().FindByID(ctx, "ESP-PET-0001").Return(device, nil)
	fx.accountRepo.EXPECT().FindByUID(ctx, "U1").Return(account, nil)
	fx.deviceRepo.EXPECT().Update(ctx, mock.Anything).Return(nil)
	fx.accountRepo.EXPECT().Update(ctx, mock.Anything).Return(nil)

	fx.statusRepo.EXPECT().
		Init(ctx, "ESP-PET-0001", mock.Anything).
		Return(errors.New("realtime database unreachable"))

	var actions []string
	fx.auditRepo.EXPECT().
		Append(ctx, mock.AnythingOfType("*entity.AuditLogEntry")).
		Run(func(_ context.Context, entry *entity.AuditLogEntry) {
			actions = append(actions, entry.Action)
		}).
		Return(nil)

	paired, err := fx.service.Pair(ctx, testActor(), "ESP-PET-0001")
	require.NoError(t, err)
	assert.Equal(t, entity.DeviceStateLinked, paired.State)
	assert.Contains(t, actions, entity.ActionStatusInitFailed)
	assert.Contains(t, actions, entity.ActionDeviceLinked)
}

func TestPairingService_Unlink_Success(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()
	actor := testActor()

	device := &entity.Device{
		ID:           "ESP-PET-0001",
		State:        entity.DeviceStateLinked,
		LinkedUserID: "U1",
		OwnerEmail:   "u1@example.com",
	}
	account := &entity.UserAccount{UID: "U1", DeviceID: "ESP-PET-0001"}

	fx.deviceRepo.EXPECT().FindByID(ctx, "ESP-PET-0001").Return(device, nil)
	fx.deviceRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Device")).
		Run(func(_ context.Context, updated *entity.Device) {
			assert.Equal(t, entity.DeviceStateInactive, updated.State)
			assert.Equal(t, entity.NullOwnerSentinel, updated.LinkedUserID)
			assert.Empty(t, updated.OwnerEmail)
		}).
		Return(nil)

	fx.accountRepo.EXPECT().FindByUID(ctx, "U1").Return(account, nil)
	fx.accountRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.UserAccount")).
		Run(func(_ context.Context, updated *entity.UserAccount) {
			assert.Empty(t, updated.DeviceID)
		}).
		Return(nil)

	fx.statusRepo.EXPECT().
		PushCommand(ctx, "ESP-PET-0001", mock.AnythingOfType("entity.Command")).
		Run(func(_ context.Context, _ string, cmd entity.Command) {
			assert.Equal(t, entity.CommandDisable, cmd.Type)
		}).
		Return(nil)
	fx.statusRepo.EXPECT().
		Update(ctx, "ESP-PET-0001", mock.AnythingOfType("map[string]interface {}")).
		Return(nil)

	fx.auditRepo.EXPECT().
		Append(ctx, mock.AnythingOfType("*entity.AuditLogEntry")).
		Run(func(_ context.Context, entry *entity.AuditLogEntry) {
			assert.Equal(t, entity.ActionDeviceUnlinked, entry.Action)
			assert.Equal(t, "U1", entry.SubjectID)
			assert.Contains(t, entry.Detail, "ESP-PET-0001")
		}).
		Return(nil)

	err := fx.service.Unlink(ctx, actor, "ESP-PET-0001")
	require.NoError(t, err)
}

func TestPairingService_Unlink_SecondaryFailuresAreNotFatal(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()
	actor := testActor()

	device := &entity.Device{
		ID:           "ESP-PET-0001",
		State:        entity.DeviceStateLinked,
		LinkedUserID: "U1",
	}

	fx.deviceRepo.EXPECT().FindByID(ctx, "ESP-PET-0001").Return(device, nil)
	fx.deviceRepo.EXPECT().Update(ctx, mock.Anything).Return(nil)

	// Account and realtime writes fail; the unlink still succeeds.
	fx.accountRepo.EXPECT().
		FindByUID(ctx, "U1").
		Return(nil, errors.New("firestore unavailable"))
	fx.statusRepo.EXPECT().
		PushCommand(ctx, "ESP-PET-0001", mock.Anything).
		Return(errors.New("realtime database unreachable"))
	fx.statusRepo.EXPECT().
		Update(ctx, "ESP-PET-0001", mock.Anything).
		Return(errors.New("realtime database unreachable"))

	fx.auditRepo.EXPECT().Append(ctx, mock.Anything).Return(nil)

	err := fx.service.Unlink(ctx, actor, "ESP-PET-0001")
	require.NoError(t, err)
}

func TestPairingService_Unlink_NotOwner(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()

	device := &entity.Device{
		ID:           "ESP-PET-0001",
		State:        entity.DeviceStateLinked,
		LinkedUserID: "U2",
	}

	fx.deviceRepo.EXPECT().FindByID(ctx, "ESP-PET-0001").Return(device, nil)

	err := fx.service.Unlink(ctx, testActor(), "ESP-PET-0001")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDeviceNotOwned)
}

func TestPairingService_Provision_RequiresAdmin(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()

	input := &usecase.ProvisionDeviceInput{DeviceID: "ESP-PET-0002"}

	_, err := fx.service.Provision(ctx, testActor(), input)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestPairingService_Provision_Success(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()
	admin := &entity.UserAccount{UID: "A1", Role: entity.RoleAdmin}

	fx.deviceRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Device")).
		Run(func(_ context.Context, device *entity.Device) {
			assert.Equal(t, entity.DeviceStateFactory, device.State)
			assert.Equal(t, entity.NullOwnerSentinel, device.LinkedUserID)
			assert.Zero(t, device.FoodLevel)
		}).
		Return(nil)
	fx.auditRepo.EXPECT().Append(ctx, mock.Anything).Return(nil)

	device, err := fx.service.Provision(ctx, admin, &usecase.ProvisionDeviceInput{
		DeviceID: "ESP-PET-0002",
		Firmware: "1.4.0",
	})
	require.NoError(t, err)
	assert.Equal(t, "ESP-PET-0002", device.ID)
	assert.Equal(t, "1.4.0", device.Firmware)
}

func TestPairingService_Provision_Duplicate(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()
	admin := &entity.UserAccount{UID: "A1", Role: entity.RoleAdmin}

	fx.deviceRepo.EXPECT().
		Create(ctx, mock.Anything).
		Return(repository.ErrDuplicateDevice)

	_, err := fx.service.Provision(ctx, admin, &usecase.ProvisionDeviceInput{DeviceID: "ESP-PET-0001"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDeviceAlreadyExists)
}

func TestPairingService_Calibrate_OutOfRange(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()

	for _, grams := range []int{0, -10, 501, 1000} {
		err := fx.service.Calibrate(ctx, testActor(), "ESP-PET-0001", grams)
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrCalibrationOutOfRange)
	}
}

func TestPairingService_Calibrate_Success(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()

	device := &entity.Device{
		ID:           "ESP-PET-0001",
		State:        entity.DeviceStateLinked,
		LinkedUserID: "U1",
	}

	fx.deviceRepo.EXPECT().FindByID(ctx, "ESP-PET-0001").Return(device, nil)
	fx.statusRepo.EXPECT().
		PushCommand(ctx, "ESP-PET-0001", mock.AnythingOfType("entity.Command")).
		Run(func(_ context.Context, _ string, cmd entity.Command) {
			assert.Equal(t, entity.CommandCalibrate, cmd.Type)
			assert.Equal(t, 100, cmd.Grams)
		}).
		Return(nil)
	fx.auditRepo.EXPECT().Append(ctx, mock.Anything).Return(nil)

	err := fx.service.Calibrate(ctx, testActor(), "ESP-PET-0001", 100)
	require.NoError(t, err)
}

func TestPairingService_PairingCode(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()

	device := &entity.Device{ID: "ESP-PET-0001", State: entity.DeviceStateAvailable}

	fx.deviceRepo.EXPECT().FindByID(ctx, "ESP-PET-0001").Return(device, nil)
	fx.qrcode.EXPECT().
		GeneratePairingQR("ESP-PET-0001").
		Return([]byte("png-bytes"), nil)

	png, err := fx.service.PairingCode(ctx, "ESP-PET-0001")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), png)
}

func TestPairingService_ListDevices_RequiresAdmin(t *testing.T) {
	fx := createTestPairingService(t)
	ctx := context.Background()

	_, err := fx.service.ListDevices(ctx, testActor())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
