package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"petfeeder/internal/domain/entity"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/domain/repository"
	"petfeeder/internal/domain/service"
	"petfeeder/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Calibration reference weight bounds in grams.
const (
	minCalibrationGrams = 1
	maxCalibrationGrams = 500
)

type pairingService struct {
	txManager     repository.TransactionManager
	deviceRepo    repository.DeviceRepository
	accountRepo   repository.AccountRepository
	statusRepo    repository.StatusRepository
	auditRepo     repository.AuditRepository
	qrcodeService service.QRCodeService
	logger        *slog.Logger
}

// PairingServiceParams holds dependencies for PairingService, injected by Fx.
type PairingServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	DeviceRepo    repository.DeviceRepository
	AccountRepo   repository.AccountRepository
	StatusRepo    repository.StatusRepository
	AuditRepo     repository.AuditRepository
	QRCodeService service.QRCodeService
	Logger        *slog.Logger
}

// NewPairingService creates a new pairing service instance
func NewPairingService(params PairingServiceParams) usecase.PairingUsecase {
	return &pairingService{
		txManager:     params.TxManager,
		deviceRepo:    params.DeviceRepo,
		accountRepo:   params.AccountRepo,
		statusRepo:    params.StatusRepo,
		auditRepo:     params.AuditRepo,
		qrcodeService: params.QRCodeService,
		logger:        params.Logger,
	}
}

// Pair links the device to the actor inside one transaction: both the device
// record and the account record change together or not at all. Pairing
// conflicts are never retried; the caller gets a distinct error instead.
func (s *pairingService) Pair(ctx context.Context, actor *entity.UserAccount, deviceID string) (*entity.Device, error) {
	if actor == nil {
		return nil, domainerrors.ErrSessionRequired
	}

	var paired *entity.Device
	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		device, err := factory.DeviceRepo().FindByID(ctx, deviceID)
		if err != nil {
			if errors.Is(err, repository.ErrDeviceNotFound) {
				return domainerrors.ErrDeviceNotFound
			}

			return err
		}
		if !device.Unlinked() {
			return domainerrors.ErrDeviceAlreadyLinked
		}

		account, err := factory.AccountRepo().FindByUID(ctx, actor.UID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return err
		}

		device.State = entity.DeviceStateLinked
		device.LinkedUserID = account.UID
		device.OwnerEmail = account.Email
		account.DeviceID = device.ID

		if err := factory.DeviceRepo().Update(ctx, device); err != nil {
			return err
		}
		if err := factory.AccountRepo().Update(ctx, account); err != nil {
			return err
		}
		paired = device

		return nil
	})
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, domainerrors.NewBackendUnavailableError(err, "pairing transaction failed")
	}

	// The realtime fragment lives outside the transaction. Its init is
	// best-effort: a failure leaves the pairing intact but is recorded so an
	// admin can see the device came up without one.
	s.initStatusFragment(ctx, paired)

	s.audit(ctx, entity.NewAuditLogEntry(entity.ActionDeviceLinked, entity.CategoryDevice,
		entity.SeverityInfo, actor.UID,
		fmt.Sprintf("Dispositivo %s vinculado a la cuenta", deviceID)))

	s.logger.Info("device paired",
		slog.String("device_id", deviceID),
		slog.String("uid", actor.UID),
	)

	return paired, nil
}

func (s *pairingService) initStatusFragment(ctx context.Context, device *entity.Device) {
	online := false
	status := &entity.RealtimeStatus{
		Online:     &online,
		OwnerID:    device.LinkedUserID,
		OwnerEmail: device.OwnerEmail,
	}

	if err := s.statusRepo.Init(ctx, device.ID, status); err != nil {
		s.logger.Error("realtime status init failed after pairing",
			slog.String("device_id", device.ID),
			slog.Any("error", err),
		)
		s.audit(ctx, entity.NewAuditLogEntry(entity.ActionStatusInitFailed, entity.CategoryDevice,
			entity.SeverityWarning, device.ID,
			"No se pudo inicializar el estado en tiempo real tras la vinculación"))
	}
}

// Unlink detaches the device with three independent writes: the device
// record, the account record and the realtime disable command. A partial
// failure is logged and the remaining writes still run; the device write is
// the only one treated as fatal.
func (s *pairingService) Unlink(ctx context.Context, actor *entity.UserAccount, deviceID string) error {
	device, err := s.deviceRepo.FindByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return domainerrors.ErrDeviceNotFound
		}

		return domainerrors.NewBackendUnavailableError(err, "failed to load device")
	}
	if err := authorizeDevice(actor, device); err != nil {
		return err
	}

	ownerUID := device.LinkedUserID

	device.State = entity.DeviceStateInactive
	device.LinkedUserID = entity.NullOwnerSentinel
	device.OwnerEmail = ""
	if err := s.deviceRepo.Update(ctx, device); err != nil {
		return domainerrors.NewBackendUnavailableError(err, "failed to release device")
	}

	if account, err := s.accountRepo.FindByUID(ctx, ownerUID); err != nil {
		s.logger.Warn("unlink: owner account lookup failed",
			slog.String("device_id", deviceID),
			slog.String("uid", ownerUID),
			slog.Any("error", err),
		)
	} else {
		account.DeviceID = ""
		if err := s.accountRepo.Update(ctx, account); err != nil {
			s.logger.Warn("unlink: account update failed",
				slog.String("device_id", deviceID),
				slog.String("uid", ownerUID),
				slog.Any("error", err),
			)
		}
	}

	cmd := entity.Command{Type: entity.CommandDisable, IssuedAt: time.Now().UTC()}
	if err := s.statusRepo.PushCommand(ctx, deviceID, cmd); err != nil {
		s.logger.Warn("unlink: disable command push failed",
			slog.String("device_id", deviceID),
			slog.Any("error", err),
		)
	}
	fields := map[string]any{
		"owner_id":    entity.NullOwnerSentinel,
		"owner_email": "",
	}
	if err := s.statusRepo.Update(ctx, deviceID, fields); err != nil {
		s.logger.Warn("unlink: realtime owner reset failed",
			slog.String("device_id", deviceID),
			slog.Any("error", err),
		)
	}

	s.audit(ctx, entity.NewAuditLogEntry(entity.ActionDeviceUnlinked, entity.CategoryDevice,
		entity.SeverityInfo, ownerUID,
		fmt.Sprintf("Dispositivo %s desvinculado de la cuenta", deviceID)))

	s.logger.Info("device unlinked",
		slog.String("device_id", deviceID),
		slog.String("uid", ownerUID),
	)

	return nil
}

// Provision registers a freshly manufactured device (admin only)
func (s *pairingService) Provision(ctx context.Context, actor *entity.UserAccount, input *usecase.ProvisionDeviceInput) (*entity.Device, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	device := &entity.Device{
		ID:           input.DeviceID,
		State:        entity.DeviceStateFactory,
		LinkedUserID: entity.NullOwnerSentinel,
		Firmware:     input.Firmware,
		LastStatus:   entity.ConnectionOffline,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.deviceRepo.Create(ctx, device); err != nil {
		if errors.Is(err, repository.ErrDuplicateDevice) {
			return nil, domainerrors.ErrDeviceAlreadyExists
		}

		return nil, domainerrors.NewBackendUnavailableError(err, "failed to provision device")
	}

	s.audit(ctx, entity.NewAuditLogEntry(entity.ActionDeviceProvisioned, entity.CategoryDevice,
		entity.SeverityInfo, device.ID, "Dispositivo registrado de fábrica"))

	s.logger.Info("device provisioned",
		slog.String("device_id", device.ID),
		slog.String("admin_uid", actor.UID),
	)

	return device, nil
}

// Calibrate pushes a calibration command with the given reference weight
func (s *pairingService) Calibrate(ctx context.Context, actor *entity.UserAccount, deviceID string, grams int) error {
	if grams < minCalibrationGrams || grams > maxCalibrationGrams {
		return domainerrors.ErrCalibrationOutOfRange
	}

	device, err := s.deviceRepo.FindByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return domainerrors.ErrDeviceNotFound
		}

		return domainerrors.NewBackendUnavailableError(err, "failed to load device")
	}
	if err := authorizeDevice(actor, device); err != nil {
		return err
	}

	cmd := entity.Command{
		Type:     entity.CommandCalibrate,
		Grams:    grams,
		IssuedAt: time.Now().UTC(),
	}
	if err := s.statusRepo.PushCommand(ctx, deviceID, cmd); err != nil {
		return domainerrors.NewBackendUnavailableError(err, "failed to queue calibration")
	}

	s.audit(ctx, entity.NewAuditLogEntry(entity.ActionDeviceCalibrated, entity.CategoryDevice,
		entity.SeverityInfo, deviceID,
		fmt.Sprintf("Calibración solicitada con peso de referencia de %d g", grams)))

	return nil
}

// PairingCode renders the QR code a user scans to pair the device
func (s *pairingService) PairingCode(ctx context.Context, deviceID string) ([]byte, error) {
	if _, err := s.deviceRepo.FindByID(ctx, deviceID); err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return nil, domainerrors.ErrDeviceNotFound
		}

		return nil, domainerrors.NewBackendUnavailableError(err, "failed to load device")
	}

	qrCode, err := s.qrcodeService.GeneratePairingQR(deviceID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate pairing QR")
	}

	return qrCode, nil
}

// ListDevices returns every registered device (admin only)
func (s *pairingService) ListDevices(ctx context.Context, actor *entity.UserAccount) ([]*entity.Device, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	devices, err := s.deviceRepo.List(ctx, 0)
	if err != nil {
		return nil, domainerrors.NewBackendUnavailableError(err, "failed to list devices")
	}

	return devices, nil
}

// audit appends an entry, logging instead of failing the calling operation.
func (s *pairingService) audit(ctx context.Context, entry *entity.AuditLogEntry) {
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to append audit entry",
			slog.String("action", entry.Action),
			slog.String("subject_id", entry.SubjectID),
			slog.Any("error", err),
		)
	}
}
