package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"petfeeder/config"
	"petfeeder/internal/domain/entity"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/domain/repository"
	"petfeeder/internal/domain/service"
	"petfeeder/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Manual dispense portion bounds in grams.
const maxDispenseGrams = 500

type statusService struct {
	deviceRepo   repository.DeviceRepository
	statusRepo   repository.StatusRepository
	accountRepo  repository.AccountRepository
	notification service.NotificationService
	publisher    service.EventPublisher
	config       *config.Config
	logger       *slog.Logger
}

// StatusServiceParams holds dependencies for StatusService, injected by Fx.
type StatusServiceParams struct {
	fx.In

	DeviceRepo   repository.DeviceRepository
	StatusRepo   repository.StatusRepository
	AccountRepo  repository.AccountRepository
	Notification service.NotificationService
	Publisher    service.EventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// NewStatusService creates a new status service instance
func NewStatusService(params StatusServiceParams) usecase.StatusUsecase {
	return &statusService{
		deviceRepo:   params.DeviceRepo,
		statusRepo:   params.StatusRepo,
		accountRepo:  params.AccountRepo,
		notification: params.Notification,
		publisher:    params.Publisher,
		config:       params.Config,
		logger:       params.Logger,
	}
}

// Status returns a one-shot merged view. A missing or unreadable realtime
// fragment degrades to the durable record instead of failing the request.
func (s *statusService) Status(ctx context.Context, actor *entity.UserAccount, deviceID string) (*entity.DeviceStatusView, error) {
	device, err := s.loadAuthorizedDevice(ctx, actor, deviceID)
	if err != nil {
		return nil, err
	}

	status, err := s.statusRepo.Get(ctx, deviceID)
	if err != nil && !errors.Is(err, repository.ErrStatusNotFound) {
		s.logger.Warn("realtime status read failed, serving durable view",
			slog.String("device_id", deviceID),
			slog.Any("error", err),
		)
		status = nil
	}

	return mergeStatus(device, status), nil
}

// Watch streams merged views fed by two independent subscriptions, one per
// store. Each emission recomputes the merge from the latest value of each
// source. Online transitions notify the owner once per edge; the seed value
// never notifies.
func (s *statusService) Watch(ctx context.Context, actor *entity.UserAccount, deviceID string) (<-chan *entity.DeviceStatusView, error) {
	device, err := s.loadAuthorizedDevice(ctx, actor, deviceID)
	if err != nil {
		return nil, err
	}

	deviceCh, err := s.deviceRepo.Watch(ctx, deviceID)
	if err != nil {
		return nil, domainerrors.NewBackendUnavailableError(err, "failed to watch device")
	}
	statusCh, err := s.statusRepo.Watch(ctx, deviceID)
	if err != nil {
		return nil, domainerrors.NewBackendUnavailableError(err, "failed to watch realtime status")
	}

	out := make(chan *entity.DeviceStatusView, 1)

	go func() {
		defer close(out)

		latestDevice := device
		var latestStatus *entity.RealtimeStatus
		var edges edgeNotifier

		emit := func() {
			view := mergeStatus(latestDevice, latestStatus)
			select {
			case out <- view:
			default:
				// Drop the stale pending view and keep the fresh one.
				select {
				case <-out:
				default:
				}
				select {
				case out <- view:
				default:
				}
			}
		}

		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deviceCh:
				if !ok {
					deviceCh = nil
					if statusCh == nil {
						return
					}

					continue
				}
				latestDevice = d
				emit()
			case st, ok := <-statusCh:
				if !ok {
					statusCh = nil
					if deviceCh == nil {
						return
					}

					continue
				}
				latestStatus = st
				if st != nil && st.Online != nil && edges.Observe(*st.Online) {
					s.notifyOnlineEdge(ctx, latestDevice, *st.Online)
				}
				emit()
			}
		}
	}()

	return out, nil
}

func (s *statusService) notifyOnlineEdge(ctx context.Context, device *entity.Device, online bool) {
	if s.config.Notification == nil || !s.config.Notification.Enabled || device == nil || device.Unlinked() {
		return
	}

	owner, err := s.accountRepo.FindByUID(ctx, device.LinkedUserID)
	if err != nil || owner.FCMToken == "" {
		return
	}

	title := "Tu comedero está en línea"
	body := fmt.Sprintf("El dispositivo %s se ha conectado", device.ID)
	if !online {
		title = "Tu comedero se ha desconectado"
		body = fmt.Sprintf("El dispositivo %s ha perdido la conexión", device.ID)
	}

	data := map[string]string{
		"device_id": device.ID,
		"online":    fmt.Sprintf("%t", online),
	}
	if err := s.notification.Send(ctx, owner.FCMToken, title, body, data); err != nil {
		s.logger.Warn("connectivity notification failed",
			slog.String("device_id", device.ID),
			slog.Any("error", err),
		)
	}
}

// Dispense pushes a manual feed command and publishes the matching feeder
// event for the telemetry worker to persist.
func (s *statusService) Dispense(ctx context.Context, actor *entity.UserAccount, deviceID string, grams int) error {
	if grams <= 0 || grams > maxDispenseGrams {
		return domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("la porción debe estar entre 1 y %d gramos", maxDispenseGrams))
	}

	device, err := s.loadAuthorizedDevice(ctx, actor, deviceID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	cmd := entity.Command{
		Type:     entity.CommandDispense,
		Grams:    grams,
		IssuedAt: now,
	}
	if err := s.statusRepo.PushCommand(ctx, deviceID, cmd); err != nil {
		return domainerrors.NewBackendUnavailableError(err, "failed to queue dispense")
	}

	event := &service.FeederEvent{
		RequestID:  uuid.NewString(),
		Action:     entity.ActionDispenseRecorded,
		DeviceID:   device.ID,
		UserID:     actor.UID,
		Grams:      float64(grams),
		Kind:       string(entity.DispenseManual),
		OccurredAt: now,
	}
	if err := s.publisher.PublishFeederEvent(ctx, event); err != nil {
		s.logger.Error("feeder event publish failed",
			slog.String("device_id", deviceID),
			slog.Any("error", err),
		)

		return domainerrors.NewBackendUnavailableError(err, "failed to publish feeder event")
	}

	return nil
}

func (s *statusService) loadAuthorizedDevice(ctx context.Context, actor *entity.UserAccount, deviceID string) (*entity.Device, error) {
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
