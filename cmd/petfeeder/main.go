package main

import (
	"context"
	"log/slog"
	"os"

	"petfeeder/config"
	"petfeeder/internal/delivery"
	"petfeeder/internal/delivery/http"
	"petfeeder/internal/delivery/http/middleware"
	"petfeeder/internal/delivery/http/router/handler"
	"petfeeder/internal/domain/service"
	"petfeeder/internal/infra/auth"
	"petfeeder/internal/infra/firebase"
	logs "petfeeder/internal/infra/log"
	"petfeeder/internal/infra/notification"
	"petfeeder/internal/infra/persistence/firestore"
	"petfeeder/internal/infra/pubsub"
	"petfeeder/internal/infra/qrcode"
	"petfeeder/internal/infra/realtime"
	"petfeeder/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		firebase.NewApp,
		firebase.NewFirestore,
		firebase.NewDatabase,
		firebase.NewAuth,
		firebase.NewMessaging,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			firestore.NewAccountRepository,
			firestore.NewDeviceRepository,
			firestore.NewAuditRepository,
			firestore.NewConsumptionRepository,
			firestore.NewTransactionManager,
			realtime.NewStatusRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		pubsub.Module,
		fx.Provide(
			auth.NewTokenVerifier,
			notification.NewFirebaseService,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewAccountService,
			impl.NewPairingService,
			impl.NewStatusService,
			impl.NewScheduleService,
			impl.NewAuditService,
			impl.NewConsumptionService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSessionHandler,
			handler.NewAccountHandler,
			handler.NewDeviceHandler,
			handler.NewStatusHandler,
			handler.NewScheduleHandler,
			handler.NewConsumptionHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
