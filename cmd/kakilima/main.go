package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"kakilima/config"
	"kakilima/internal/delivery"
	"kakilima/internal/delivery/http"
	"kakilima/internal/delivery/http/middleware"
	"kakilima/internal/delivery/http/router/handler"
	"kakilima/internal/delivery/ws"
	"kakilima/internal/domain/service"
	"kakilima/internal/infra/auth"
	logs "kakilima/internal/infra/log"
	"kakilima/internal/infra/notification"
	"kakilima/internal/infra/persistence/postgres"
	"kakilima/internal/infra/pubsub"
	"kakilima/internal/infra/qrcode"
	"kakilima/internal/registry"
	"kakilima/internal/usecase/impl"

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
		postgres.New,
		newRegistry,
		pubsub.NewEventPublisher,
	)
}

// newRegistry builds the live vendor registry and runs its staleness sweep
// for the lifetime of the process.
func newRegistry(lc fx.Lifecycle, cfg *config.Config) *registry.Registry {
	staleAfter := time.Duration(0)
	sweepInterval := time.Duration(0)
	if cfg.Registry != nil {
		staleAfter = cfg.Registry.StaleAfter
		sweepInterval = cfg.Registry.SweepInterval
	}

	reg := registry.New(staleAfter)

	if sweepInterval > 0 {
		sweepCtx, cancel := context.WithCancel(context.Background())
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go reg.Run(sweepCtx, sweepInterval)

				return nil
			},
			OnStop: func(context.Context) error {
				cancel()

				return nil
			},
		})
	}

	return reg
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewVendorRepository,
			postgres.NewMenuRepository,
			postgres.NewOrderRepository,
			postgres.NewReviewRepository,
			postgres.NewFavoriteRepository,
			postgres.NewDeviceRepository,
			postgres.NewLocationHistoryRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newFirebaseService,
			newQRCodeService,
		),
	)
}

// newFirebaseService creates a Firebase service with dependency injection
func newFirebaseService(ctx context.Context, cfg *config.Config) (service.PushService, error) {
	if cfg.Firebase == nil {
		return nil, nil // Firebase is optional
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
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
			impl.NewUserService,
			impl.NewVendorService,
			impl.NewLocationService,
			impl.NewOrderService,
			impl.NewReviewService,
			impl.NewFavoriteService,
			impl.NewDeviceService,
			impl.NewAnalyticsService,
			impl.NewAdminService,
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
			handler.NewUserHandler,
			handler.NewVendorHandler,
			handler.NewOrderHandler,
			handler.NewReviewHandler,
			handler.NewDeviceHandler,
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
			fx.Annotate(
				ws.NewServer,
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
