package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/mohamedazab224/uberfix-maintenance-service/internal/api/http"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/api/http/handlers"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/config"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/events"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/notify"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/observability"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/persistence"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/repository"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/service"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	requestRepo := repository.NewRequestRepository(pool)
	violationRepo := repository.NewViolationRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: requestRepo,
		Dispatcher:  dispatcher,
		SLAConfig:   cfg.SLA,
	})
	slaService := service.NewSLAService(service.SLADependencies{
		RequestRepo:   requestRepo,
		ViolationRepo: violationRepo,
		Dispatcher:    dispatcher,
		Logger:        logger,
		Metrics:       metrics,
	})

	limiter := notify.NewRateLimiter(redis.Client, cfg.Notification.RateLimitPerHour, time.Hour)
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		Dispatcher: dispatcher,
		Senders: []notify.Sender{
			notify.NewEmailSender(logger, cfg.Notification),
			notify.NewSMSSender(logger, cfg.Notification),
		},
		RateLimiter:      limiter,
		NotificationRepo: notificationRepo,
		Logger:           logger,
		Metrics:          metrics,
	})
	worker.StartNotificationWorker(notificationService)

	sweeper := worker.NewSweepWorker(slaService, cfg.SLA.SweepInterval(), logger)
	go sweeper.Run(ctx)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	requestsHandler := handlers.NewRequestsHandler(requestService)
	slaHandler := handlers.NewSLAHandler(slaService, logger)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   healthHandler,
		Requests: requestsHandler,
		SLA:      slaHandler,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
