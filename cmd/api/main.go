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

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/worker"
)

const (
	eventQueueSize  = 256
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	catalogRepo := repository.NewCatalogRepository(pool)
	jobProblemRepo := repository.NewJobProblemRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	specialistRepo := repository.NewSpecialistRepository(pool)
	officeRepo := repository.NewOfficeRepository(pool)
	workerRepo := repository.NewWorkerRepository(pool)

	statuses, err := service.ResolveStatuses(ctx, catalogRepo)
	if err != nil {
		logger.Fatal("failed to resolve canonical statuses", zap.Error(err))
	}
	location, err := cfg.Report.Location()
	if err != nil {
		logger.Fatal("invalid report time zone", zap.Error(err))
	}

	notifier := worker.NewNotificationWorker(events.NewRedisPublisher(redis.Client, cfg.Redis.EventsChannel), logger, eventQueueSize)
	notifier.Start(ctx)

	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, notifier, logger).RegisterHandlers()

	catalogService := service.NewCatalogService(service.CatalogDependencies{CatalogRepo: catalogRepo, Statuses: statuses})
	jobProblemService := service.NewJobProblemService(service.JobProblemDependencies{JobProblemRepo: jobProblemRepo, Dispatcher: dispatcher})
	requestService, err := service.NewRequestService(service.RequestDependencies{
		RequestRepo:    requestRepo,
		SpecialistRepo: specialistRepo,
		Statuses:       statuses,
		Dispatcher:     dispatcher,
	})
	if err != nil {
		logger.Fatal("failed to init request service", zap.Error(err))
	}
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{RequestRepo: requestRepo, Dispatcher: dispatcher})
	specialistService := service.NewSpecialistService(cfg.Auth, service.SpecialistDependencies{SpecialistRepo: specialistRepo})
	directoryService := service.NewDirectoryService(service.DirectoryDependencies{OfficeRepo: officeRepo, WorkerRepo: workerRepo})
	reportService, err := service.NewReportService(service.ReportDependencies{
		RequestRepo: requestRepo,
		Statuses:    statuses,
		Location:    location,
	})
	if err != nil {
		logger.Fatal("failed to init report service", zap.Error(err))
	}

	var authMiddleware *auth.AuthMiddleware
	if cfg.Auth.JWTSecret != "" {
		authMiddleware = auth.NewAuthMiddleware(auth.NewTokenManager(cfg.Auth.JWTSecret))
	} else {
		logger.Warn("AUTH_JWT_SECRET not set, /api is unauthenticated")
	}

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Catalog:        handlers.NewCatalogHandler(catalogService, specialistService),
		JobProblems:    handlers.NewJobProblemsHandler(jobProblemService),
		Requests:       handlers.NewRequestsHandler(requestService, assignmentService),
		Specialists:    handlers.NewSpecialistsHandler(specialistService, requestService),
		Directory:      handlers.NewDirectoryHandler(directoryService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	cancel()
	notifier.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
