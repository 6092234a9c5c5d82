package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/deskhub/helpdesk-service/internal/api/http"
	"github.com/deskhub/helpdesk-service/internal/api/http/handlers"
	"github.com/deskhub/helpdesk-service/internal/auth"
	"github.com/deskhub/helpdesk-service/internal/config"
	"github.com/deskhub/helpdesk-service/internal/events"
	"github.com/deskhub/helpdesk-service/internal/observability"
	"github.com/deskhub/helpdesk-service/internal/persistence"
	"github.com/deskhub/helpdesk-service/internal/policy"
	"github.com/deskhub/helpdesk-service/internal/repository"
	"github.com/deskhub/helpdesk-service/internal/service"
	"github.com/deskhub/helpdesk-service/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	access := policy.NewAccessPolicy()
	revoked := auth.NewRevocationStore(redis.Client)

	authService := service.NewAuthService(cfg.Auth, userRepo, revoked)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Access:     access,
		Dispatcher: dispatcher,
	})
	commentService := service.NewCommentService(service.CommentDependencies{
		CommentRepo: commentRepo,
		TicketRepo:  ticketRepo,
		Access:      access,
		Dispatcher:  dispatcher,
	})
	productService := service.NewProductService(productRepo)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	dashboardService := service.NewDashboardService(dashboardRepo)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), revoked, userRepo)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Comments:       handlers.NewCommentsHandler(commentService),
		Products:       handlers.NewProductsHandler(productService),
		Users:          handlers.NewUsersHandler(userService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
