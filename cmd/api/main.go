package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/menu-service/internal/api/http"
	"github.com/spec-kit/menu-service/internal/api/http/handlers"
	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/config"
	"github.com/spec-kit/menu-service/internal/events"
	"github.com/spec-kit/menu-service/internal/mailer"
	"github.com/spec-kit/menu-service/internal/observability"
	"github.com/spec-kit/menu-service/internal/persistence"
	"github.com/spec-kit/menu-service/internal/repository"
	"github.com/spec-kit/menu-service/internal/service"
	"github.com/spec-kit/menu-service/internal/worker"
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
	tokenRepo := repository.NewTokenRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	productRepo := repository.NewProductRepository(pool)

	tokenMgr := auth.NewTokenManager(cfg.Auth.JWTSecret)
	dispatcher := events.NewInMemoryDispatcher()

	creds := service.NewCredentialService(userRepo, cfg.Auth.BcryptCost)
	ledger := service.NewTokenLedger(tokenRepo, tokenMgr, cfg.Auth.CodeWindow())
	sessions := service.NewSessionManager(sessionRepo, userRepo, tokenMgr, cfg.Auth.SessionTTL())
	authService := service.NewAuthService(cfg.Auth, creds, ledger, sessions, dispatcher)

	menuCache := service.NewMenuCache(redis.Client, logger)
	categoryService := service.NewCategoryService(categoryRepo, menuCache)
	productService := service.NewProductService(productRepo, menuCache)

	sender := mailer.NewSender(cfg.Mail, logger)
	notifications := service.NewNotificationService(dispatcher, sender, logger, cfg.App)
	worker.StartNotificationWorker(notifications)

	authMiddleware := auth.NewMiddleware(tokenMgr, userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(creds),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Products:       handlers.NewProductsHandler(productService),
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
