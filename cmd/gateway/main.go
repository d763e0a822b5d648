package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/storefront-gateway/internal/api/http"
	"github.com/spec-kit/storefront-gateway/internal/api/http/handlers"
	"github.com/spec-kit/storefront-gateway/internal/auth"
	"github.com/spec-kit/storefront-gateway/internal/backend"
	"github.com/spec-kit/storefront-gateway/internal/config"
	"github.com/spec-kit/storefront-gateway/internal/events"
	"github.com/spec-kit/storefront-gateway/internal/observability"
	"github.com/spec-kit/storefront-gateway/internal/service"
	"github.com/spec-kit/storefront-gateway/internal/session"
	"github.com/spec-kit/storefront-gateway/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storage := session.NewRedisStorage(cfg.Redis, cfg.Session, logger)
	defer storage.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	sessions := session.NewStore(storage, logger)
	sessions.OnExternalSync = func(sid string) {
		_ = dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSessionSynced,
			SessionID: sid,
			Timestamp: time.Now(),
		})
	}
	if err := sessions.Start(ctx); err != nil {
		logger.Fatal("failed to start session watch", zap.Error(err))
	}

	identityClient := backend.NewIdentityClient(cfg.Backends.IdentityURL, metrics)
	catalogClient := backend.NewCatalogClient(cfg.Backends.CatalogURL, metrics)
	stockClient := backend.NewStockClient(cfg.Backends.StockURL, metrics)
	cartClient := backend.NewCartClient(cfg.Backends.CartURL, metrics)
	paymentClient := backend.NewPaymentClient(cfg.Backends.PaymentURL, metrics)

	accountService := service.NewAccountService(service.AccountDependencies{
		Identity: identityClient,
		Sessions: sessions,
		Events:   dispatcher,
	}, logger)
	storefrontService := service.NewStorefrontService(catalogClient)
	checkoutService := service.NewCheckoutService(cartClient, paymentClient, dispatcher)
	stockAdminService := service.NewStockAdminService(stockClient, dispatcher)

	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	sessionMiddleware := auth.NewSessionMiddleware(sessions, cfg.Session.CookieName, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(storage),
		Auth:       handlers.NewAuthHandler(accountService),
		Storefront: handlers.NewStorefrontHandler(storefrontService),
		Cart:       handlers.NewCartHandler(checkoutService),
		Orders:     handlers.NewOrdersHandler(checkoutService),
		StockAdmin: handlers.NewStockAdminHandler(stockAdminService),
		Session:    sessionMiddleware,
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
