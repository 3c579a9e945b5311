package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/sheikhstore/storefront/internal/application/cart"
	catalogapp "github.com/sheikhstore/storefront/internal/application/catalog"
	orderapp "github.com/sheikhstore/storefront/internal/application/order"
	cartdomain "github.com/sheikhstore/storefront/internal/domain/cart"
	"github.com/sheikhstore/storefront/internal/infrastructure/backend"
	"github.com/sheikhstore/storefront/internal/infrastructure/cartstore"
	"github.com/sheikhstore/storefront/internal/infrastructure/config"
	"github.com/sheikhstore/storefront/internal/infrastructure/i18n"
	"github.com/sheikhstore/storefront/internal/infrastructure/logger"
	"github.com/sheikhstore/storefront/internal/interfaces/http/handler"
	"github.com/sheikhstore/storefront/internal/interfaces/http/middleware"
	"github.com/sheikhstore/storefront/internal/interfaces/http/router"
)

// profileStore is the durable local storage of one shop profile: the
// cart snapshot plus the language preference.
type profileStore interface {
	cartdomain.Store
	i18n.PreferenceStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting storefront",
		zap.String("env", cfg.App.Env),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("storage", cfg.Storage.Driver))

	store, err := openStore(cfg.Storage)
	if err != nil {
		log.Fatal("failed to open profile storage", zap.Error(err))
	}

	ctx := context.Background()

	langs := i18n.NewManager(ctx, store, cfg.I18n.DefaultLanguage, log)

	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	}, log)
	if err != nil {
		log.Fatal("failed to build backend client", zap.Error(err))
	}

	carts := cartapp.NewService(ctx, store, cartapp.LogNotifier{Logger: log}, log)
	catalog := catalogapp.NewService(client, cfg.Catalog.CacheTTL, log)
	orders := orderapp.NewService(client, carts, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithOrigins(cfg.HTTP.CORSAllowOrigins),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.NewRouter(engine).
		Register(handler.NewCatalogHandler(catalog, langs)).
		Register(handler.NewCartHandler(carts, catalog, langs)).
		Register(handler.NewOrderHandler(orders, catalog, langs)).
		Register(handler.NewLanguageHandler(langs)).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("storefront stopped")
}

func openStore(cfg config.StorageConfig) (profileStore, error) {
	if cfg.Driver == "sqlite" {
		return cartstore.NewSqliteStore(cfg.Path)
	}
	return cartstore.NewFileStore(cfg.Path)
}
