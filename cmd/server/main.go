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

	invoiceapp "github.com/kirana/pdf-invoice-api/internal/application/invoice"
	"github.com/kirana/pdf-invoice-api/internal/infrastructure/config"
	"github.com/kirana/pdf-invoice-api/internal/infrastructure/logger"
	"github.com/kirana/pdf-invoice-api/internal/infrastructure/render"
	"github.com/kirana/pdf-invoice-api/internal/infrastructure/scheduler"
	"github.com/kirana/pdf-invoice-api/internal/infrastructure/shortener"
	"github.com/kirana/pdf-invoice-api/internal/infrastructure/storage"
	"github.com/kirana/pdf-invoice-api/internal/interfaces/http/handler"
	"github.com/kirana/pdf-invoice-api/internal/interfaces/http/middleware"
	"github.com/kirana/pdf-invoice-api/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting invoice renderer",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("addr", cfg.ListenAddr()),
	)

	// PDF renderer (headless Chrome)
	renderer, err := render.NewChromedpRenderer(&render.ChromedpConfig{
		DefaultTimeout: cfg.Render.Timeout,
		RemoteURL:      cfg.Render.RemoteURL,
		Headless:       cfg.Render.Headless,
		NoSandbox:      cfg.Render.NoSandbox,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	// Invoice PDF store; creates the output directory if absent
	store, err := storage.NewInvoiceStore(&storage.InvoiceStoreConfig{
		OutputDir:     cfg.Invoice.OutputDir,
		PublicBaseURL: cfg.Invoice.PublicBaseURL,
		Logger:        log,
	})
	if err != nil {
		log.Fatal("Failed to initialize invoice store", zap.Error(err))
	}
	log.Info("Invoice store ready", zap.String("dir", store.Dir()))

	// URL shortener (best effort; disabled means long URLs only)
	var short shortener.Shortener = shortener.NoopShortener{}
	if cfg.Shortener.Enabled {
		short = shortener.NewTinyURLShortener(&shortener.TinyURLConfig{
			Endpoint: cfg.Shortener.Endpoint,
			Timeout:  cfg.Shortener.Timeout,
			Logger:   log,
		})
	}

	// Template engine and invoice service
	engine, err := invoiceapp.NewTemplateEngine()
	if err != nil {
		log.Fatal("Failed to parse invoice template", zap.Error(err))
	}
	invoiceService := invoiceapp.NewService(engine, renderer, store, short, log)

	// Retention sweeper
	sweeper := scheduler.NewRetentionSweeper(scheduler.RetentionSweeperConfig{
		Retention: cfg.Invoice.Retention,
		Interval:  cfg.Invoice.SweepInterval,
	}, store, log)
	if err := sweeper.Start(context.Background()); err != nil {
		log.Fatal("Failed to start retention sweeper", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sweeper.Stop(ctx); err != nil {
			log.Error("Error stopping retention sweeper", zap.Error(err))
		}
	}()

	// HTTP handlers
	healthHandler := handler.NewHealthHandler()
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, store)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginEngine := gin.New()
	ginEngine.Use(middleware.RequestID())
	ginEngine.Use(logger.Recovery(log))
	ginEngine.Use(logger.GinMiddleware(log))
	ginEngine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))

	router.NewRouter(ginEngine).
		Register(healthHandler).
		Register(invoiceHandler).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           cfg.ListenAddr(),
		Handler:        ginEngine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
