package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quote-engine/internal/application/service"
	"github.com/sangkips/quote-engine/internal/config"
	"github.com/sangkips/quote-engine/internal/domain/entity"
	domainRepo "github.com/sangkips/quote-engine/internal/domain/repository"
	"github.com/sangkips/quote-engine/internal/infrastructure/database"
	"github.com/sangkips/quote-engine/internal/infrastructure/repository"
	"github.com/sangkips/quote-engine/internal/presentation/http/handler"
	"github.com/sangkips/quote-engine/internal/presentation/http/routes"
	"github.com/sangkips/quote-engine/pkg/logger"
	"github.com/sangkips/quote-engine/pkg/printer"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.Log.Level, !cfg.App.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		zapLogger.Fatal("failed to run migrations", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("failed to get underlying sql.DB", zap.Error(err))
	}

	// Initialize repositories
	documentRepo := repository.NewDocumentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	documentService := service.NewDocumentService(documentRepo, service.DocumentDefaults{
		Currency: cfg.Pricing.CurrencySymbol,
		TaxRate:  cfg.Pricing.DefaultTaxRate,
	}, zapLogger)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		zapLogger.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NullPrinter{}
	}
	printerService := service.NewPrinterService(thermalPrinter, documentService, service.PrinterSettings{
		Type:           cfg.Printer.Type,
		CharWidth:      cfg.Printer.CharWidth,
		CurrencySymbol: cfg.Pricing.CurrencySymbol,
		Header: entity.PrintoutHeader{
			BusinessName: cfg.Printer.BusinessName,
			Address:      cfg.Printer.BusinessAddress,
			Phone:        cfg.Printer.BusinessPhone,
			TaxID:        cfg.Printer.BusinessTaxID,
		},
	}, zapLogger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Document: handler.NewDocumentHandler(documentService, cfg.Pricing.CurrencySymbol),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	done := make(chan struct{})
	go sweepIdempotencyKeys(idempotencyRepo, zapLogger, time.Hour, done)

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Logger:          zapLogger,
		IdempotencyRepo: idempotencyRepo,
		Ping:            sqlDB.PingContext,
		Done:            done,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		zapLogger.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutdown signal received")
	close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("error during shutdown", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		zapLogger.Error("error closing database", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}

// sweepIdempotencyKeys drops expired keys every interval until done is closed
func sweepIdempotencyKeys(repo domainRepo.IdempotencyRepository, log *zap.Logger, interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deleted, err := repo.DeleteExpired(context.Background())
			if err != nil {
				log.Warn("failed to sweep idempotency keys", zap.Error(err))
				continue
			}
			if deleted > 0 {
				log.Debug("swept idempotency keys", zap.Int64("deleted", deleted))
			}
		case <-done:
			return
		}
	}
}
