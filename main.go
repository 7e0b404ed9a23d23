package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"github.com/mrops-br/storefront-api/internal/infrastructure/genai"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/storefront-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/storefront-api/internal/infrastructure/shutdown"
	"github.com/mrops-br/storefront-api/internal/infrastructure/storage"
	"github.com/mrops-br/storefront-api/internal/infrastructure/telemetry"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	telem, err := telemetry.NewTelemetry(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer("storefront-api")
	meter := telem.MeterProvider.Meter("storefront-api")
	logger := telem.Logger

	logger.Info("Starting Storefront API")

	// Durable slots
	var slots storage.Slots = storage.NewMemorySlots()
	if cfg.Storage.Dir != "" {
		fileSlots, err := storage.NewFileSlots(cfg.Storage.Dir)
		if err != nil {
			logger.Error("Failed to open storage", slog.String("error", err.Error()))
			return
		}
		slots = fileSlots
	}
	logger.Info("Storage ready", slog.String("dir", cfg.Storage.Dir))

	store := memory.NewStore(ctx, storage.NewAdapter(slots, tracer, logger), tracer, logger)

	// A nil generator makes every description a fallback text
	var generator domain.DescriptionGenerator
	if cfg.GenAI.APIKey != "" {
		gemini, err := genai.NewGeminiClient(ctx, genai.Options{
			APIKey:  cfg.GenAI.APIKey,
			Model:   cfg.GenAI.Model,
			BaseURL: cfg.GenAI.BaseURL,
			Timeout: cfg.GenAI.Timeout,
		}, tracer, logger)
		if err != nil {
			logger.Error("Failed to create Gemini client", slog.String("error", err.Error()))
			return
		}
		generator = gemini
	} else {
		logger.Warn("GEMINI_API_KEY is not set, descriptions will use fallback text")
	}

	catalogService := service.NewCatalogService(store, tracer, meter, logger)
	cartService := service.NewCartService(store, tracer, meter, logger)
	descriptionService := service.NewDescriptionService(generator, tracer, meter, logger)
	adminService := service.NewAdminService(store, catalogService, descriptionService, tracer, logger)

	server := http.NewServer(&cfg.Server, http.Handlers{
		Products: handler.NewProductHandler(catalogService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Admin:    handler.NewAdminHandler(adminService, descriptionService, logger),
	}, telem.MeterProvider, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", slog.String("error", err.Error()))
	}

	logger.Info("Server stopped")
}
