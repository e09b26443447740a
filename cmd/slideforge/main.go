// Package main is the entry point for the slideforge API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slideforge/internal/ai"
	"slideforge/internal/cache"
	"slideforge/internal/config"
	"slideforge/internal/database"
	"slideforge/internal/extract"
	"slideforge/internal/handlers"
	"slideforge/internal/pipeline"
	"slideforge/internal/router"
	"slideforge/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the starter template catalog (no-op if templates already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey. The catalog cache degrades to a no-op when the
	// connection fails, so a missing Valkey never blocks startup.
	var catalogCache *cache.CatalogCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, catalog caching disabled", "error", err)
		catalogCache = cache.NewCatalogCache(nil, cache.DefaultCatalogTTL)
	} else {
		defer valkeyClient.Close()
		catalogCache = cache.NewCatalogCache(valkeyClient, cache.DefaultCatalogTTL)
	}

	// Initialize data stores.
	projectStore := store.NewProjectStore(db)
	slideStore := store.NewSlideStore(db)
	templateStore := store.NewTemplateStore(db)

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.ActiveProvider, cfg.Providers)

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// The content pipeline drives all generation stages; the extract client
	// supplies landing-page evidence to the analysis stage.
	pipe := pipeline.New(aiRegistry, extract.NewClient(), logger)

	h := handlers.New(projectStore, slideStore, templateStore, catalogCache, aiRegistry, pipe)

	// Set up the Chi router with all middleware and routes.
	r := router.New(h)

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate the generation endpoints that wait on
	// LLM and image-generation responses (up to minutes for images).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
