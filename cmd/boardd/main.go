package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"booking-board-backend/config"
	"booking-board-backend/internal/api"
	"booking-board-backend/internal/board"
	"booking-board-backend/internal/db"
	"booking-board-backend/internal/schedule"
	"booking-board-backend/internal/status"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "booking-board ", log.LstdFlags)

	// Optional .env for local development; UPSTREAM_URL is read by the
	// config loader.
	if err := godotenv.Load(); err == nil {
		logger.Println(".env file loaded")
	}

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded (store mode %q)", cfg.Store.Mode)

	if cfg.Upstream.BaseURL == "" {
		// Not fatal: reads degrade to an empty schedule and writes to
		// explicit errors, but the operator should know.
		logger.Println("warning: upstream.base_url is not configured; the board will run degraded")
	}

	// Select the status store implementation.
	var store status.Store
	switch cfg.Store.Mode {
	case config.StoreModeEphemeral:
		gormDB, err := db.InitEphemeral()
		if err != nil {
			logger.Fatalf("failed to initialize ephemeral store: %v", err)
		}
		store = status.NewEphemeralStore(gormDB)
	default:
		store = status.NewProxyStore(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	}
	logger.Println("status store initialized")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run the board service (schedule + status polling) in the background.
	fetcher := schedule.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	boardSvc := board.NewService(cfg, fetcher, store)
	go boardSvc.Run(ctx)

	// Initialize router; the sheet lives on another origin, so the page
	// needs permissive CORS.
	router := api.NewRouter(cfg, boardSvc, store, fetcher)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: cors.AllowAll().Handler(router),
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
