package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dating-app-backend/internal/config"
	"dating-app-backend/internal/handlers"
	"dating-app-backend/internal/repository"
	"dating-app-backend/internal/services"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Run starts the API server and blocks until SIGINT or SIGTERM
func Run() {
	configPath := os.Getenv("DATING_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	ctx := context.Background()

	// Connect to database
	db, closeDB, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer closeDB()

	if cfg.Database.AutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
		log.Info().Msg("Database schema migrated")
	}

	store := repository.NewStore(db)

	// Initialize services
	storage, err := services.NewS3Storage(ctx, cfg.AWS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create photo storage")
	}
	wsHub := services.NewWSHub()
	notifier, err := services.NewNotifier(wsHub, store, cfg.APNs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create notifier")
	}

	router := handlers.NewRouter(handlers.Services{
		Auth:     services.NewAuthService(store, cfg.JWT.Secret, cfg.JWT.Lifetime),
		Users:    services.NewUserService(store),
		Likes:    services.NewLikeService(store, notifier),
		Photos:   services.NewPhotoService(store, storage),
		Messages: services.NewMessageService(store, notifier),
		Hub:      wsHub,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Str("driver", cfg.Database.Driver).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Int("ws_connections", wsHub.OnlineCount()).Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Hijacked WebSocket connections are not tracked by Shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
