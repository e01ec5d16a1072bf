package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"lessonwiki-backend/internal/app"
	"lessonwiki-backend/internal/config"
	"lessonwiki-backend/pkg/logger"
	"lessonwiki-backend/pkg/validator"
)

func main() {
	// Load the env file before the logger so LOG_LEVEL applies.
	envErr := godotenv.Load()

	logger.Init()
	logger.Info("Starting Lesson Wiki backend", nil)
	if envErr != nil {
		logger.Info("No .env file found, using environment variables", nil)
	}

	cfg := config.New()
	validator.Init()

	application, err := app.New(cfg)
	if err != nil {
		logger.Error(err, "Failed to initialize application", nil)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := application.Run(); err != nil && err != http.ErrServerClosed {
			logger.Error(err, "Failed to start server", nil)
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...", nil)
	case err := <-serverErr:
		logger.Error(err, "Server error occurred, initiating shutdown", nil)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, "Forced shutdown", nil)
		os.Exit(1)
	}

	logger.Info("Server stopped", nil)
}
