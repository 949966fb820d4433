package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mentor-chat/internal/api"
	"mentor-chat/internal/chat"
	"mentor-chat/internal/config"
	"mentor-chat/internal/content"
	"mentor-chat/internal/db"
	"mentor-chat/internal/gateway"
	"mentor-chat/internal/seed"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Load the content library, overridable from a settings file
	var library *content.Library
	if cfg.ContentPath != "" {
		library, err = content.LoadFile(cfg.ContentPath)
		if err != nil {
			logger.Fatal("Failed to load content library", zap.Error(err), zap.String("path", cfg.ContentPath))
		}
		logger.Info("Content library loaded from file", zap.String("path", cfg.ContentPath))
	} else {
		library, err = content.Default()
		if err != nil {
			logger.Fatal("Failed to load embedded content library", zap.Error(err))
		}
	}

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Fatal("Failed to create data directory", zap.Error(err), zap.String("dir", dbDir))
	}

	// Initialize database; storage failures here are fatal
	database, err := db.NewDB(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err), zap.String("path", cfg.DBPath))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Seed on first run
	if err := seed.Run(database, library, logger); err != nil {
		logger.Fatal("Failed to seed store", zap.Error(err))
	}

	// Bridge client; without a URL every reply comes from the fallback set
	if cfg.Bridge.URL == "" {
		logger.Warn("Bridge URL not configured, replies will use local fallbacks")
	}
	bridge := gateway.NewClient(cfg.Bridge.URL, library, logger,
		gateway.WithTimeout(cfg.Bridge.Timeout))

	// Chat service owns all thread/message state
	service := chat.NewService(database, bridge, library, cfg.SessionLimit, logger)
	if err := service.LoadState(); err != nil {
		logger.Fatal("Failed to load application state", zap.Error(err))
	}

	router := api.NewRouter(service, cfg.StaticDir, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Handle graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Fatal("Server forced to shutdown", zap.Error(err))
		}

		close(done)
	}()

	logger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("static_dir", cfg.StaticDir),
		zap.Int("session_limit", cfg.SessionLimit))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server failed to start", zap.Error(err))
	}

	<-done
	logger.Info("Server stopped gracefully")
}
