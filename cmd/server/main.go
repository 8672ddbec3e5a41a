// Package main implements the entry point for the Keepsake API server,
// which hosts the background job dispatch subsystem: two independent
// job lanes (notification fan-out and outbound messages), one processor
// per lane, and the dispatcher business services use to defer work.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/keepsake-app/keepsake-api/internal/config"
	"github.com/keepsake-app/keepsake-api/internal/platform/logger"
)

// shutdownTimeout bounds the HTTP server drain. Processors are not
// subject to it: an in-flight job always runs to completion.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"notification_lane_capacity", cfg.Queue.NotificationCapacity,
		"message_lane_capacity", cfg.Queue.MessageCapacity)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.start()
	appLogger.Info("server started", "port", cfg.Server.Port)

	<-ctx.Done()
	appLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	app.shutdown(shutdownCtx)

	appLogger.Info("server stopped")
}
