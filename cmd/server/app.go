package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/keepsake-app/keepsake-api/internal/config"
	"github.com/keepsake-app/keepsake-api/internal/delivery"
	"github.com/keepsake-app/keepsake-api/internal/job"
	"github.com/keepsake-app/keepsake-api/internal/platform/mail"
)

// application holds the wired process-lifetime components.
type application struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB

	notificationProcessor *job.Processor[job.NotificationPayload]
	messageProcessor      *job.Processor[job.MessagePayload]

	// dispatcher is the producer surface handed to business services.
	dispatcher *job.Dispatcher

	server *http.Server
}

// newApplication builds every component: database pool, migrations,
// scope factory, handler registries, the two lanes with their
// processors, the dispatcher, and the operational HTTP server.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Every job gets a fresh sender handle through the factory closure.
	newSender := func() (mail.Sender, error) {
		return mail.NewSMTPSender(cfg.Mail)
	}
	scopeFactory := delivery.NewScopeFactory(db, newSender, logger)

	notificationRegistry, err := delivery.NewNotificationRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to build notification registry: %w", err)
	}
	messageRegistry, err := delivery.NewMessageRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to build message registry: %w", err)
	}

	notificationLane := job.NewLane[job.NotificationPayload](
		"notifications",
		cfg.Queue.NotificationCapacity,
		logger,
	)
	messageLane := job.NewLane[job.MessagePayload](
		"messages",
		cfg.Queue.MessageCapacity,
		logger,
	)

	app := &application{
		cfg:    cfg,
		logger: logger,
		db:     db,
		notificationProcessor: job.NewProcessor(
			notificationLane,
			scopeFactory,
			notificationRegistry,
			logger,
		),
		messageProcessor: job.NewProcessor(
			messageLane,
			scopeFactory,
			messageRegistry,
			logger,
		),
		dispatcher: job.NewDispatcher(
			job.NewLaneEnqueuer(notificationLane),
			job.NewLaneEnqueuer(messageLane),
			logger,
		),
	}

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: newRouter(db, logger),
	}

	return app, nil
}

// start launches the lane processors and the HTTP listener.
func (app *application) start() {
	app.notificationProcessor.Start()
	app.messageProcessor.Start()

	go func() {
		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error("http server failed", "error", err)
		}
	}()
}

// shutdown drains the HTTP server, stops both processors (letting any
// in-flight job finish first), and closes the database pool.
func (app *application) shutdown(ctx context.Context) {
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("http server shutdown failed", "error", err)
	}

	app.notificationProcessor.Stop()
	app.messageProcessor.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database pool", "error", err)
	}
}
