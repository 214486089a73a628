// Package app defines the App struct that composes the application's main
// dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//
// Commands build one App, use it, and close it on the way out.
package app

import (
	"fmt"
	"time"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/deppfellow/jobly/internal/database"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/jobly/internal/logger"
)

// newRelicShutdownTimeout bounds how long Close waits for New Relic to flush.
const newRelicShutdownTimeout = 10 * time.Second

// App is the application container that holds shared resources.
type App struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	// DB holds the PostgreSQL pool wrapper.
	DB *database.Database
}

// New constructs an App and connects to the database.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*App, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &App{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}, nil
}

// Close releases the database pool and flushes New Relic.
func (a *App) Close() error {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	a.LoggerService.Shutdown(newRelicShutdownTimeout)
	return nil
}
