package api

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/FACorreiaa/dividend-tracker/internal/domain/dividend/handler"
	"github.com/FACorreiaa/dividend-tracker/internal/domain/dividend/repository"
	"github.com/FACorreiaa/dividend-tracker/internal/domain/dividend/service"
	"github.com/FACorreiaa/dividend-tracker/pkg/config"
	"github.com/FACorreiaa/dividend-tracker/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	DividendRepo repository.DividendRepository

	// Services
	DividendService *service.DividendService

	// Handlers
	DividendHandler *handler.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	deps.DividendRepo = repository.NewPostgresDividendRepository(deps.DB.Pool, logger)
	deps.DividendService = service.NewDividendService(deps.DividendRepo, logger, cfg.Extraction.ConfidenceFloor)
	deps.DividendHandler = handler.NewHandler(deps.DividendService, logger)

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
