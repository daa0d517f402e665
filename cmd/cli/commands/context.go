package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/thecatthatbarks/buzzbot/internal/config"
	"github.com/thecatthatbarks/buzzbot/pkg/clients/sheetsclient"
	"github.com/thecatthatbarks/buzzbot/pkg/postgres"
	"github.com/thecatthatbarks/buzzbot/pkg/travel"
	"github.com/thecatthatbarks/buzzbot/pkg/venues"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context
}

// LoadRegistry loads the venue reference data from the configured CSV file.
func (a *AppContext) LoadRegistry() (*venues.Registry, error) {
	registry, err := venues.LoadRegistry(a.Cfg.VenuesFile)
	if err != nil {
		return nil, err
	}

	a.Logger.Debug("Venue registry loaded",
		zap.String("file", a.Cfg.VenuesFile),
		zap.Int("venues", len(registry.Names())),
	)
	return registry, nil
}

// TravelOracle builds the travel-time oracle from the persistent cache and
// the configured distance matrix service.
func (a *AppContext) TravelOracle() (*travel.Oracle, error) {
	cache, err := travel.LoadCache(a.Cfg.Travel.CacheFile)
	if err != nil {
		return nil, err
	}

	a.Logger.Debug("Travel cache loaded",
		zap.String("file", a.Cfg.Travel.CacheFile),
		zap.Int("entries", cache.Len()),
	)

	client := travel.NewDistanceMatrixClient(a.Cfg.Travel.Endpoint, a.Cfg.Travel.APIKey, a.Logger)
	return travel.NewOracle(cache, client, a.Logger), nil
}

// HistoryStore connects to the assignment history database and brings the
// schema up to date. The caller owns the returned connection.
func (a *AppContext) HistoryStore() (*postgres.DB, error) {
	if a.Cfg.PostgresURL == "" {
		return nil, fmt.Errorf("assignment history is not configured (set postgresURL in the config)")
	}

	database, err := postgres.NewDB(a.Ctx, a.Cfg.PostgresURL)
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(a.Ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return database, nil
}

// SheetsClient creates the Google Sheets client. Errors if the sheets
// integration is not configured.
func (a *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if a.Cfg.Sheets == nil {
		return nil, fmt.Errorf("sheets integration is not configured (add a sheets section to the config)")
	}

	return sheetsclient.NewClient(a.Ctx, a.Cfg.Sheets.CredentialsFile)
}
