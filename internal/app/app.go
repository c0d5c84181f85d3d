// Package app wires configuration, storage, clients, and services into the
// shared core used by cmd/foliotrack-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/foliotrack/foliotrack/internal/clients/alphavantage"
	"github.com/foliotrack/foliotrack/internal/common"
	"github.com/foliotrack/foliotrack/internal/interfaces"
	"github.com/foliotrack/foliotrack/internal/services/insights"
	"github.com/foliotrack/foliotrack/internal/services/market"
	"github.com/foliotrack/foliotrack/internal/services/portfolio"
	"github.com/foliotrack/foliotrack/internal/storage"
)

// App holds all initialized services, clients, and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	QuoteClient      interfaces.QuoteClient
	MarketService    interfaces.MarketService
	PortfolioService interfaces.PortfolioService
	InsightsService  interfaces.InsightsService
	StartupTime      time.Time

	schedulerCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Load configuration - check provided path, FOLIO_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "foliotrack.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/foliotrack.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if config.Clients.AlphaVantage.APIKey == "" {
		logger.Warn().Msg("Alpha Vantage API key not configured - quotes will be unavailable")
	}

	quoteClient := alphavantage.NewClient(
		config.Clients.AlphaVantage.APIKey,
		alphavantage.WithBaseURL(config.Clients.AlphaVantage.BaseURL),
		alphavantage.WithLogger(logger),
		alphavantage.WithRateLimit(config.Clients.AlphaVantage.RateLimit),
		alphavantage.WithTimeout(config.Clients.AlphaVantage.GetTimeout()),
	)

	marketService := market.NewService(storageManager, quoteClient, logger)
	marketService.SetQuoteTTL(config.Clients.AlphaVantage.GetQuoteTTL())

	portfolioService := portfolio.NewService(storageManager, marketService, logger)
	insightsService := insights.NewService(portfolioService, logger)

	logger.Info().
		Str("environment", config.Environment).
		Dur("startup", time.Since(startupStart)).
		Msg("Application initialized")

	return &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		QuoteClient:      quoteClient,
		MarketService:    marketService,
		PortfolioService: portfolioService,
		InsightsService:  insightsService,
		StartupTime:      time.Now(),
	}, nil
}

// Close shuts down background work and storage.
func (a *App) Close() error {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
	}
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
