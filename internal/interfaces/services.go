package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/foliotrack/foliotrack/internal/models"
)

// MarketService provides quote data with cache-through semantics.
type MarketService interface {
	// GetQuote returns a cached quote when fresh, otherwise fetches and caches.
	GetQuote(ctx context.Context, symbol string) (*models.StockQuote, error)
	GetOverview(ctx context.Context, symbol string) (*models.StockOverview, error)
	GetTimeSeriesDaily(ctx context.Context, symbol string) (*models.TimeSeries, error)
}

// PortfolioService manages portfolios, assets, and valuation.
type PortfolioService interface {
	CreatePortfolio(ctx context.Context, username, name, description string) (*models.Portfolio, error)
	ListPortfolios(ctx context.Context, username string) ([]*models.Portfolio, error)
	GetPortfolioDetail(ctx context.Context, username, portfolioID string) (*models.PortfolioDetail, error)
	UpdatePortfolio(ctx context.Context, username, portfolioID, name, description string) (*models.Portfolio, error)
	DeletePortfolio(ctx context.Context, username, portfolioID string) error

	AddAsset(ctx context.Context, username, portfolioID, ticker string, quantity, purchasePrice decimal.Decimal) (*models.Asset, error)
	RemoveAsset(ctx context.Context, username, portfolioID, assetID string) error

	// RefreshPrices is the explicit write path that re-fetches quotes and
	// persists CurrentPrice for every asset in the portfolio.
	RefreshPrices(ctx context.Context, username, portfolioID string) (int, error)

	// ValuedAssets returns the valued holdings for a portfolio the user owns.
	ValuedAssets(ctx context.Context, username, portfolioID string) ([]models.ValuedAsset, error)
}

// InsightsService computes derived analytics over a portfolio's holdings.
type InsightsService interface {
	DiversificationScore(ctx context.Context, username, portfolioID string) (*models.DiversificationResult, error)
	Recommendation(ctx context.Context, username, portfolioID string) (*models.Recommendation, error)
	Simulate(ctx context.Context, username, portfolioID string, days int, compound bool) (*models.SimulationResult, error)
	SimulationChart(ctx context.Context, username, portfolioID string, days int) ([]byte, error)
}
