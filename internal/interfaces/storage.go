// Package interfaces defines service contracts for foliotrack
package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foliotrack/foliotrack/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	UserStore() UserStore
	PortfolioStore() PortfolioStore
	MarketStore() MarketStore

	Close() error
}

// UserStore manages registered accounts.
type UserStore interface {
	GetUser(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, username string) error
	ListUsers(ctx context.Context) ([]string, error)

	Close() error
}

// PortfolioStore manages portfolios and their assets.
//
// UpsertAsset must serialize concurrent read-merge-write cycles for the same
// (portfolio, ticker) pair so that simultaneous adds cannot lose quantity updates.
type PortfolioStore interface {
	CreatePortfolio(ctx context.Context, p *models.Portfolio) error
	GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error)
	ListPortfolios(ctx context.Context, username string) ([]*models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, p *models.Portfolio) error
	DeletePortfolio(ctx context.Context, id string) error

	ListAssets(ctx context.Context, portfolioID string) ([]models.Asset, error)
	GetAsset(ctx context.Context, assetID string) (*models.Asset, error)
	GetAssetByTicker(ctx context.Context, portfolioID, ticker string) (*models.Asset, error)
	UpsertAsset(ctx context.Context, portfolioID, ticker string, quantityDelta, purchasePrice decimal.Decimal) (*models.Asset, bool, error)
	SaveAsset(ctx context.Context, asset *models.Asset) error
	DeleteAsset(ctx context.Context, assetID string) error

	Close() error
}

// MarketStore caches stock quotes fetched from the quote source.
type MarketStore interface {
	GetQuote(ctx context.Context, symbol string) (*models.StockQuote, time.Duration, error) // quote, age, error
	SaveQuote(ctx context.Context, quote *models.StockQuote) error

	Close() error
}
