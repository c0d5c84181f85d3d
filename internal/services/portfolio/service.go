// Package portfolio manages portfolios, asset holdings, and valuation.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/foliotrack/foliotrack/internal/common"
	"github.com/foliotrack/foliotrack/internal/interfaces"
	"github.com/foliotrack/foliotrack/internal/models"
	"github.com/foliotrack/foliotrack/internal/storage/portfoliodb"
)

// Service implements interfaces.PortfolioService.
type Service struct {
	storage interfaces.StorageManager
	market  interfaces.MarketService
	logger  *common.Logger
}

// NewService creates a new portfolio service.
func NewService(storage interfaces.StorageManager, market interfaces.MarketService, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		market:  market,
		logger:  logger,
	}
}

// getOwned loads a portfolio and verifies the caller owns it.
func (s *Service) getOwned(ctx context.Context, username, portfolioID string) (*models.Portfolio, error) {
	p, err := s.storage.PortfolioStore().GetPortfolio(ctx, portfolioID)
	if err != nil {
		if errors.Is(err, portfoliodb.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrNotFound, portfolioID)
		}
		return nil, err
	}
	if p.Username != username {
		return nil, fmt.Errorf("%w: '%s'", ErrOwnershipMismatch, portfolioID)
	}
	return p, nil
}

func (s *Service) CreatePortfolio(ctx context.Context, username, name, description string) (*models.Portfolio, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("portfolio name is required")
	}
	p := &models.Portfolio{
		Name:        strings.TrimSpace(name),
		Description: description,
		Username:    username,
	}
	if err := s.storage.PortfolioStore().CreatePortfolio(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info().Str("portfolio_id", p.ID).Str("username", username).Msg("Portfolio created")
	return p, nil
}

func (s *Service) ListPortfolios(ctx context.Context, username string) ([]*models.Portfolio, error) {
	portfolios, err := s.storage.PortfolioStore().ListPortfolios(ctx, username)
	if err != nil {
		return nil, err
	}
	sort.Slice(portfolios, func(i, j int) bool {
		return portfolios[i].CreatedAt.Before(portfolios[j].CreatedAt)
	})
	return portfolios, nil
}

// GetPortfolioDetail returns the portfolio with valued holdings and totals.
// This is a pure read: it never writes prices back to storage. Use
// RefreshPrices for the explicit write path.
func (s *Service) GetPortfolioDetail(ctx context.Context, username, portfolioID string) (*models.PortfolioDetail, error) {
	p, err := s.getOwned(ctx, username, portfolioID)
	if err != nil {
		return nil, err
	}

	valued, err := s.valueAssets(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	summary := Summarize(valued)

	return &models.PortfolioDetail{
		Portfolio:               *p,
		Assets:                  valued,
		TotalValue:              summary.TotalValue,
		TotalCost:               summary.TotalCost,
		TotalGainLoss:           summary.TotalGainLoss,
		TotalGainLossPercentage: summary.TotalGainLossPercentage,
	}, nil
}

func (s *Service) UpdatePortfolio(ctx context.Context, username, portfolioID, name, description string) (*models.Portfolio, error) {
	p, err := s.getOwned(ctx, username, portfolioID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) != "" {
		p.Name = strings.TrimSpace(name)
	}
	p.Description = description
	if err := s.storage.PortfolioStore().UpdatePortfolio(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePortfolio(ctx context.Context, username, portfolioID string) error {
	if _, err := s.getOwned(ctx, username, portfolioID); err != nil {
		return err
	}
	if err := s.storage.PortfolioStore().DeletePortfolio(ctx, portfolioID); err != nil {
		return err
	}
	s.logger.Info().Str("portfolio_id", portfolioID).Str("username", username).Msg("Portfolio deleted")
	return nil
}

// AddAsset adds a holding to the portfolio. Adding a ticker that already
// exists merges the quantity into the existing holding and keeps its original
// purchase price. The current price is fetched best-effort; a quote failure
// does not fail the add.
func (s *Service) AddAsset(ctx context.Context, username, portfolioID, ticker string, quantity, purchasePrice decimal.Decimal) (*models.Asset, error) {
	if _, err := s.getOwned(ctx, username, portfolioID); err != nil {
		return nil, err
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker symbol is required")
	}
	if quantity.Sign() <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}
	if purchasePrice.Sign() < 0 {
		return nil, fmt.Errorf("purchase price cannot be negative")
	}

	asset, created, err := s.storage.PortfolioStore().UpsertAsset(ctx, portfolioID, ticker, quantity, purchasePrice)
	if err != nil {
		return nil, err
	}

	if created {
		if quote, err := s.market.GetQuote(ctx, ticker); err == nil {
			asset.CurrentPrice = decimal.NewNullDecimal(quote.Price)
			if err := s.storage.PortfolioStore().SaveAsset(ctx, asset); err != nil {
				s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Failed to persist fetched price")
			}
		} else {
			s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Quote unavailable on add, price left unset")
		}
	}

	s.logger.Info().
		Str("portfolio_id", portfolioID).
		Str("ticker", ticker).
		Bool("created", created).
		Msg("Asset added")
	return asset, nil
}

func (s *Service) RemoveAsset(ctx context.Context, username, portfolioID, assetID string) error {
	if _, err := s.getOwned(ctx, username, portfolioID); err != nil {
		return err
	}
	asset, err := s.storage.PortfolioStore().GetAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, portfoliodb.ErrNotFound) {
			return fmt.Errorf("%w: '%s'", ErrAssetNotFound, assetID)
		}
		return err
	}
	if asset.PortfolioID != portfolioID {
		return fmt.Errorf("%w: asset '%s' belongs to a different portfolio", ErrOwnershipMismatch, assetID)
	}
	return s.storage.PortfolioStore().DeleteAsset(ctx, assetID)
}

// RefreshPrices re-fetches quotes for every holding and persists the updated
// current prices. Returns the number of holdings refreshed. A quote failure
// skips the holding rather than failing the refresh.
func (s *Service) RefreshPrices(ctx context.Context, username, portfolioID string) (int, error) {
	if _, err := s.getOwned(ctx, username, portfolioID); err != nil {
		return 0, err
	}
	assets, err := s.storage.PortfolioStore().ListAssets(ctx, portfolioID)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for i := range assets {
		quote, err := s.market.GetQuote(ctx, assets[i].TickerSymbol)
		if err != nil {
			s.logger.Warn().Str("ticker", assets[i].TickerSymbol).Err(err).Msg("Quote unavailable, price not refreshed")
			continue
		}
		assets[i].CurrentPrice = decimal.NewNullDecimal(quote.Price)
		if err := s.storage.PortfolioStore().SaveAsset(ctx, &assets[i]); err != nil {
			s.logger.Warn().Str("ticker", assets[i].TickerSymbol).Err(err).Msg("Failed to persist refreshed price")
			continue
		}
		refreshed++
	}

	s.logger.Info().
		Str("portfolio_id", portfolioID).
		Int("refreshed", refreshed).
		Int("total", len(assets)).
		Msg("Prices refreshed")
	return refreshed, nil
}

// ValuedAssets returns the valued holdings for a portfolio the user owns.
func (s *Service) ValuedAssets(ctx context.Context, username, portfolioID string) ([]models.ValuedAsset, error) {
	if _, err := s.getOwned(ctx, username, portfolioID); err != nil {
		return nil, err
	}
	return s.valueAssets(ctx, portfolioID)
}

func (s *Service) valueAssets(ctx context.Context, portfolioID string) ([]models.ValuedAsset, error) {
	assets, err := s.storage.PortfolioStore().ListAssets(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].TickerSymbol < assets[j].TickerSymbol
	})

	valued := make([]models.ValuedAsset, len(assets))
	for i, a := range assets {
		valued[i] = Value(a)
	}
	return valued, nil
}
