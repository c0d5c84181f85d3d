// Package portfoliodb implements PortfolioStore using BadgerHold.
// It manages portfolios and their asset holdings.
package portfoliodb

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/timshannon/badgerhold/v4"

	"github.com/foliotrack/foliotrack/internal/common"
	"github.com/foliotrack/foliotrack/internal/models"
)

// ErrNotFound is returned when a portfolio or asset does not exist.
var ErrNotFound = fmt.Errorf("record not found")

// Store implements interfaces.PortfolioStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger

	// upsertMu serializes read-merge-write cycles in UpsertAsset so that
	// concurrent adds for the same ticker cannot lose a quantity update.
	upsertMu sync.Mutex
}

// NewStore creates a new PortfolioStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create portfolio db path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open portfolio db at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("PortfolioDB opened")
	return &Store{db: db, logger: logger}, nil
}

// --- Portfolios ---

func (s *Store) CreatePortfolio(_ context.Context, p *models.Portfolio) error {
	now := time.Now()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.db.Insert(p.ID, p); err != nil {
		return fmt.Errorf("failed to create portfolio '%s': %w", p.Name, err)
	}
	s.logger.Debug().Str("portfolio_id", p.ID).Str("username", p.Username).Msg("Portfolio created")
	return nil
}

func (s *Store) GetPortfolio(_ context.Context, id string) (*models.Portfolio, error) {
	var p models.Portfolio
	if err := s.db.Get(id, &p); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("%w: portfolio '%s'", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get portfolio '%s': %w", id, err)
	}
	return &p, nil
}

func (s *Store) ListPortfolios(_ context.Context, username string) ([]*models.Portfolio, error) {
	var portfolios []models.Portfolio
	if err := s.db.Find(&portfolios, badgerhold.Where("Username").Eq(username)); err != nil {
		return nil, fmt.Errorf("failed to list portfolios for '%s': %w", username, err)
	}
	result := make([]*models.Portfolio, len(portfolios))
	for i := range portfolios {
		result[i] = &portfolios[i]
	}
	return result, nil
}

func (s *Store) UpdatePortfolio(_ context.Context, p *models.Portfolio) error {
	p.UpdatedAt = time.Now()
	if err := s.db.Update(p.ID, p); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("%w: portfolio '%s'", ErrNotFound, p.ID)
		}
		return fmt.Errorf("failed to update portfolio '%s': %w", p.ID, err)
	}
	return nil
}

// DeletePortfolio removes the portfolio and cascades to its assets.
func (s *Store) DeletePortfolio(ctx context.Context, id string) error {
	assets, err := s.ListAssets(ctx, id)
	if err != nil {
		return err
	}
	for _, a := range assets {
		if err := s.db.Delete(a.ID, models.Asset{}); err != nil && err != badgerhold.ErrNotFound {
			return fmt.Errorf("failed to delete asset '%s': %w", a.ID, err)
		}
	}
	if err := s.db.Delete(id, models.Portfolio{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("%w: portfolio '%s'", ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete portfolio '%s': %w", id, err)
	}
	s.logger.Debug().Str("portfolio_id", id).Int("assets", len(assets)).Msg("Portfolio deleted")
	return nil
}

// --- Assets ---

func (s *Store) ListAssets(_ context.Context, portfolioID string) ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.Find(&assets, badgerhold.Where("PortfolioID").Eq(portfolioID)); err != nil {
		return nil, fmt.Errorf("failed to list assets for portfolio '%s': %w", portfolioID, err)
	}
	return assets, nil
}

func (s *Store) GetAsset(_ context.Context, assetID string) (*models.Asset, error) {
	var a models.Asset
	if err := s.db.Get(assetID, &a); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("%w: asset '%s'", ErrNotFound, assetID)
		}
		return nil, fmt.Errorf("failed to get asset '%s': %w", assetID, err)
	}
	return &a, nil
}

func (s *Store) GetAssetByTicker(_ context.Context, portfolioID, ticker string) (*models.Asset, error) {
	ticker = strings.ToUpper(ticker)
	var assets []models.Asset
	if err := s.db.Find(&assets, badgerhold.Where("PortfolioID").Eq(portfolioID).And("TickerSymbol").Eq(ticker)); err != nil {
		return nil, fmt.Errorf("failed to look up ticker '%s' in portfolio '%s': %w", ticker, portfolioID, err)
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("%w: ticker '%s' in portfolio '%s'", ErrNotFound, ticker, portfolioID)
	}
	return &assets[0], nil
}

// UpsertAsset merges quantityDelta into an existing holding for the ticker, or
// creates a new one. An existing holding keeps its original purchase price and
// current price. Returns the stored asset and whether it was newly created.
func (s *Store) UpsertAsset(ctx context.Context, portfolioID, ticker string, quantityDelta, purchasePrice decimal.Decimal) (*models.Asset, bool, error) {
	s.upsertMu.Lock()
	defer s.upsertMu.Unlock()

	ticker = strings.ToUpper(ticker)
	now := time.Now()

	existing, err := s.GetAssetByTicker(ctx, portfolioID, ticker)
	if err == nil {
		existing.Quantity = existing.Quantity.Add(quantityDelta)
		existing.UpdatedAt = now
		if err := s.db.Update(existing.ID, existing); err != nil {
			return nil, false, fmt.Errorf("failed to update asset '%s': %w", existing.ID, err)
		}
		s.logger.Debug().
			Str("portfolio_id", portfolioID).
			Str("ticker", ticker).
			Str("quantity", existing.Quantity.String()).
			Msg("Asset quantity merged")
		return existing, false, nil
	}

	asset := &models.Asset{
		ID:            uuid.NewString(),
		PortfolioID:   portfolioID,
		TickerSymbol:  ticker,
		Quantity:      quantityDelta,
		PurchasePrice: purchasePrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.db.Insert(asset.ID, asset); err != nil {
		return nil, false, fmt.Errorf("failed to insert asset '%s': %w", ticker, err)
	}
	s.logger.Debug().
		Str("portfolio_id", portfolioID).
		Str("ticker", ticker).
		Str("quantity", quantityDelta.String()).
		Msg("Asset created")
	return asset, true, nil
}

func (s *Store) SaveAsset(_ context.Context, asset *models.Asset) error {
	asset.UpdatedAt = time.Now()
	if err := s.db.Upsert(asset.ID, asset); err != nil {
		return fmt.Errorf("failed to save asset '%s': %w", asset.ID, err)
	}
	return nil
}

func (s *Store) DeleteAsset(_ context.Context, assetID string) error {
	if err := s.db.Delete(assetID, models.Asset{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("%w: asset '%s'", ErrNotFound, assetID)
		}
		return fmt.Errorf("failed to delete asset '%s': %w", assetID, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
