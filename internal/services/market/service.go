// Package market provides quote data with cache-through semantics.
package market

import (
	"context"
	"time"

	"github.com/foliotrack/foliotrack/internal/common"
	"github.com/foliotrack/foliotrack/internal/interfaces"
	"github.com/foliotrack/foliotrack/internal/models"
)

// DefaultQuoteTTL is how long a cached quote is served before the
// quote source is consulted again.
const DefaultQuoteTTL = 15 * time.Minute

// Service implements interfaces.MarketService.
type Service struct {
	storage  interfaces.StorageManager
	client   interfaces.QuoteClient
	logger   *common.Logger
	quoteTTL time.Duration
}

// NewService creates a new market service.
func NewService(storage interfaces.StorageManager, client interfaces.QuoteClient, logger *common.Logger) *Service {
	return &Service{
		storage:  storage,
		client:   client,
		logger:   logger,
		quoteTTL: DefaultQuoteTTL,
	}
}

// SetQuoteTTL overrides the cache freshness window.
func (s *Service) SetQuoteTTL(ttl time.Duration) {
	if ttl > 0 {
		s.quoteTTL = ttl
	}
}

// GetQuote returns a cached quote when fresh, otherwise fetches and caches.
// When the quote source fails but a stale cached quote exists, the stale
// quote is served rather than surfacing the failure.
func (s *Service) GetQuote(ctx context.Context, symbol string) (*models.StockQuote, error) {
	cached, age, err := s.storage.MarketStore().GetQuote(ctx, symbol)
	if err == nil && age < s.quoteTTL {
		s.logger.Debug().Str("symbol", symbol).Dur("age", age).Msg("Quote served from cache")
		return cached, nil
	}

	quote, fetchErr := s.client.GetQuote(ctx, symbol)
	if fetchErr != nil {
		if cached != nil {
			s.logger.Warn().Str("symbol", symbol).Err(fetchErr).Msg("Quote source failed, serving stale cache")
			return cached, nil
		}
		return nil, fetchErr
	}

	if err := s.storage.MarketStore().SaveQuote(ctx, quote); err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("Failed to cache quote")
	}
	return quote, nil
}

func (s *Service) GetOverview(ctx context.Context, symbol string) (*models.StockOverview, error) {
	return s.client.GetOverview(ctx, symbol)
}

func (s *Service) GetTimeSeriesDaily(ctx context.Context, symbol string) (*models.TimeSeries, error) {
	return s.client.GetTimeSeriesDaily(ctx, symbol)
}
