// Package marketdb implements MarketStore using BadgerHold.
// It caches stock quotes keyed by symbol so the quote source is only hit
// when a cached entry is missing or stale.
package marketdb

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/foliotrack/foliotrack/internal/common"
	"github.com/foliotrack/foliotrack/internal/models"
)

// ErrQuoteNotCached is returned when no cached quote exists for a symbol.
var ErrQuoteNotCached = fmt.Errorf("quote not cached")

// Store implements interfaces.MarketStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore creates a new MarketStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create market db path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open market db at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("MarketDB opened")
	return &Store{db: db, logger: logger}, nil
}

// GetQuote returns the cached quote for a symbol and its age.
func (s *Store) GetQuote(_ context.Context, symbol string) (*models.StockQuote, time.Duration, error) {
	symbol = strings.ToUpper(symbol)
	var quote models.StockQuote
	if err := s.db.Get(symbol, &quote); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, 0, fmt.Errorf("%w: '%s'", ErrQuoteNotCached, symbol)
		}
		return nil, 0, fmt.Errorf("failed to read cached quote for '%s': %w", symbol, err)
	}
	return &quote, time.Since(quote.FetchedAt), nil
}

func (s *Store) SaveQuote(_ context.Context, quote *models.StockQuote) error {
	symbol := strings.ToUpper(quote.Symbol)
	if quote.FetchedAt.IsZero() {
		quote.FetchedAt = time.Now()
	}
	if err := s.db.Upsert(symbol, quote); err != nil {
		return fmt.Errorf("failed to cache quote for '%s': %w", symbol, err)
	}
	s.logger.Debug().Str("symbol", symbol).Str("price", quote.Price.String()).Msg("Quote cached")
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
