// Package storage provides the top-level StorageManager that coordinates
// the 3 storage areas: internaldb, portfoliodb, and marketdb.
package storage

import (
	"fmt"

	"github.com/foliotrack/foliotrack/internal/common"
	"github.com/foliotrack/foliotrack/internal/interfaces"
	"github.com/foliotrack/foliotrack/internal/storage/internaldb"
	"github.com/foliotrack/foliotrack/internal/storage/marketdb"
	"github.com/foliotrack/foliotrack/internal/storage/portfoliodb"
)

// Manager implements interfaces.StorageManager using 3 storage areas.
type Manager struct {
	internal  *internaldb.Store
	portfolio *portfoliodb.Store
	market    *marketdb.Store
	logger    *common.Logger
}

// NewManager creates a new StorageManager with the 3 storage areas.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	internalStore, err := internaldb.NewStore(logger, config.Storage.Internal.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create internal store: %w", err)
	}

	portfolioStore, err := portfoliodb.NewStore(logger, config.Storage.Portfolio.Path)
	if err != nil {
		internalStore.Close()
		return nil, fmt.Errorf("failed to create portfolio store: %w", err)
	}

	marketStore, err := marketdb.NewStore(logger, config.Storage.Market.Path)
	if err != nil {
		internalStore.Close()
		portfolioStore.Close()
		return nil, fmt.Errorf("failed to create market store: %w", err)
	}

	logger.Info().
		Str("internal", config.Storage.Internal.Path).
		Str("portfolio", config.Storage.Portfolio.Path).
		Str("market", config.Storage.Market.Path).
		Msg("Storage manager initialized (3 areas)")

	return &Manager{
		internal:  internalStore,
		portfolio: portfolioStore,
		market:    marketStore,
		logger:    logger,
	}, nil
}

func (m *Manager) UserStore() interfaces.UserStore {
	return m.internal
}

func (m *Manager) PortfolioStore() interfaces.PortfolioStore {
	return m.portfolio
}

func (m *Manager) MarketStore() interfaces.MarketStore {
	return m.market
}

func (m *Manager) Close() error {
	var firstErr error
	if err := m.internal.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := m.portfolio.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := m.market.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
