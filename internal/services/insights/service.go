// Package insights computes derived analytics over portfolio holdings:
// diversification scoring, recommendations, and value simulation.
package insights

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foliotrack/foliotrack/internal/common"
	"github.com/foliotrack/foliotrack/internal/interfaces"
	"github.com/foliotrack/foliotrack/internal/models"
)

// Service implements interfaces.InsightsService.
type Service struct {
	portfolios interfaces.PortfolioService
	logger     *common.Logger
	rng        Source
	compound   bool
}

// ServiceOption configures the insights service
type ServiceOption func(*Service)

// WithSource sets the randomness source for simulations.
func WithSource(rng Source) ServiceOption {
	return func(s *Service) {
		s.rng = rng
	}
}

// WithCompoundReturns switches simulations to compound daily returns.
func WithCompoundReturns(compound bool) ServiceOption {
	return func(s *Service) {
		s.compound = compound
	}
}

// NewService creates a new insights service.
func NewService(portfolios interfaces.PortfolioService, logger *common.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		portfolios: portfolios,
		logger:     logger,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// holdingValues loads the valued holdings and extracts their market values.
func (s *Service) holdingValues(ctx context.Context, username, portfolioID string) ([]decimal.Decimal, error) {
	valued, err := s.portfolios.ValuedAssets(ctx, username, portfolioID)
	if err != nil {
		return nil, err
	}
	values := make([]decimal.Decimal, len(valued))
	for i, v := range valued {
		values[i] = v.TotalValue
	}
	return values, nil
}

func (s *Service) DiversificationScore(ctx context.Context, username, portfolioID string) (*models.DiversificationResult, error) {
	values, err := s.holdingValues(ctx, username, portfolioID)
	if err != nil {
		return nil, err
	}
	result := ScoreDiversification(values)
	s.logger.Debug().
		Str("portfolio_id", portfolioID).
		Str("score", result.Score.String()).
		Int("holdings", result.HoldingCount).
		Msg("Diversification scored")
	return &result, nil
}

func (s *Service) Recommendation(ctx context.Context, username, portfolioID string) (*models.Recommendation, error) {
	values, err := s.holdingValues(ctx, username, portfolioID)
	if err != nil {
		return nil, err
	}
	scored := ScoreDiversification(values)
	rec := Recommend(scored.Score, scored.HoldingCount)
	return &rec, nil
}

func (s *Service) Simulate(ctx context.Context, username, portfolioID string, days int, compound bool) (*models.SimulationResult, error) {
	values, err := s.holdingValues(ctx, username, portfolioID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return Simulate(s.rng, total, days, compound || s.compound)
}

func (s *Service) SimulationChart(ctx context.Context, username, portfolioID string, days int) ([]byte, error) {
	result, err := s.Simulate(ctx, username, portfolioID, days, s.compound)
	if err != nil {
		return nil, err
	}
	return RenderSimulationChart(result)
}
