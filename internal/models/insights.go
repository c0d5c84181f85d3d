package models

import "github.com/shopspring/decimal"

// RecommendationCategory classifies a portfolio recommendation.
type RecommendationCategory string

const (
	RecommendationDiversification RecommendationCategory = "DIVERSIFICATION"
	RecommendationExpansion       RecommendationCategory = "EXPANSION"
	RecommendationOptimization    RecommendationCategory = "OPTIMIZATION"
)

// RecommendationPriority ranks how urgent a recommendation is.
type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "HIGH"
	PriorityMedium RecommendationPriority = "MEDIUM"
	PriorityLow    RecommendationPriority = "LOW"
)

// DiversificationResult reports the concentration analysis for a portfolio.
// Score is 0-100 (2dp), HHI is the Herfindahl-Hirschman Index in (0,1] (4dp).
type DiversificationResult struct {
	Score        decimal.Decimal `json:"score"`
	HoldingCount int             `json:"asset_count"`
	HHI          decimal.Decimal `json:"hhi"`
	Message      string          `json:"message"`
}

// Recommendation is the decision-table output for a portfolio.
type Recommendation struct {
	Category         RecommendationCategory `json:"type"`
	Priority         RecommendationPriority `json:"priority"`
	Message          string                 `json:"message"`
	SuggestedSymbols []string               `json:"suggested_assets"`
}

// SimulationResult holds one Monte-Carlo projection of a portfolio's value.
type SimulationResult struct {
	HorizonDays      int               `json:"simulation_days"`
	CurrentValue     decimal.Decimal   `json:"current_value"`
	SimulatedValue   decimal.Decimal   `json:"simulated_value"`
	TotalReturn      decimal.Decimal   `json:"total_return"`
	ReturnPercentage decimal.Decimal   `json:"return_percentage"`
	DailyReturns     []decimal.Decimal `json:"daily_returns"`
}
