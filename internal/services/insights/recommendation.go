package insights

import (
	"github.com/shopspring/decimal"

	"github.com/foliotrack/foliotrack/internal/models"
)

var (
	diversifySuggestions = []string{"VTI", "VEA", "VWO", "BND", "VNQ", "GLD", "TLT", "IWM"}
	expandSuggestions    = []string{"SPY", "QQQ", "IWM", "EFA", "EEM", "AGG", "LQD", "HYG"}
	optimizeSuggestions  = []string{"VTI", "VXUS", "BND", "VNQ", "GLD", "TLT", "IEFA", "IEMG"}
)

// Recommend maps the diversification score and holding count onto a single
// recommendation. Every input resolves to exactly one of the three categories.
func Recommend(score decimal.Decimal, holdingCount int) models.Recommendation {
	switch {
	case score.LessThan(decimal.NewFromInt(70)):
		return models.Recommendation{
			Category:         models.RecommendationDiversification,
			Priority:         models.PriorityHigh,
			Message:          "Your portfolio has low diversification. Consider adding more assets from different sectors.",
			SuggestedSymbols: diversifySuggestions,
		}
	case holdingCount < 5:
		return models.Recommendation{
			Category:         models.RecommendationExpansion,
			Priority:         models.PriorityMedium,
			Message:          "Consider adding more assets to improve portfolio stability.",
			SuggestedSymbols: expandSuggestions,
		}
	default:
		return models.Recommendation{
			Category:         models.RecommendationOptimization,
			Priority:         models.PriorityLow,
			Message:          "Your portfolio is well diversified. Consider rebalancing based on market conditions.",
			SuggestedSymbols: optimizeSuggestions,
		}
	}
}
