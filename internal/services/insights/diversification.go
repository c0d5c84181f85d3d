package insights

import (
	"github.com/shopspring/decimal"

	"github.com/foliotrack/foliotrack/internal/models"
)

var hundred = decimal.NewFromInt(100)

// ScoreDiversification computes the concentration-based diversification score
// for a set of holding values. The score uses the Herfindahl-Hirschman index
// over portfolio weights: a single holding scores 0, perfectly even spreads
// approach 100, with a small bonus for holding count.
func ScoreDiversification(values []decimal.Decimal) models.DiversificationResult {
	if len(values) == 0 {
		return models.DiversificationResult{
			Score:   decimal.Zero,
			Message: "No assets in portfolio",
		}
	}

	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	if total.IsZero() {
		return models.DiversificationResult{
			HoldingCount: len(values),
			Score:        decimal.Zero,
			Message:      diversificationMessage(decimal.Zero),
		}
	}

	hhi := decimal.Zero
	for _, v := range values {
		weight := v.DivRound(total, 4)
		hhi = hhi.Add(weight.Mul(weight))
	}

	score := hundred.Sub(hhi.Mul(hundred))
	switch {
	case len(values) >= 10:
		score = score.Mul(decimal.RequireFromString("1.1"))
	case len(values) >= 5:
		score = score.Mul(decimal.RequireFromString("1.05"))
	}
	if score.GreaterThan(hundred) {
		score = hundred
	}
	// message thresholds see the capped score before presentation rounding
	message := diversificationMessage(score)

	return models.DiversificationResult{
		Score:        score.Round(2),
		HoldingCount: len(values),
		HHI:          hhi.Round(4),
		Message:      message,
	}
}

func diversificationMessage(score decimal.Decimal) string {
	switch {
	case score.GreaterThanOrEqual(decimal.NewFromInt(80)):
		return "Excellent diversification! Your portfolio is well spread across different assets."
	case score.GreaterThanOrEqual(decimal.NewFromInt(60)):
		return "Good diversification. Consider adding a few more assets for better risk distribution."
	case score.GreaterThanOrEqual(decimal.NewFromInt(40)):
		return "Moderate diversification. Adding more diverse assets would improve your portfolio."
	default:
		return "Low diversification. Consider adding more assets from different sectors and asset classes."
	}
}
