package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/foliotrack/foliotrack/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Value computes the derived figures for a single holding. A holding with no
// fetched current price has zero market value, never an error.
func Value(asset models.Asset) models.ValuedAsset {
	price := decimal.Zero
	if asset.CurrentPrice.Valid {
		price = asset.CurrentPrice.Decimal
	}

	totalValue := asset.Quantity.Mul(price)
	totalCost := asset.Quantity.Mul(asset.PurchasePrice)
	gainLoss := totalValue.Sub(totalCost)

	var gainLossPct decimal.Decimal
	if !totalCost.IsZero() {
		gainLossPct = gainLoss.DivRound(totalCost, 4).Mul(hundred)
	}

	return models.ValuedAsset{
		Asset:              asset,
		TotalValue:         totalValue,
		TotalCost:          totalCost,
		GainLoss:           gainLoss,
		GainLossPercentage: gainLossPct,
	}
}

// Summarize totals the valued holdings. The result is independent of the
// order the holdings are supplied in.
func Summarize(assets []models.ValuedAsset) models.PortfolioSummary {
	var summary models.PortfolioSummary
	for _, a := range assets {
		summary.TotalValue = summary.TotalValue.Add(a.TotalValue)
		summary.TotalCost = summary.TotalCost.Add(a.TotalCost)
	}
	summary.TotalGainLoss = summary.TotalValue.Sub(summary.TotalCost)
	if !summary.TotalCost.IsZero() {
		summary.TotalGainLossPercentage = summary.TotalGainLoss.DivRound(summary.TotalCost, 4).Mul(hundred)
	}
	return summary
}
