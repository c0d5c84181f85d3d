// Package models defines data structures for foliotrack
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio represents a named collection of assets owned by one user.
type Portfolio struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Username    string    `json:"username"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Asset represents a single ticker position within a portfolio.
// CurrentPrice stays unset until the first successful quote fetch.
type Asset struct {
	ID            string              `json:"id"`
	PortfolioID   string              `json:"portfolio_id"`
	TickerSymbol  string              `json:"ticker_symbol"`
	Quantity      decimal.Decimal     `json:"quantity"`
	PurchasePrice decimal.Decimal     `json:"purchase_price"`
	CurrentPrice  decimal.NullDecimal `json:"current_price"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ValuedAsset is an Asset with its derived valuation figures.
// Computed on demand, never persisted.
type ValuedAsset struct {
	Asset
	TotalValue         decimal.Decimal `json:"total_value"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	GainLoss           decimal.Decimal `json:"gain_loss"`
	GainLossPercentage decimal.Decimal `json:"gain_loss_percentage"`
}

// PortfolioSummary aggregates valuation figures across a portfolio's assets.
type PortfolioSummary struct {
	TotalValue              decimal.Decimal `json:"total_value"`
	TotalCost               decimal.Decimal `json:"total_cost"`
	TotalGainLoss           decimal.Decimal `json:"total_gain_loss"`
	TotalGainLossPercentage decimal.Decimal `json:"total_gain_loss_percentage"`
}

// PortfolioDetail is the full read view of a portfolio: valued assets plus totals.
type PortfolioDetail struct {
	Portfolio
	Assets                  []ValuedAsset   `json:"assets"`
	TotalValue              decimal.Decimal `json:"total_value"`
	TotalCost               decimal.Decimal `json:"total_cost"`
	TotalGainLoss           decimal.Decimal `json:"total_gain_loss"`
	TotalGainLossPercentage decimal.Decimal `json:"total_gain_loss_percentage"`
}
