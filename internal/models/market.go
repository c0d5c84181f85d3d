package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockQuote is the current-price snapshot for a symbol.
type StockQuote struct {
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent string          `json:"change_percent"`
	Volume        int64           `json:"volume"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	Open          decimal.Decimal `json:"open"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	FetchedAt     time.Time       `json:"fetched_at"`
}

// StockOverview holds company fundamentals for a symbol.
type StockOverview struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Sector        string `json:"sector"`
	Industry      string `json:"industry"`
	MarketCap     string `json:"market_cap"`
	PERatio       string `json:"pe_ratio"`
	DividendYield string `json:"dividend_yield"`
}

// DailyBar is one day of OHLCV data.
type DailyBar struct {
	Date   string          `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// TimeSeries is a daily price history for a symbol, newest first.
type TimeSeries struct {
	Symbol string     `json:"symbol"`
	Bars   []DailyBar `json:"data"`
}
