package interfaces

import (
	"context"

	"github.com/foliotrack/foliotrack/internal/models"
)

// QuoteClient fetches market data from the external quote source.
// All methods return ErrQuoteUnavailable-wrapping errors when the source
// cannot produce data; callers decide whether that is fatal.
type QuoteClient interface {
	GetQuote(ctx context.Context, symbol string) (*models.StockQuote, error)
	GetOverview(ctx context.Context, symbol string) (*models.StockOverview, error)
	GetTimeSeriesDaily(ctx context.Context, symbol string) (*models.TimeSeries, error)
}
