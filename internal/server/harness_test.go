package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foliotrack/foliotrack/internal/app"
	"github.com/foliotrack/foliotrack/internal/common"
	"github.com/foliotrack/foliotrack/internal/models"
	"github.com/foliotrack/foliotrack/internal/services/insights"
	"github.com/foliotrack/foliotrack/internal/services/market"
	"github.com/foliotrack/foliotrack/internal/services/portfolio"
	"github.com/foliotrack/foliotrack/internal/storage"
)

// stubQuotes implements interfaces.QuoteClient with a fixed price table.
type stubQuotes struct {
	prices map[string]string
}

func (s *stubQuotes) GetQuote(_ context.Context, symbol string) (*models.StockQuote, error) {
	price, ok := s.prices[symbol]
	if !ok {
		return nil, &quoteError{symbol: symbol}
	}
	return &models.StockQuote{
		Symbol:    symbol,
		Price:     decimal.RequireFromString(price),
		FetchedAt: time.Now(),
	}, nil
}

func (s *stubQuotes) GetOverview(_ context.Context, symbol string) (*models.StockOverview, error) {
	if _, ok := s.prices[symbol]; !ok {
		return nil, &quoteError{symbol: symbol}
	}
	return &models.StockOverview{Symbol: symbol, Name: symbol + " Corp", Sector: "TECHNOLOGY"}, nil
}

func (s *stubQuotes) GetTimeSeriesDaily(_ context.Context, symbol string) (*models.TimeSeries, error) {
	if _, ok := s.prices[symbol]; !ok {
		return nil, &quoteError{symbol: symbol}
	}
	return &models.TimeSeries{
		Symbol: symbol,
		Bars: []models.DailyBar{
			{Date: "2024-03-28", Close: decimal.RequireFromString(s.prices[symbol])},
			{Date: "2024-03-27", Close: decimal.RequireFromString(s.prices[symbol])},
		},
	}, nil
}

type quoteError struct {
	symbol string
}

func (e *quoteError) Error() string {
	return "no quote for " + e.symbol
}

// flatSource makes every simulated daily return exactly zero.
type flatSource struct{}

func (flatSource) Float64() float64 { return 0.5 }

// newTestServer wires a full application over temp storage and a stub quote
// client, and returns the HTTP handler.
func newTestServer(t *testing.T, quotes *stubQuotes) http.Handler {
	t.Helper()

	base := t.TempDir()
	cfg := common.NewDefaultConfig()
	cfg.Storage.Internal.Path = filepath.Join(base, "internal")
	cfg.Storage.Portfolio.Path = filepath.Join(base, "portfolio")
	cfg.Storage.Market.Path = filepath.Join(base, "market")
	cfg.Auth.JWTSecret = "test-secret-key"

	logger := common.NewLogger("error")

	store, err := storage.NewManager(logger, cfg)
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	marketSvc := market.NewService(store, quotes, logger)
	portfolioSvc := portfolio.NewService(store, marketSvc, logger)
	insightsSvc := insights.NewService(portfolioSvc, logger, insights.WithSource(flatSource{}))

	a := &app.App{
		Config:           cfg,
		Logger:           logger,
		Storage:          store,
		QuoteClient:      quotes,
		MarketService:    marketSvc,
		PortfolioService: portfolioSvc,
		InsightsService:  insightsSvc,
		StartupTime:      time.Now(),
	}

	return NewServer(a).Handler()
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// envelope decodes the standard {"status":"ok","data":...} response.
func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Status string                 `json:"status"`
		Data   map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	if resp.Status != "ok" {
		t.Fatalf("expected status ok, got %q in %q", resp.Status, rec.Body.String())
	}
	return resp.Data
}

// envelopeList decodes an envelope whose data is a JSON array.
func envelopeList(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var resp struct {
		Status string        `json:"status"`
		Data   []interface{} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return resp.Data
}

// registerUser registers a user and returns their bearer token.
func registerUser(t *testing.T, h http.Handler, username, email string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "hunter22",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed with %d: %s", rec.Code, rec.Body.String())
	}
	token, _ := envelope(t, rec)["token"].(string)
	if token == "" {
		t.Fatal("expected a token from register")
	}
	return token
}

// createPortfolio creates a portfolio and returns its ID.
func createPortfolio(t *testing.T, h http.Handler, token, name string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/portfolios", token, map[string]string{
		"name": name,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create portfolio failed with %d: %s", rec.Code, rec.Body.String())
	}
	id, _ := envelope(t, rec)["id"].(string)
	if id == "" {
		t.Fatal("expected a portfolio id")
	}
	return id
}

// addAsset adds a holding to a portfolio.
func addAsset(t *testing.T, h http.Handler, token, portfolioID, ticker string, quantity, price string) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/portfolios/"+portfolioID+"/assets", token, map[string]interface{}{
		"ticker_symbol":  ticker,
		"quantity":       quantity,
		"purchase_price": price,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add asset failed with %d: %s", rec.Code, rec.Body.String())
	}
}
