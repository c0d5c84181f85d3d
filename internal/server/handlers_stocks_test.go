package server

import (
	"net/http"
	"testing"
)

func TestStockQuoteEndpoint(t *testing.T) {
	h := newTestServer(t, &stubQuotes{prices: map[string]string{"AAPL": "185.64"}})
	token := registerUser(t, h, "alice", "alice@example.com")

	rec := doJSON(t, h, http.MethodGet, "/api/stocks/quote/aapl", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("quote failed with %d: %s", rec.Code, rec.Body.String())
	}
	data := envelope(t, rec)
	if data["symbol"] != "AAPL" {
		t.Errorf("expected symbol AAPL, got %v", data["symbol"])
	}
	if data["price"] != "185.64" {
		t.Errorf("expected price 185.64, got %v", data["price"])
	}
}

func TestStockQuoteEndpoint_SourceFailure(t *testing.T) {
	h := newTestServer(t, &stubQuotes{})
	token := registerUser(t, h, "alice", "alice@example.com")

	rec := doJSON(t, h, http.MethodGet, "/api/stocks/quote/NOPE", token, nil)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502 when quote source fails, got %d", rec.Code)
	}
}

func TestStockOverviewEndpoint(t *testing.T) {
	h := newTestServer(t, &stubQuotes{prices: map[string]string{"AAPL": "185.64"}})
	token := registerUser(t, h, "alice", "alice@example.com")

	rec := doJSON(t, h, http.MethodGet, "/api/stocks/overview/AAPL", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("overview failed with %d: %s", rec.Code, rec.Body.String())
	}
	data := envelope(t, rec)
	if data["sector"] != "TECHNOLOGY" {
		t.Errorf("expected sector TECHNOLOGY, got %v", data["sector"])
	}
}

func TestStockTimeSeriesEndpoint(t *testing.T) {
	h := newTestServer(t, &stubQuotes{prices: map[string]string{"AAPL": "185.64"}})
	token := registerUser(t, h, "alice", "alice@example.com")

	rec := doJSON(t, h, http.MethodGet, "/api/stocks/timeseries/AAPL", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("time series failed with %d: %s", rec.Code, rec.Body.String())
	}
	data := envelope(t, rec)
	bars, _ := data["data"].([]interface{})
	if len(bars) != 2 {
		t.Errorf("expected 2 bars, got %d", len(bars))
	}
}

func TestStockEndpoints_RequireAuthAndSymbol(t *testing.T) {
	h := newTestServer(t, &stubQuotes{prices: map[string]string{"AAPL": "185.64"}})

	rec := doJSON(t, h, http.MethodGet, "/api/stocks/quote/AAPL", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	token := registerUser(t, h, "alice", "alice@example.com")
	rec = doJSON(t, h, http.MethodGet, "/api/stocks/quote/", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing symbol, got %d", rec.Code)
	}
}
