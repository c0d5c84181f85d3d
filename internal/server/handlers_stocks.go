package server

import (
	"net/http"
	"strings"
)

// symbolFromPath extracts and validates the {symbol} path segment.
func symbolFromPath(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	symbol := strings.ToUpper(strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/"))
	if symbol == "" || strings.Contains(symbol, "/") {
		WriteError(w, http.StatusBadRequest, "symbol is required in path")
		return "", false
	}
	return symbol, true
}

// handleStockQuote handles GET /api/stocks/quote/{symbol}.
func (s *Server) handleStockQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uc, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	symbol, ok := symbolFromPath(w, r, "/api/stocks/quote/")
	if !ok {
		return
	}

	quote, err := s.app.MarketService.GetQuote(r.Context(), symbol)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Str("username", uc.Username).Err(err).Msg("Quote lookup failed")
		WriteError(w, http.StatusBadGateway, "quote source unavailable for "+symbol)
		return
	}
	WriteData(w, http.StatusOK, quote)
}

// handleStockOverview handles GET /api/stocks/overview/{symbol}.
func (s *Server) handleStockOverview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	symbol, ok := symbolFromPath(w, r, "/api/stocks/overview/")
	if !ok {
		return
	}

	overview, err := s.app.MarketService.GetOverview(r.Context(), symbol)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "overview unavailable for "+symbol)
		return
	}
	WriteData(w, http.StatusOK, overview)
}

// handleStockTimeSeries handles GET /api/stocks/timeseries/{symbol}.
func (s *Server) handleStockTimeSeries(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	symbol, ok := symbolFromPath(w, r, "/api/stocks/timeseries/")
	if !ok {
		return
	}

	series, err := s.app.MarketService.GetTimeSeriesDaily(r.Context(), symbol)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "time series unavailable for "+symbol)
		return
	}
	WriteData(w, http.StatusOK, series)
}
