package server

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/foliotrack/foliotrack/internal/services/portfolio"
)

// writePortfolioError maps portfolio service errors onto HTTP statuses.
func writePortfolioError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, portfolio.ErrNotFound), errors.Is(err, portfolio.ErrAssetNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, portfolio.ErrOwnershipMismatch):
		WriteError(w, http.StatusForbidden, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// handlePortfolios handles GET/POST /api/portfolios.
func (s *Server) handlePortfolios(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	uc, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		portfolios, err := s.app.PortfolioService.ListPortfolios(r.Context(), uc.Username)
		if err != nil {
			writePortfolioError(w, err)
			return
		}
		WriteData(w, http.StatusOK, portfolios)

	case http.MethodPost:
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		p, err := s.app.PortfolioService.CreatePortfolio(r.Context(), uc.Username, req.Name, req.Description)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteData(w, http.StatusCreated, p)
	}
}

// handlePortfolioByID handles GET/PUT/DELETE /api/portfolios/{id}.
func (s *Server) handlePortfolioByID(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete) {
		return
	}
	uc, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		detail, err := s.app.PortfolioService.GetPortfolioDetail(r.Context(), uc.Username, portfolioID)
		if err != nil {
			writePortfolioError(w, err)
			return
		}
		WriteData(w, http.StatusOK, detail)

	case http.MethodPut:
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		p, err := s.app.PortfolioService.UpdatePortfolio(r.Context(), uc.Username, portfolioID, req.Name, req.Description)
		if err != nil {
			writePortfolioError(w, err)
			return
		}
		WriteData(w, http.StatusOK, p)

	case http.MethodDelete:
		if err := s.app.PortfolioService.DeletePortfolio(r.Context(), uc.Username, portfolioID); err != nil {
			writePortfolioError(w, err)
			return
		}
		WriteData(w, http.StatusOK, map[string]string{"deleted": portfolioID})
	}
}

// handlePortfolioRefresh handles POST /api/portfolios/{id}/refresh.
func (s *Server) handlePortfolioRefresh(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	uc, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	refreshed, err := s.app.PortfolioService.RefreshPrices(r.Context(), uc.Username, portfolioID)
	if err != nil {
		writePortfolioError(w, err)
		return
	}
	WriteData(w, http.StatusOK, map[string]int{"refreshed": refreshed})
}

// handlePortfolioAssets handles POST /api/portfolios/{id}/assets.
func (s *Server) handlePortfolioAssets(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	uc, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		TickerSymbol  string          `json:"ticker_symbol"`
		Quantity      decimal.Decimal `json:"quantity"`
		PurchasePrice decimal.Decimal `json:"purchase_price"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	asset, err := s.app.PortfolioService.AddAsset(r.Context(), uc.Username, portfolioID, req.TickerSymbol, req.Quantity, req.PurchasePrice)
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) || errors.Is(err, portfolio.ErrOwnershipMismatch) {
			writePortfolioError(w, err)
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteData(w, http.StatusCreated, asset)
}

// handlePortfolioAssetByID handles DELETE /api/portfolios/{id}/assets/{assetID}.
func (s *Server) handlePortfolioAssetByID(w http.ResponseWriter, r *http.Request, portfolioID, assetID string) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	uc, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if err := s.app.PortfolioService.RemoveAsset(r.Context(), uc.Username, portfolioID, assetID); err != nil {
		writePortfolioError(w, err)
		return
	}
	WriteData(w, http.StatusOK, map[string]string{"deleted": assetID})
}
