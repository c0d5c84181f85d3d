package server

import (
	"net/http"
	"strings"

	"github.com/foliotrack/foliotrack/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Auth
	mux.HandleFunc("/api/auth/register", s.handleAuthRegister)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/me", s.handleAuthMe)

	// Portfolios
	mux.HandleFunc("/api/portfolios/", s.routePortfolios)
	mux.HandleFunc("/api/portfolios", s.handlePortfolios)

	// Stocks
	mux.HandleFunc("/api/stocks/quote/", s.handleStockQuote)
	mux.HandleFunc("/api/stocks/overview/", s.handleStockOverview)
	mux.HandleFunc("/api/stocks/timeseries/", s.handleStockTimeSeries)

	// Insights
	mux.HandleFunc("/api/insights/diversification/", s.handleDiversification)
	mux.HandleFunc("/api/insights/recommendations/", s.handleRecommendations)
	mux.HandleFunc("/api/insights/simulation/", s.routeSimulation)
}

// routePortfolios dispatches /api/portfolios/{id}[/assets[/{assetID}]|/refresh]
// to the appropriate handler.
func (s *Server) routePortfolios(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/portfolios/")
	if path == "" {
		s.handlePortfolios(w, r)
		return
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	portfolioID := parts[0]

	switch {
	case len(parts) == 1:
		s.handlePortfolioByID(w, r, portfolioID)
	case len(parts) == 2 && parts[1] == "refresh":
		s.handlePortfolioRefresh(w, r, portfolioID)
	case len(parts) == 2 && parts[1] == "assets":
		s.handlePortfolioAssets(w, r, portfolioID)
	case len(parts) == 3 && parts[1] == "assets":
		s.handlePortfolioAssetByID(w, r, portfolioID, parts[2])
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// routeSimulation dispatches /api/insights/simulation/{id}[/chart].
func (s *Server) routeSimulation(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/insights/simulation/")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		s.handleSimulation(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "chart":
		s.handleSimulationChart(w, r, parts[0])
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// requireUser extracts the authenticated user from the request context,
// writing a 401 when no bearer token established one.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (*common.UserContext, bool) {
	uc := common.UserContextFromContext(r.Context())
	if uc == nil || uc.Username == "" {
		writeBearerChallenge(w, "authentication required")
		return nil, false
	}
	return uc, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
