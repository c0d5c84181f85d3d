package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/foliotrack/foliotrack/internal/services/insights"
)

// DefaultSimulationDays is the horizon used when the request omits ?days=.
const DefaultSimulationDays = 30

// portfolioIDFromPath extracts the {id} path segment after the prefix.
func portfolioIDFromPath(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "portfolio id is required in path")
		return "", false
	}
	return id, true
}

// simulationParams parses ?days= and ?compound= query parameters.
func simulationParams(w http.ResponseWriter, r *http.Request) (int, bool, bool) {
	days := DefaultSimulationDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "days must be an integer")
			return 0, false, false
		}
		days = parsed
	}
	compound := r.URL.Query().Get("compound") == "true"
	return days, compound, true
}

// handleDiversification handles GET /api/insights/diversification/{id}.
func (s *Server) handleDiversification(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uc, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	portfolioID, ok := portfolioIDFromPath(w, r, "/api/insights/diversification/")
	if !ok {
		return
	}

	result, err := s.app.InsightsService.DiversificationScore(r.Context(), uc.Username, portfolioID)
	if err != nil {
		writePortfolioError(w, err)
		return
	}
	WriteData(w, http.StatusOK, result)
}

// handleRecommendations handles GET /api/insights/recommendations/{id}.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uc, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	portfolioID, ok := portfolioIDFromPath(w, r, "/api/insights/recommendations/")
	if !ok {
		return
	}

	rec, err := s.app.InsightsService.Recommendation(r.Context(), uc.Username, portfolioID)
	if err != nil {
		writePortfolioError(w, err)
		return
	}
	WriteData(w, http.StatusOK, rec)
}

// handleSimulation handles GET /api/insights/simulation/{id}?days=&compound=.
func (s *Server) handleSimulation(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uc, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	days, compound, ok := simulationParams(w, r)
	if !ok {
		return
	}

	result, err := s.app.InsightsService.Simulate(r.Context(), uc.Username, portfolioID, days, compound)
	if err != nil {
		if errors.Is(err, insights.ErrInvalidHorizon) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		writePortfolioError(w, err)
		return
	}
	WriteData(w, http.StatusOK, result)
}

// handleSimulationChart handles GET /api/insights/simulation/{id}/chart?days=.
func (s *Server) handleSimulationChart(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uc, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	days, _, ok := simulationParams(w, r)
	if !ok {
		return
	}

	png, err := s.app.InsightsService.SimulationChart(r.Context(), uc.Username, portfolioID, days)
	if err != nil {
		if errors.Is(err, insights.ErrInvalidHorizon) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		writePortfolioError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
