// Package server exposes the dashboard's JSON API. It only moves core output
// types over HTTP; all parsing and classification lives in the core
// packages.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"riftbound-tracker/internal/config"
	"riftbound-tracker/internal/service"
	"riftbound-tracker/internal/store"
)

type DashboardServer struct {
	decks             *service.DeckService
	collection        *service.CollectionService
	comparisons       *service.ComparisonService
	defaultMaxMissing int
	logger            zerolog.Logger
}

func NewDashboardServer(
	decks *service.DeckService,
	collection *service.CollectionService,
	comparisons *service.ComparisonService,
	cfg *config.Config,
	logger zerolog.Logger,
) *DashboardServer {
	return &DashboardServer{
		decks:             decks,
		collection:        collection,
		comparisons:       comparisons,
		defaultMaxMissing: cfg.Compare.MaxMissing,
		logger:            logger,
	}
}

// Register attaches the API routes to the mux.
func (s *DashboardServer) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/decks", s.handleDecks)
	mux.HandleFunc("GET /api/collection", s.handleCollection)
	mux.HandleFunc("GET /api/comparisons", s.handleComparisons)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
}

func (s *DashboardServer) handleDecks(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.decks.Decks(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *DashboardServer) handleCollection(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.collection.Collection(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *DashboardServer) handleComparisons(w http.ResponseWriter, r *http.Request) {
	maxMissing := s.defaultMaxMissing
	if raw := r.URL.Query().Get("maxMissing"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "maxMissing must be a non-negative integer",
			})
			return
		}
		maxMissing = parsed
	}

	results, err := s.comparisons.Comparisons(r.Context(), maxMissing)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"maxMissing":  maxMissing,
		"comparisons": results,
	})
}

// handleRefresh re-scrapes decks and/or the collection, controlled by the
// "target" query parameter (decks, collection, or all).
func (s *DashboardServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	if target == "" {
		target = "all"
	}

	switch target {
	case "decks", "collection", "all":
	default:
		s.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "target must be one of decks, collection, all",
		})
		return
	}

	if target == "decks" || target == "all" {
		if _, err := s.decks.RefreshDecks(r.Context()); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if target == "collection" || target == "all" {
		if _, err := s.collection.RefreshCollection(r.Context()); err != nil {
			s.writeError(w, err)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"refreshed": target})
}

func (s *DashboardServer) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, store.ErrNoSnapshot) {
		status = http.StatusNotFound
	}
	s.logger.Error().Err(err).Int("status", status).Msg("request failed")
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *DashboardServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}
