// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ismailshah-123/movie-recommender/internal/config"
	"github.com/Ismailshah-123/movie-recommender/internal/metrics"
	"github.com/Ismailshah-123/movie-recommender/internal/models"
	"github.com/Ismailshah-123/movie-recommender/internal/recommend"
	"github.com/Ismailshah-123/movie-recommender/internal/store"
)

// Enricher attaches TMDB metadata to result lists. The api package accepts
// the interface so enrichment is optional and mockable.
type Enricher interface {
	Enrich(ctx context.Context, items []models.RankedRecommendation) []models.EnrichedRecommendation
	EnrichMovies(ctx context.Context, movies []models.Movie) []models.EnrichedRecommendation
}

// Handler holds the dependencies of all API endpoints.
type Handler struct {
	store    *store.Store
	engine   *recommend.Engine
	enricher Enricher // nil when TMDB enrichment is disabled
	cfg      config.RecommendConfig
	log      zerolog.Logger
}

// NewHandler builds the endpoint handler set. enricher may be nil, in which
// case results ship without metadata.
func NewHandler(s *store.Store, engine *recommend.Engine, enricher Enricher, cfg config.RecommendConfig, log zerolog.Logger) *Handler {
	return &Handler{
		store:    s,
		engine:   engine,
		enricher: enricher,
		cfg:      cfg,
		log:      log.With().Str("component", "api").Logger(),
	}
}

// RecommendationsResponse is the data payload of GET /recommendations.
type RecommendationsResponse struct {
	Items           []models.EnrichedRecommendation `json:"items"`
	TotalCandidates int                             `json:"total_candidates"`
	NoMatch         bool                            `json:"no_match,omitempty"`
}

// Recommendations handles GET /api/v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	topN := getIntParam(r, "top_n", h.cfg.DefaultTopN)
	if topN > h.cfg.MaxTopN {
		topN = h.cfg.MaxTopN
	}

	req := RecommendationsRequest{
		UserID: getIntParam(r, "user_id", 0),
		Title:  r.URL.Query().Get("title"),
		Genres: parseCommaSeparated(r.URL.Query().Get("genres")),
		TopN:   topN,
		Alpha:  getFloatParam(r, "alpha", h.cfg.DefaultAlpha),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.RecordRecommendation("invalid_input", 0, time.Since(start))
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		UserID:    req.UserID,
		SeedTitle: req.Title,
		Genres:    req.Genres,
		TopN:      req.TopN,
		Alpha:     req.Alpha,
	})
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrUnknownUser):
			metrics.RecordRecommendation("unknown_user", 0, time.Since(start))
			respondError(w, http.StatusNotFound, ErrCodeUnknownUser, "user has no prediction data", err)
		case errors.Is(err, recommend.ErrInvalidInput):
			metrics.RecordRecommendation("invalid_input", 0, time.Since(start))
			respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		default:
			metrics.RecordRecommendation("error", 0, time.Since(start))
			respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "recommendation failed", err)
		}
		return
	}

	outcome := "ok"
	if resp.NoMatch {
		outcome = "no_match"
	}
	metrics.RecordRecommendation(outcome, resp.TotalCandidates, time.Since(start))

	respondSuccess(w, &RecommendationsResponse{
		Items:           h.enrich(r.Context(), resp.Items),
		TotalCandidates: resp.TotalCandidates,
		NoMatch:         resp.NoMatch,
	}, start)
}

// Trending handles GET /api/v1/trending.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	h.sampled(w, r)
}

// WatchHistory handles GET /api/v1/watch-history. The history is a sampled
// simulation, not real user data.
func (h *Handler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	h.sampled(w, r)
}

// sampled serves the shared sampling feed behind /trending and
// /watch-history.
func (h *Handler) sampled(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := SampleRequest{N: getIntParam(r, "n", h.cfg.DefaultTopN)}
	if req.N > h.cfg.MaxTopN {
		req.N = h.cfg.MaxTopN
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	movies := h.engine.Sample(req.N)

	respondSuccess(w, map[string]interface{}{
		"items": h.enrichMovies(r.Context(), movies),
	}, start)
}

// MoviesResponse is the data payload of GET /movies, feeding client-side
// title and genre pickers.
type MoviesResponse struct {
	Movies []models.Movie `json:"movies"`
	Genres []string       `json:"genres"`
}

// Movies handles GET /api/v1/movies.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, &MoviesResponse{
		Movies: h.store.Catalog(),
		Genres: h.store.GenreVocabulary(),
	}, start)
}

// Users handles GET /api/v1/users.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, map[string]interface{}{
		"users": h.store.UserIDs(),
	}, start)
}

// HealthLive handles GET /health/live.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady handles GET /health/ready. Ready means the data store loaded;
// there is no warm-up beyond that.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.store == nil || h.store.Len() == 0 {
		respondError(w, http.StatusServiceUnavailable, ErrCodeNotReady, "data store not loaded", nil)
		return
	}
	respondSuccess(w, map[string]interface{}{
		"status": "ready",
		"movies": h.store.Len(),
		"users":  len(h.store.UserIDs()),
	}, time.Now())
}

// enrich attaches metadata when an enricher is configured, otherwise wraps
// the ranked items unchanged.
func (h *Handler) enrich(ctx context.Context, items []models.RankedRecommendation) []models.EnrichedRecommendation {
	if h.enricher != nil {
		return h.enricher.Enrich(ctx, items)
	}
	out := make([]models.EnrichedRecommendation, len(items))
	for i, item := range items {
		score := item.Score
		out[i] = models.EnrichedRecommendation{Movie: item.Movie, Score: &score}
	}
	return out
}

func (h *Handler) enrichMovies(ctx context.Context, movies []models.Movie) []models.EnrichedRecommendation {
	if h.enricher != nil {
		return h.enricher.EnrichMovies(ctx, movies)
	}
	out := make([]models.EnrichedRecommendation, len(movies))
	for i, m := range movies {
		out[i] = models.EnrichedRecommendation{Movie: m}
	}
	return out
}
