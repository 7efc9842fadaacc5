// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

// Package recommend implements the hybrid ranker. It blends a user's
// precomputed collaborative-filtering predictions with content similarity
// to a seed title, each min-max normalized over the candidate set, and
// returns the top-scored movies.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ismailshah-123/movie-recommender/internal/models"
	"github.com/Ismailshah-123/movie-recommender/internal/store"
)

// Sentinel errors returned by the engine.
var (
	// ErrUnknownUser indicates the user id has no row in the prediction table.
	ErrUnknownUser = errors.New("unknown user")

	// ErrInvalidInput indicates a request parameter outside its valid range.
	ErrInvalidInput = errors.New("invalid input")
)

// Config carries the engine's tunable parameters.
type Config struct {
	// DefaultAlpha is the CF weight used when a request does not set one.
	DefaultAlpha float64

	// DefaultTopN is the result count used when a request does not set one.
	DefaultTopN int

	// MaxTopN caps the result count a request may ask for.
	MaxTopN int

	// Seed fixes the sampling RNG for reproducible trending feeds.
	// Zero seeds from the clock.
	Seed int64
}

// Request describes one recommendation query. Alpha weights the CF signal;
// the content signal gets 1-alpha.
type Request struct {
	UserID    int
	SeedTitle string
	Genres    []string
	TopN      int
	Alpha     float64
}

// Response is the ranked result of a recommendation query.
type Response struct {
	Items []models.RankedRecommendation

	// TotalCandidates is the candidate set size after genre filtering.
	TotalCandidates int

	// NoMatch reports that the seed title was not present in the candidate
	// set. Items is empty when set.
	NoMatch bool
}

// Engine ranks movies against the immutable data store. Ranking is
// deterministic; only sampling uses the guarded RNG.
type Engine struct {
	store *store.Store
	cfg   Config
	log   zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine builds an engine over a loaded store.
func NewEngine(s *store.Store, cfg Config, log zerolog.Logger) *Engine {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		store: s,
		cfg:   cfg,
		log:   log.With().Str("component", "recommend").Logger(),
		rng:   rand.New(rand.NewSource(seed)), //nolint:gosec // sampling, not crypto
	}
}

// Recommend runs the hybrid ranking pipeline for one request.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.TopN <= 0 {
		return nil, fmt.Errorf("%w: top_n must be positive, got %d", ErrInvalidInput, req.TopN)
	}
	if req.Alpha < 0 || req.Alpha > 1 {
		return nil, fmt.Errorf("%w: alpha must be in [0, 1], got %g", ErrInvalidInput, req.Alpha)
	}

	// Candidate set: genre filter over the catalog, keeping catalog order.
	// An empty filter admits everything.
	type candidate struct {
		movie models.Movie
		pos   int
	}
	var candidates []candidate
	for pos, m := range e.store.Catalog() {
		if m.HasAnyGenre(req.Genres) {
			candidates = append(candidates, candidate{movie: m, pos: pos})
		}
	}
	if len(candidates) == 0 {
		// The seed is vacuously absent from an empty candidate set.
		return &Response{TotalCandidates: 0, NoMatch: true}, nil
	}

	// Seed resolution is first-match-wins within the candidates. A seed
	// outside the candidate set yields an empty result, not an error.
	seedIdx := -1
	want := strings.TrimSpace(req.SeedTitle)
	for i, c := range candidates {
		if c.movie.Title == want {
			seedIdx = i
			break
		}
	}
	if seedIdx == -1 {
		e.log.Debug().
			Str("title", req.SeedTitle).
			Int("candidates", len(candidates)).
			Msg("Seed title not in candidate set")
		return &Response{TotalCandidates: len(candidates), NoMatch: true}, nil
	}

	// The user lookup comes after seed resolution: a seed miss is a
	// no-match response even when the user is unknown too.
	predictions, ok := e.store.PredictionRow(req.UserID)
	if !ok {
		return nil, fmt.Errorf("%w: user %d has no prediction row", ErrUnknownUser, req.UserID)
	}

	// CF signal: user predictions reindexed to candidates, missing ids
	// score zero.
	cf := make([]float64, len(candidates))
	for i, c := range candidates {
		cf[i] = predictions[c.movie.ID]
	}
	cfNorm, err := Normalize(cf)
	if err != nil {
		return nil, err
	}

	// Content signal: similarity of each candidate to the seed movie.
	simRow := e.store.SimilarityRow(candidates[seedIdx].pos)
	content := make([]float64, len(candidates))
	for i, c := range candidates {
		content[i] = simRow[c.pos]
	}
	contentNorm, err := Normalize(content)
	if err != nil {
		return nil, err
	}

	items := make([]models.RankedRecommendation, len(candidates))
	for i, c := range candidates {
		items[i] = models.RankedRecommendation{
			Movie: c.movie,
			Score: req.Alpha*cfNorm[i] + (1-req.Alpha)*contentNorm[i],
		}
	}

	// Stable sort keeps catalog order for equal scores, so ranking stays
	// deterministic across calls.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})

	topN := req.TopN
	if topN > len(items) {
		topN = len(items)
	}

	return &Response{
		Items:           items[:topN],
		TotalCandidates: len(candidates),
	}, nil
}

// Sample returns n movies drawn uniformly without replacement from the
// catalog, for trending and watch-history style feeds. n larger than the
// catalog returns the whole catalog shuffled.
func (e *Engine) Sample(n int) []models.Movie {
	if n <= 0 {
		return nil
	}
	catalog := e.store.Catalog()
	if n > len(catalog) {
		n = len(catalog)
	}

	e.mu.Lock()
	perm := e.rng.Perm(len(catalog))
	e.mu.Unlock()

	out := make([]models.Movie, n)
	for i := 0; i < n; i++ {
		out[i] = catalog[perm[i]]
	}
	return out
}

// Config returns the engine's configured parameters. The API layer uses it
// to fill request defaults.
func (e *Engine) Config() Config {
	return e.cfg
}
