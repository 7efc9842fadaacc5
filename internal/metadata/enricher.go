// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

package metadata

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Ismailshah-123/movie-recommender/internal/models"
)

// Enricher fans metadata lookups out over a ranked list with bounded
// concurrency. Results are written by index so ranked order is preserved,
// and a failed lookup degrades that item to Metadata == nil instead of
// failing the whole response.
type Enricher struct {
	fetcher Fetcher
	limit   int
	timeout time.Duration
	log     zerolog.Logger
}

// NewEnricher builds an enricher. limit bounds concurrent lookups; timeout
// bounds each individual lookup.
func NewEnricher(fetcher Fetcher, limit int, timeout time.Duration, log zerolog.Logger) *Enricher {
	if limit <= 0 {
		limit = 4
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Enricher{
		fetcher: fetcher,
		limit:   limit,
		timeout: timeout,
		log:     log.With().Str("component", "enricher").Logger(),
	}
}

// Enrich attaches metadata to each ranked item. Lookup errors are logged
// and counted but never returned; the item ships without metadata.
func (e *Enricher) Enrich(ctx context.Context, items []models.RankedRecommendation) []models.EnrichedRecommendation {
	out := make([]models.EnrichedRecommendation, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)

	for i, item := range items {
		score := item.Score
		out[i] = models.EnrichedRecommendation{Movie: item.Movie, Score: &score}

		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()

			md, err := e.fetcher.FetchMovie(callCtx, item.Movie.ID)
			if err != nil {
				e.log.Debug().
					Err(err).
					Int("movie_id", item.Movie.ID).
					Str("title", item.Movie.Title).
					Msg("Metadata lookup failed, serving title only")
				return nil
			}
			out[i].Metadata = md
			return nil
		})
	}

	// Goroutines always return nil; Wait only synchronizes the fan-out.
	_ = g.Wait()

	return out
}

// EnrichMovies enriches an unranked movie list, for the trending and
// watch-history feeds. The rows carry no score.
func (e *Enricher) EnrichMovies(ctx context.Context, movies []models.Movie) []models.EnrichedRecommendation {
	items := make([]models.RankedRecommendation, len(movies))
	for i, m := range movies {
		items[i] = models.RankedRecommendation{Movie: m}
	}
	out := e.Enrich(ctx, items)
	for i := range out {
		out[i].Score = nil
	}
	return out
}
