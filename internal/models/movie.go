// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

// Package models defines the shared domain types used across the store,
// recommendation engine, metadata enrichment, and API layers.
package models

// Movie is a single catalog entry. Identity is ID; Title is a human-facing
// lookup key and is not guaranteed unique. Movies are loaded once at startup
// and immutable thereafter.
type Movie struct {
	// ID is the TMDB movie identifier.
	ID int `json:"id"`

	// Title is the movie title as it appears in the catalog.
	Title string `json:"title"`

	// Genres is the set of genre tags derived from the catalog's
	// pipe-delimited tags/genres column. Empty when neither column exists.
	Genres []string `json:"genres"`
}

// HasAnyGenre reports whether the movie carries at least one of the given
// genres. An empty filter matches every movie.
func (m Movie) HasAnyGenre(filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, want := range filter {
		for _, g := range m.Genres {
			if g == want {
				return true
			}
		}
	}
	return false
}

// RankedRecommendation is a movie with its blended hybrid score attached.
// Scores are in [0,1]; lists are ordered descending by score with ties
// keeping catalog order.
type RankedRecommendation struct {
	Movie Movie `json:"movie"`

	// Score is the hybrid score: alpha*cf_norm + (1-alpha)*content_norm.
	Score float64 `json:"score"`
}

// MovieMetadata holds the enrichment payload fetched from TMDB for a single
// movie. Absent fields are zero-valued; a failed lookup yields no metadata
// at all rather than a partially trusted one.
type MovieMetadata struct {
	// PosterURL is the full poster image URL, or empty when TMDB has no
	// poster for the movie.
	PosterURL string `json:"poster_url,omitempty"`

	// TrailerURL is the YouTube watch URL of the first trailer, or empty.
	TrailerURL string `json:"trailer_url,omitempty"`

	Overview    string   `json:"overview"`
	Genres      []string `json:"genres"`
	Homepage    string   `json:"homepage"`
	ReleaseDate string   `json:"release_date"`
	Rating      float64  `json:"rating"`
}

// EnrichedRecommendation is a ranked movie plus its best-effort metadata.
// Metadata is nil when the lookup failed or enrichment is disabled; the
// presentation layer renders such rows title-only.
type EnrichedRecommendation struct {
	Movie Movie `json:"movie"`

	// Score is nil for unranked rows (trending, watch history). Ranked rows
	// always carry it, including a blended score of exactly zero.
	Score *float64 `json:"score,omitempty"`

	Metadata *MovieMetadata `json:"metadata,omitempty"`
}
