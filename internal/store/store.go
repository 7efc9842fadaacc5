// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

// Package store holds the immutable Data Store: the movie catalog, the
// precomputed CF prediction table, and the precomputed content-similarity
// matrix.
//
// All three artifacts are loaded once at startup and never mutated, so the
// store is shared by all queries without locking. Any load-time
// inconsistency (missing columns, non-square similarity matrix, dimension
// mismatch against the catalog) is an error; the process never runs with a
// partial store.
//
// Alignment between the differently indexed artifacts is explicit: the
// catalog position of every movie id is computed once at load time and all
// lookups go through it.
package store

import (
	"errors"
	"sort"

	"github.com/Ismailshah-123/movie-recommender/internal/models"
)

// Load-time errors. All of them are fatal at startup.
var (
	// ErrMissingColumn indicates the catalog CSV lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrDimensionMismatch indicates the similarity matrix dimension does
	// not equal the catalog row count.
	ErrDimensionMismatch = errors.New("similarity matrix dimension mismatch")

	// ErrMalformedInput indicates an unparseable cell or row.
	ErrMalformedInput = errors.New("malformed input")
)

// Store is the read-only data store shared by all queries.
type Store struct {
	catalog []models.Movie

	// posByID maps movie id to catalog position. Built once at load;
	// replaces any implicit positional alignment between artifacts.
	posByID map[int]int

	// predictions maps user id -> movie id -> predicted affinity.
	predictions map[int]map[int]float64

	// similarity is the movie-by-movie similarity matrix indexed by
	// catalog position.
	similarity [][]float64

	genres  []string
	userIDs []int

	// duplicateTitles counts catalog titles appearing more than once.
	// Title lookups resolve first-match-wins; the count is surfaced so the
	// ambiguity stays observable.
	duplicateTitles int
}

// Catalog returns the full movie catalog in load order.
// The returned slice is shared and must not be modified.
func (s *Store) Catalog() []models.Movie {
	return s.catalog
}

// Len returns the catalog size.
func (s *Store) Len() int {
	return len(s.catalog)
}

// PositionByID returns the catalog position of a movie id.
func (s *Store) PositionByID(id int) (int, bool) {
	pos, ok := s.posByID[id]
	return pos, ok
}

// PredictionRow returns the CF prediction row for a user, keyed by movie id.
// The returned map is shared and must not be modified.
func (s *Store) PredictionRow(userID int) (map[int]float64, bool) {
	row, ok := s.predictions[userID]
	return row, ok
}

// SimilarityRow returns the content-similarity row for the movie at the
// given catalog position. The returned slice is shared and must not be
// modified.
func (s *Store) SimilarityRow(pos int) []float64 {
	return s.similarity[pos]
}

// UserIDs returns the sorted user ids present in the CF table.
func (s *Store) UserIDs() []int {
	return s.userIDs
}

// GenreVocabulary returns the sorted set of genres across the catalog.
func (s *Store) GenreVocabulary() []string {
	return s.genres
}

// DuplicateTitles returns the number of titles that occur more than once in
// the catalog.
func (s *Store) DuplicateTitles() int {
	return s.duplicateTitles
}

// buildIndexes derives the id index, genre vocabulary, sorted user ids, and
// the duplicate-title count from the loaded artifacts.
func (s *Store) buildIndexes() {
	s.posByID = make(map[int]int, len(s.catalog))
	titleCount := make(map[string]int, len(s.catalog))
	genreSet := make(map[string]struct{})

	for pos, m := range s.catalog {
		// First occurrence wins when ids repeat, matching title policy.
		if _, seen := s.posByID[m.ID]; !seen {
			s.posByID[m.ID] = pos
		}
		titleCount[m.Title]++
		for _, g := range m.Genres {
			genreSet[g] = struct{}{}
		}
	}

	for _, n := range titleCount {
		if n > 1 {
			s.duplicateTitles++
		}
	}

	s.genres = make([]string, 0, len(genreSet))
	for g := range genreSet {
		s.genres = append(s.genres, g)
	}
	sort.Strings(s.genres)

	s.userIDs = make([]int, 0, len(s.predictions))
	for id := range s.predictions {
		s.userIDs = append(s.userIDs, id)
	}
	sort.Ints(s.userIDs)
}
