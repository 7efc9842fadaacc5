// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func testPaths(t *testing.T, catalog, predictions, similarity string) Paths {
	t.Helper()
	dir := t.TempDir()
	return Paths{
		Catalog:     writeFile(t, dir, "movies.csv", catalog),
		Predictions: writeFile(t, dir, "predictions.csv", predictions),
		Similarity:  writeFile(t, dir, "similarity.csv", similarity),
	}
}

const (
	validCatalog = `id,title,tags
1,The Matrix,Action|Sci-Fi
2,Toy Story,Animation|Comedy
3,Heat,Action|Crime
`
	validPredictions = `user_id,1,2,3
7,4.5,2.0,3.5
9,1.0,1.0,1.0
`
	validSimilarity = `1.0,0.1,0.6
0.1,1.0,0.2
0.6,0.2,1.0
`
)

func TestLoadValidArtifacts(t *testing.T) {
	t.Parallel()

	s, err := Load(testPaths(t, validCatalog, validPredictions, validSimilarity), zerolog.Nop())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := s.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}

	pos, ok := s.PositionByID(3)
	if !ok || pos != 2 {
		t.Errorf("PositionByID(3) = %d, %v, want 2, true", pos, ok)
	}

	row, ok := s.PredictionRow(7)
	if !ok {
		t.Fatal("PredictionRow(7) not found")
	}
	if row[1] != 4.5 || row[3] != 3.5 {
		t.Errorf("PredictionRow(7) = %v, want movie 1 -> 4.5, movie 3 -> 3.5", row)
	}

	if got := s.SimilarityRow(0)[2]; got != 0.6 {
		t.Errorf("SimilarityRow(0)[2] = %v, want 0.6", got)
	}

	wantUsers := []int{7, 9}
	users := s.UserIDs()
	if len(users) != len(wantUsers) {
		t.Fatalf("UserIDs() = %v, want %v", users, wantUsers)
	}
	for i, id := range wantUsers {
		if users[i] != id {
			t.Errorf("UserIDs()[%d] = %d, want %d", i, users[i], id)
		}
	}

	wantGenres := []string{"Action", "Animation", "Comedy", "Crime", "Sci-Fi"}
	genres := s.GenreVocabulary()
	if len(genres) != len(wantGenres) {
		t.Fatalf("GenreVocabulary() = %v, want %v", genres, wantGenres)
	}
	for i, g := range wantGenres {
		if genres[i] != g {
			t.Errorf("GenreVocabulary()[%d] = %q, want %q", i, genres[i], g)
		}
	}
}

func TestLoadGenresFallbackColumn(t *testing.T) {
	t.Parallel()

	catalog := `id,title,genres
1,The Matrix,Action|Sci-Fi
2,Toy Story,Animation
3,Heat,Crime
`
	s, err := Load(testPaths(t, catalog, validPredictions, validSimilarity), zerolog.Nop())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := s.Catalog()[0].Genres; len(got) != 2 || got[0] != "Action" {
		t.Errorf("Catalog()[0].Genres = %v, want [Action Sci-Fi]", got)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	t.Parallel()

	catalog := `movie,name
1,The Matrix
`
	_, err := Load(testPaths(t, catalog, validPredictions, validSimilarity), zerolog.Nop())
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Load() error = %v, want ErrMissingColumn", err)
	}
}

func TestLoadDimensionMismatch(t *testing.T) {
	t.Parallel()

	similarity := `1.0,0.1
0.1,1.0
`
	_, err := Load(testPaths(t, validCatalog, validPredictions, similarity), zerolog.Nop())
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Load() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestLoadNonSquareSimilarity(t *testing.T) {
	t.Parallel()

	similarity := `1.0,0.1,0.6
0.1,1.0
0.6,0.2,1.0
`
	_, err := Load(testPaths(t, validCatalog, validPredictions, similarity), zerolog.Nop())
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Load() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestLoadMalformedPrediction(t *testing.T) {
	t.Parallel()

	predictions := `user_id,1,2,3
7,abc,2.0,3.5
`
	_, err := Load(testPaths(t, validCatalog, predictions, validSimilarity), zerolog.Nop())
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("Load() error = %v, want ErrMalformedInput", err)
	}
}

func TestLoadDuplicateTitles(t *testing.T) {
	t.Parallel()

	catalog := `id,title,tags
1,Heat,Action
2,Heat,Crime
3,Toy Story,Animation
`
	s, err := Load(testPaths(t, catalog, validPredictions, validSimilarity), zerolog.Nop())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := s.DuplicateTitles(); got != 1 {
		t.Errorf("DuplicateTitles() = %d, want 1", got)
	}
	// First occurrence wins.
	pos, ok := s.PositionByID(1)
	if !ok || pos != 0 {
		t.Errorf("PositionByID(1) = %d, %v, want 0, true", pos, ok)
	}
}
