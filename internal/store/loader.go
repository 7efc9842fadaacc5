// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ismailshah-123/movie-recommender/internal/models"
)

// Paths names the three CSV artifacts the store is built from.
type Paths struct {
	Catalog     string
	Predictions string
	Similarity  string
}

// Load reads all three artifacts, validates their alignment, and returns an
// immutable store. Any failure is fatal to the caller; a partial store is
// never returned.
func Load(paths Paths, log zerolog.Logger) (*Store, error) {
	start := time.Now()

	catalog, err := loadCatalog(paths.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", paths.Catalog, err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("load catalog %s: %w: no rows", paths.Catalog, ErrMalformedInput)
	}

	predictions, err := loadPredictions(paths.Predictions)
	if err != nil {
		return nil, fmt.Errorf("load predictions %s: %w", paths.Predictions, err)
	}

	similarity, err := loadSimilarity(paths.Similarity)
	if err != nil {
		return nil, fmt.Errorf("load similarity %s: %w", paths.Similarity, err)
	}
	if len(similarity) != len(catalog) {
		return nil, fmt.Errorf("%w: matrix is %dx%d, catalog has %d movies",
			ErrDimensionMismatch, len(similarity), len(similarity), len(catalog))
	}

	s := &Store{
		catalog:     catalog,
		predictions: predictions,
		similarity:  similarity,
	}
	s.buildIndexes()

	if s.duplicateTitles > 0 {
		log.Warn().
			Int("duplicate_titles", s.duplicateTitles).
			Msg("Catalog contains duplicate titles; title lookups resolve to the first occurrence")
	}

	log.Info().
		Int("movies", len(catalog)).
		Int("users", len(predictions)).
		Int("genres", len(s.genres)).
		Dur("elapsed", time.Since(start)).
		Msg("Data store loaded")

	return s, nil
}

// loadCatalog parses the movie catalog CSV. Required columns are id and
// title; genre labels come from a pipe-delimited tags column, falling back
// to a genres column when tags is absent.
func loadCatalog(path string) ([]models.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	idCol, titleCol, genreCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id", "movie_id", "movieid":
			if idCol == -1 {
				idCol = i
			}
		case "title":
			titleCol = i
		case "tags":
			genreCol = i
		case "genres":
			if genreCol == -1 {
				genreCol = i
			}
		}
	}
	if idCol == -1 {
		return nil, fmt.Errorf("%w: id", ErrMissingColumn)
	}
	if titleCol == -1 {
		return nil, fmt.Errorf("%w: title", ErrMissingColumn)
	}

	var catalog []models.Movie
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, line, err)
		}
		if idCol >= len(record) || titleCol >= len(record) {
			return nil, fmt.Errorf("%w: line %d: short row", ErrMalformedInput, line)
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[idCol]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: movie id %q", ErrMalformedInput, line, record[idCol])
		}

		m := models.Movie{
			ID:    id,
			Title: strings.TrimSpace(record[titleCol]),
		}
		if genreCol != -1 && genreCol < len(record) {
			m.Genres = splitGenres(record[genreCol])
		}
		catalog = append(catalog, m)
	}

	return catalog, nil
}

// splitGenres splits a pipe-delimited genre cell, dropping empty labels.
func splitGenres(cell string) []string {
	parts := strings.Split(cell, "|")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			genres = append(genres, g)
		}
	}
	if len(genres) == 0 {
		return nil
	}
	return genres
}

// loadPredictions parses the CF prediction table. The header is
// user_id,<movieID>,<movieID>,... and each row holds one user's predicted
// affinity per movie.
func loadPredictions(path string) (map[int]map[int]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: user_id plus at least one movie column", ErrMissingColumn)
	}
	if strings.ToLower(strings.TrimSpace(header[0])) != "user_id" {
		return nil, fmt.Errorf("%w: user_id", ErrMissingColumn)
	}

	movieIDs := make([]int, len(header)-1)
	for i, cell := range header[1:] {
		id, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			return nil, fmt.Errorf("%w: header movie id %q", ErrMalformedInput, cell)
		}
		movieIDs[i] = id
	}

	predictions := make(map[int]map[int]float64)
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, line, err)
		}

		userID, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: user id %q", ErrMalformedInput, line, record[0])
		}

		row := make(map[int]float64, len(movieIDs))
		for i, cell := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: prediction %q", ErrMalformedInput, line, cell)
			}
			row[movieIDs[i]] = v
		}
		predictions[userID] = row
	}

	return predictions, nil
}

// loadSimilarity parses the headerless square similarity matrix. Rows and
// columns follow catalog order; squareness is validated here and the
// catalog-dimension check happens in Load.
func loadSimilarity(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Squareness is validated below, with a clearer error than csv's
	// field-count check.
	r.FieldsPerRecord = -1

	var matrix [][]float64
	for line := 1; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, line, err)
		}

		row := make([]float64, len(record))
		for i, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: similarity %q", ErrMalformedInput, line, cell)
			}
			row[i] = v
		}
		matrix = append(matrix, row)
	}

	for i, row := range matrix {
		if len(row) != len(matrix) {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d",
				ErrDimensionMismatch, i+1, len(row), len(matrix))
		}
	}

	return matrix, nil
}
