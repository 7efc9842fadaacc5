// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

// Package metadata enriches ranked movies with poster, trailer, and detail
// data from TMDB. Lookups go through a rate-limited HTTP client, a circuit
// breaker, and an LRU memo cache; every failure degrades to a title-only
// record and never fails the recommendation itself.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Ismailshah-123/movie-recommender/internal/config"
	"github.com/Ismailshah-123/movie-recommender/internal/metrics"
	"github.com/Ismailshah-123/movie-recommender/internal/models"
)

// ErrNotFound indicates TMDB has no record for the movie id.
var ErrNotFound = errors.New("movie not found")

// Fetcher is the lookup contract shared by the raw client, the circuit
// breaker, and the memo cache, so they compose in any order.
type Fetcher interface {
	FetchMovie(ctx context.Context, movieID int) (*models.MovieMetadata, error)
}

// Ensure Client implements Fetcher.
var _ Fetcher = (*Client)(nil)

// Client is a TMDB REST API client.
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	language     string
	httpClient   *http.Client
	limiter      *rate.Limiter
	log          zerolog.Logger
}

// NewClient creates a TMDB client from config. Requests are throttled
// client-side to stay under TMDB's rate limits.
func NewClient(cfg config.TMDBConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimSuffix(cfg.ImageBaseURL, "/"),
		apiKey:       cfg.APIKey,
		language:     cfg.Language,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		log:     log.With().Str("component", "tmdb").Logger(),
	}
}

// movieDetails is the subset of TMDB's movie details response we use.
type movieDetails struct {
	Overview    string  `json:"overview"`
	Homepage    string  `json:"homepage"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
}

// movieVideos is the subset of TMDB's videos response we use.
type movieVideos struct {
	Results []struct {
		Key  string `json:"key"`
		Site string `json:"site"`
		Type string `json:"type"`
	} `json:"results"`
}

// FetchMovie retrieves full metadata for a movie. Details are required;
// the trailer lookup is best effort and leaves TrailerURL empty on failure.
func (c *Client) FetchMovie(ctx context.Context, movieID int) (*models.MovieMetadata, error) {
	md, err := c.FetchDetails(ctx, movieID)
	if err != nil {
		return nil, err
	}

	trailer, err := c.FetchTrailer(ctx, movieID)
	if err != nil {
		c.log.Debug().Err(err).Int("movie_id", movieID).Msg("Trailer lookup failed")
	} else {
		md.TrailerURL = trailer
	}

	return md, nil
}

// FetchDetails retrieves poster, overview, genres, homepage, release date,
// and rating for a movie. A missing homepage falls back to the movie's
// public TMDB page.
func (c *Client) FetchDetails(ctx context.Context, movieID int) (*models.MovieMetadata, error) {
	var details movieDetails
	endpoint := fmt.Sprintf("/movie/%d", movieID)
	if err := c.get(ctx, endpoint, &details); err != nil {
		return nil, fmt.Errorf("tmdb details for movie %d: %w", movieID, err)
	}

	md := &models.MovieMetadata{
		Overview:    details.Overview,
		Homepage:    details.Homepage,
		ReleaseDate: details.ReleaseDate,
		Rating:      details.VoteAverage,
	}
	if md.Homepage == "" {
		md.Homepage = fmt.Sprintf("https://www.themoviedb.org/movie/%d", movieID)
	}
	if details.PosterPath != "" {
		md.PosterURL = c.imageBaseURL + details.PosterPath
	}
	for _, g := range details.Genres {
		md.Genres = append(md.Genres, g.Name)
	}

	return md, nil
}

// FetchTrailer returns the YouTube watch URL of the movie's first trailer,
// or empty when the movie has none.
func (c *Client) FetchTrailer(ctx context.Context, movieID int) (string, error) {
	var videos movieVideos
	endpoint := fmt.Sprintf("/movie/%d/videos", movieID)
	if err := c.get(ctx, endpoint, &videos); err != nil {
		return "", fmt.Errorf("tmdb videos for movie %d: %w", movieID, err)
	}

	for _, v := range videos.Results {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return "https://www.youtube.com/watch?v=" + v.Key, nil
		}
	}
	return "", nil
}

// get performs a rate-limited GET against a TMDB endpoint and decodes the
// JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s%s?api_key=%s&language=%s", c.baseURL, endpoint, c.apiKey, c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordMetadataFetch("failure", time.Since(start))
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.RecordMetadataFetch("failure", time.Since(start))
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		metrics.RecordMetadataFetch("failure", time.Since(start))
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 512))
		if readErr != nil {
			return fmt.Errorf("status %d (failed to read body)", resp.StatusCode)
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordMetadataFetch("failure", time.Since(start))
		return fmt.Errorf("decode response: %w", err)
	}

	metrics.RecordMetadataFetch("success", time.Since(start))
	return nil
}
