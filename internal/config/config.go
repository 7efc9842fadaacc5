// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

// Package config loads and validates application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for all optional settings
//  2. Config File: optional YAML config file (config.yaml)
//  3. Environment Variables: override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Recommend RecommendConfig `koanf:"recommend"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - SERVER_HOST: bind address (default: 0.0.0.0)
//   - SERVER_PORT: listen port (default: 8080)
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DataConfig holds the paths of the precomputed artifacts loaded once at
// startup. All three files are required; a missing or dimensionally
// inconsistent file aborts startup.
//
// Environment Variables:
//   - DATA_CATALOG_PATH: movie catalog CSV (id, title, tags|genres)
//   - DATA_PREDICTIONS_PATH: CF prediction table CSV (rows = users)
//   - DATA_SIMILARITY_PATH: content similarity matrix CSV (square)
type DataConfig struct {
	CatalogPath     string `koanf:"catalog_path"`
	PredictionsPath string `koanf:"predictions_path"`
	SimilarityPath  string `koanf:"similarity_path"`
}

// TMDBConfig holds settings for the TMDB metadata collaborator.
// Enrichment is best-effort: when disabled or failing, recommendation
// responses carry title-only rows.
//
// Environment Variables:
//   - TMDB_ENABLED: enable metadata enrichment (default: true)
//   - TMDB_API_KEY: TMDB API key (required when enabled)
type TMDBConfig struct {
	Enabled      bool          `koanf:"enabled"`
	BaseURL      string        `koanf:"base_url"`
	ImageBaseURL string        `koanf:"image_base_url"`
	APIKey       string        `koanf:"api_key"`
	Language     string        `koanf:"language"`
	Timeout      time.Duration `koanf:"timeout"`

	// RequestsPerSecond and Burst bound the client-side request rate.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// MaxConcurrent bounds the enrichment fan-out per query.
	MaxConcurrent int `koanf:"max_concurrent"`

	// CacheSize and CacheTTL control the process-wide metadata memo cache.
	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	// DefaultTopN is applied when a query omits top_n.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps top_n for a single query.
	MaxTopN int `koanf:"max_top_n"`

	// DefaultAlpha is the blend weight applied when a query omits alpha.
	// The original model weights CF lightly by default.
	DefaultAlpha float64 `koanf:"default_alpha"`

	// Seed is the random seed for the trending/watch-history sampler.
	// Zero seeds from the clock.
	Seed int64 `koanf:"seed"`
}

// APIConfig holds API middleware settings.
type APIConfig struct {
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for missing or malformed values.
// Load-time validation failures are fatal; there is no degraded mode with a
// partial configuration.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}

	if c.Data.CatalogPath == "" {
		return fmt.Errorf("data.catalog_path is required")
	}
	if c.Data.PredictionsPath == "" {
		return fmt.Errorf("data.predictions_path is required")
	}
	if c.Data.SimilarityPath == "" {
		return fmt.Errorf("data.similarity_path is required")
	}

	if c.TMDB.Enabled {
		if c.TMDB.APIKey == "" {
			return fmt.Errorf("tmdb.api_key is required when tmdb.enabled is true")
		}
		if c.TMDB.Timeout <= 0 {
			return fmt.Errorf("tmdb.timeout must be positive, got %s", c.TMDB.Timeout)
		}
		if c.TMDB.MaxConcurrent <= 0 {
			return fmt.Errorf("tmdb.max_concurrent must be positive, got %d", c.TMDB.MaxConcurrent)
		}
	}

	if c.Recommend.DefaultTopN <= 0 {
		return fmt.Errorf("recommend.default_top_n must be positive, got %d", c.Recommend.DefaultTopN)
	}
	if c.Recommend.MaxTopN < c.Recommend.DefaultTopN {
		return fmt.Errorf("recommend.max_top_n (%d) must be >= recommend.default_top_n (%d)",
			c.Recommend.MaxTopN, c.Recommend.DefaultTopN)
	}
	if c.Recommend.DefaultAlpha < 0 || c.Recommend.DefaultAlpha > 1 {
		return fmt.Errorf("recommend.default_alpha must be in [0,1], got %g", c.Recommend.DefaultAlpha)
	}

	return nil
}
