// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

package config

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	// Defaults disable nothing except the API key, which is only checked
	// when TMDB is enabled.
	cfg.TMDB.APIKey = "test-key"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "missing catalog path",
			mutate:  func(c *Config) { c.Data.CatalogPath = "" },
			wantErr: true,
		},
		{
			name:    "missing predictions path",
			mutate:  func(c *Config) { c.Data.PredictionsPath = "" },
			wantErr: true,
		},
		{
			name:    "missing similarity path",
			mutate:  func(c *Config) { c.Data.SimilarityPath = "" },
			wantErr: true,
		},
		{
			name:    "tmdb enabled without api key",
			mutate:  func(c *Config) { c.TMDB.APIKey = "" },
			wantErr: true,
		},
		{
			name: "tmdb disabled without api key",
			mutate: func(c *Config) {
				c.TMDB.Enabled = false
				c.TMDB.APIKey = ""
			},
			wantErr: false,
		},
		{
			name:    "negative tmdb timeout",
			mutate:  func(c *Config) { c.TMDB.Timeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "default top n zero",
			mutate:  func(c *Config) { c.Recommend.DefaultTopN = 0 },
			wantErr: true,
		},
		{
			name:    "max top n below default",
			mutate:  func(c *Config) { c.Recommend.MaxTopN = 1 },
			wantErr: true,
		},
		{
			name:    "alpha above one",
			mutate:  func(c *Config) { c.Recommend.DefaultAlpha = 1.5 },
			wantErr: true,
		},
		{
			name:    "alpha negative",
			mutate:  func(c *Config) { c.Recommend.DefaultAlpha = -0.1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			cfg.TMDB.APIKey = "test-key"
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"SERVER_PORT", "server.port"},
		{"SERVER_SHUTDOWN_TIMEOUT", "server.shutdown_timeout"},
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"DATA_CATALOG_PATH", "data.catalog_path"},
		{"RECOMMEND_DEFAULT_ALPHA", "recommend.default_alpha"},
		{"LOGGING_LEVEL", "logging.level"},
		{"API_RATE_LIMIT_REQUESTS", "api.rate_limit_requests"},
		{"PATH", ""},
		{"HOME", ""},
		{"SERVER_", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.input); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("TMDB_API_KEY", "env-key")
	t.Setenv("RECOMMEND_DEFAULT_ALPHA", "0.4")
	t.Setenv("LOGGING_LEVEL", "debug")
	// Ensure no stray config file on the search path interferes.
	t.Setenv(ConfigPathEnvVar, "/nonexistent/config.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9091 {
		t.Errorf("Server.Port = %d, want 9091", cfg.Server.Port)
	}
	if cfg.TMDB.APIKey != "env-key" {
		t.Errorf("TMDB.APIKey = %q, want %q", cfg.TMDB.APIKey, "env-key")
	}
	if cfg.Recommend.DefaultAlpha != 0.4 {
		t.Errorf("Recommend.DefaultAlpha = %g, want 0.4", cfg.Recommend.DefaultAlpha)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	// Untouched settings keep their defaults.
	if cfg.TMDB.Language != "en-US" {
		t.Errorf("TMDB.Language = %q, want default en-US", cfg.TMDB.Language)
	}
}
