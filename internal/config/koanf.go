// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/movie-recommender/config.yaml",
	"/etc/movie-recommender/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Data: DataConfig{
			CatalogPath:     "data/movies.csv",
			PredictionsPath: "data/predictions.csv",
			SimilarityPath:  "data/similarity.csv",
		},
		TMDB: TMDBConfig{
			Enabled:           true,
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p/w500",
			APIKey:            "",
			Language:          "en-US",
			Timeout:           5 * time.Second,
			RequestsPerSecond: 20,
			Burst:             40,
			MaxConcurrent:     4,
			CacheSize:         10000,
			CacheTTL:          24 * time.Hour,
		},
		Recommend: RecommendConfig{
			DefaultTopN:  10,
			MaxTopN:      100,
			DefaultAlpha: 0.1,
			Seed:         0,
		},
		API: APIConfig{
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources
// (highest priority last): defaults, optional YAML file, environment
// variables. The result is validated before being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Environment variable names map to koanf paths by section prefix:
	// TMDB_API_KEY -> tmdb.api_key, SERVER_PORT -> server.port.
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// sectionPrefixes maps environment variable prefixes to koanf sections.
// Only variables with a known prefix are consumed, so unrelated environment
// variables never leak into the configuration.
var sectionPrefixes = []string{"SERVER_", "DATA_", "TMDB_", "RECOMMEND_", "API_", "LOGGING_"}

// envTransformFunc converts an environment variable name to a koanf path.
// Returns "" for variables that do not belong to a known section.
func envTransformFunc(s string) string {
	for _, prefix := range sectionPrefixes {
		if strings.HasPrefix(s, prefix) {
			section := strings.ToLower(strings.TrimSuffix(prefix, "_"))
			key := strings.ToLower(strings.TrimPrefix(s, prefix))
			if key == "" {
				return ""
			}
			return section + "." + key
		}
	}
	return ""
}

// findConfigFile searches for a config file, honoring CONFIG_PATH first.
// Returns "" when no file exists; the file layer is optional.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
