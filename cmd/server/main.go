// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

// Command server loads the movie catalog, precomputed CF predictions, and
// similarity matrix, then serves the hybrid recommendation API under a
// supervisor tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Ismailshah-123/movie-recommender/internal/api"
	"github.com/Ismailshah-123/movie-recommender/internal/config"
	"github.com/Ismailshah-123/movie-recommender/internal/logging"
	"github.com/Ismailshah-123/movie-recommender/internal/metadata"
	"github.com/Ismailshah-123/movie-recommender/internal/metrics"
	"github.com/Ismailshah-123/movie-recommender/internal/recommend"
	"github.com/Ismailshah-123/movie-recommender/internal/store"
	"github.com/Ismailshah-123/movie-recommender/internal/supervisor"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Default logger; config is not available yet.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("catalog", cfg.Data.CatalogPath).
		Bool("tmdb_enabled", cfg.TMDB.Enabled).
		Msg("Starting movie recommender")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	// Load the immutable data store. Any inconsistency is fatal; the
	// process never serves from a partial store.
	s, err := store.Load(store.Paths{
		Catalog:     cfg.Data.CatalogPath,
		Predictions: cfg.Data.PredictionsPath,
		Similarity:  cfg.Data.SimilarityPath,
	}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load data store")
	}
	metrics.StoreMovies.Set(float64(s.Len()))
	metrics.StoreUsers.Set(float64(len(s.UserIDs())))

	engine := recommend.NewEngine(s, recommend.Config{
		DefaultAlpha: cfg.Recommend.DefaultAlpha,
		DefaultTopN:  cfg.Recommend.DefaultTopN,
		MaxTopN:      cfg.Recommend.MaxTopN,
		Seed:         cfg.Recommend.Seed,
	}, logging.Logger())

	// Metadata chain: client -> circuit breaker -> memo cache -> enricher.
	var enricher api.Enricher
	if cfg.TMDB.Enabled {
		client := metadata.NewClient(cfg.TMDB, logging.Logger())
		breaker := metadata.NewBreakerFetcher(client, logging.Logger())
		cached := metadata.NewCachedFetcher(breaker, cfg.TMDB.CacheSize, cfg.TMDB.CacheTTL)
		enricher = metadata.NewEnricher(cached, cfg.TMDB.MaxConcurrent, cfg.TMDB.Timeout, logging.Logger())
	} else {
		logging.Info().Msg("TMDB enrichment disabled, serving catalog data only")
	}

	handler := api.NewHandler(s, engine, enricher, cfg.Recommend, logging.Logger())
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.API.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.API.RateLimitRequests,
		RateLimitWindow:    cfg.API.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
