// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

package metadata

import (
	"context"
	"strconv"
	"time"

	"github.com/Ismailshah-123/movie-recommender/internal/cache"
	"github.com/Ismailshah-123/movie-recommender/internal/metrics"
	"github.com/Ismailshah-123/movie-recommender/internal/models"
)

const cacheType = "metadata"

// CachedFetcher memoizes successful lookups in a process-wide LRU so
// repeated recommendations of the same movies skip TMDB entirely.
// Failures are not cached; a flaky movie is retried on next request.
type CachedFetcher struct {
	fetcher Fetcher
	lru     *cache.LRU[*models.MovieMetadata]
}

var _ Fetcher = (*CachedFetcher)(nil)

// NewCachedFetcher wraps fetcher with an LRU of the given capacity and TTL.
func NewCachedFetcher(fetcher Fetcher, capacity int, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{
		fetcher: fetcher,
		lru:     cache.NewLRU[*models.MovieMetadata](capacity, ttl),
	}
}

// FetchMovie serves from the cache when possible, delegating misses to the
// wrapped fetcher.
func (c *CachedFetcher) FetchMovie(ctx context.Context, movieID int) (*models.MovieMetadata, error) {
	key := strconv.Itoa(movieID)

	if md, ok := c.lru.Get(key); ok {
		metrics.CacheHits.WithLabelValues(cacheType).Inc()
		return md, nil
	}
	metrics.CacheMisses.WithLabelValues(cacheType).Inc()

	md, err := c.fetcher.FetchMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	c.lru.Add(key, md)
	metrics.CacheSize.WithLabelValues(cacheType).Set(float64(c.lru.Len()))
	return md, nil
}
