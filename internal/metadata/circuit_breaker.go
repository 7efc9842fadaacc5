// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

package metadata

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Ismailshah-123/movie-recommender/internal/metrics"
	"github.com/Ismailshah-123/movie-recommender/internal/models"
)

// BreakerFetcher wraps a Fetcher with a circuit breaker so a degraded TMDB
// stops consuming the enricher's fan-out budget. The breaker uses real time
// for its interval and timeout; tests should mock the wrapped fetcher rather
// than the breaker.
type BreakerFetcher struct {
	fetcher Fetcher
	cb      *gobreaker.CircuitBreaker[*models.MovieMetadata]
	name    string
	log     zerolog.Logger
}

var _ Fetcher = (*BreakerFetcher)(nil)

// NewBreakerFetcher wraps fetcher with a circuit breaker.
// Opens after a 60% failure rate over at least 10 requests, allows 3
// requests in half-open state, and attempts recovery after 2 minutes.
func NewBreakerFetcher(fetcher Fetcher, log zerolog.Logger) *BreakerFetcher {
	const cbName = "tmdb-api"
	cbLog := log.With().Str("component", "circuit-breaker").Logger()

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(stateToFloat(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker[*models.MovieMetadata](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// At least 10 requests before the failure rate means anything.
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				cbLog.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			cbLog.Info().Str("from", fromStr).Str("to", toStr).Msg("State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerFetcher{
		fetcher: fetcher,
		cb:      cb,
		name:    cbName,
		log:     cbLog,
	}
}

// FetchMovie runs a lookup through the breaker.
func (b *BreakerFetcher) FetchMovie(ctx context.Context, movieID int) (*models.MovieMetadata, error) {
	md, err := b.cb.Execute(func() (*models.MovieMetadata, error) {
		return b.fetcher.FetchMovie(ctx, movieID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return nil, err
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return md, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
