// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

package metadata

import (
	"context"
	"testing"
	"time"
)

func TestCachedFetcherMemoizes(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{}
	cached := NewCachedFetcher(fetcher, 16, time.Minute)

	for i := 0; i < 3; i++ {
		md, err := cached.FetchMovie(context.Background(), 603)
		if err != nil {
			t.Fatalf("FetchMovie() error = %v", err)
		}
		if md.Overview != "overview-603" {
			t.Errorf("Overview = %q", md.Overview)
		}
	}

	if got := fetcher.callCount(); got != 1 {
		t.Errorf("underlying fetch count = %d, want 1", got)
	}
}

func TestCachedFetcherDoesNotCacheFailures(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{failIDs: map[int]bool{5: true}}
	cached := NewCachedFetcher(fetcher, 16, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := cached.FetchMovie(context.Background(), 5); err == nil {
			t.Fatal("FetchMovie() error = nil, want failure")
		}
	}

	if got := fetcher.callCount(); got != 2 {
		t.Errorf("underlying fetch count = %d, want 2 (failures retried)", got)
	}
}

func TestCachedFetcherDistinctKeys(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{}
	cached := NewCachedFetcher(fetcher, 16, time.Minute)

	if _, err := cached.FetchMovie(context.Background(), 1); err != nil {
		t.Fatalf("FetchMovie(1) error = %v", err)
	}
	md, err := cached.FetchMovie(context.Background(), 2)
	if err != nil {
		t.Fatalf("FetchMovie(2) error = %v", err)
	}
	if md.Overview != "overview-2" {
		t.Errorf("Overview = %q, want overview-2", md.Overview)
	}
	if got := fetcher.callCount(); got != 2 {
		t.Errorf("underlying fetch count = %d, want 2", got)
	}
}
