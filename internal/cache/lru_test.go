// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLRUAddGet(t *testing.T) {
	t.Parallel()

	c := NewLRU[string](4, time.Minute)
	c.Add("a", "alpha")
	c.Add("b", "beta")

	if v, ok := c.Get("a"); !ok || v != "alpha" {
		t.Errorf("Get(a) = %q, %v, want alpha, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) = true, want false")
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](2, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)

	// Touch a so b becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Get(a) miss before eviction")
	}

	c.Add("c", 3)

	if c.Contains("b") {
		t.Error("b survived eviction, want it dropped as least recently used")
	}
	if !c.Contains("a") || !c.Contains("c") {
		t.Error("a and c should remain after eviction")
	}
}

func TestLRUUpdateRefreshesEntry(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](2, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("a", 10)
	c.Add("c", 3)

	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = %d, %v, want 10, true", v, ok)
	}
	if c.Contains("b") {
		t.Error("b should have been evicted after a was refreshed")
	}
}

func TestLRUTTLExpiry(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](4, 10*time.Millisecond)
	c.Add("a", 1)

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) = true after TTL, want miss")
	}
	if c.Contains("a") {
		t.Error("Contains(a) = true after TTL")
	}
}

func TestLRUCleanupExpired(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](8, 10*time.Millisecond)
	c.Add("a", 1)
	c.Add("b", 2)

	time.Sleep(25 * time.Millisecond)
	c.Add("c", 3)

	if removed := c.CleanupExpired(); removed != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", removed)
	}
	if got := c.Len(); got != 1 {
		t.Errorf("Len() = %d after cleanup, want 1", got)
	}
}

func TestLRURemoveAndClear(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](4, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("Remove(a) twice = true, want false")
	}

	c.Clear()
	if got := c.Len(); got != 0 {
		t.Errorf("Len() = %d after Clear, want 0", got)
	}
}

func TestLRUStats(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](4, time.Minute)
	c.Add("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	hits, misses, size := c.Stats()
	if hits != 2 || misses != 1 || size != 1 {
		t.Errorf("Stats() = %d, %d, %d, want 2, 1, 1", hits, misses, size)
	}
}

func TestLRUConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](128, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("key-%d", i%32)
				c.Add(key, g*1000+i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if got := c.Len(); got == 0 || got > 128 {
		t.Errorf("Len() = %d after concurrent access, want within (0, 128]", got)
	}
}
