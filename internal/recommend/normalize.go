// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

package recommend

import "fmt"

// Normalize rescales a score vector to [0, 1] with min-max normalization.
// A constant vector normalizes to all zeros rather than dividing by zero,
// so a signal with no spread contributes nothing to the blend. An empty
// input is an error.
func Normalize(scores []float64) ([]float64, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: cannot normalize empty vector", ErrInvalidInput)
	}

	minVal, maxVal := scores[0], scores[0]
	for _, v := range scores[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	out := make([]float64, len(scores))
	spread := maxVal - minVal
	if spread == 0 {
		return out, nil
	}
	for i, v := range scores {
		out[i] = (v - minVal) / spread
	}
	return out, nil
}
