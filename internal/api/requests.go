// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

package api

// RecommendationsRequest carries the parsed query parameters of
// GET /api/v1/recommendations.
type RecommendationsRequest struct {
	UserID int      `validate:"required,gt=0"`
	Title  string   `validate:"required,min=1,max=500"`
	Genres []string `validate:"omitempty,dive,min=1,max=100"`
	TopN   int      `validate:"required,min=1"`
	Alpha  float64  `validate:"gte=0,lte=1"`
}

// SampleRequest carries the parsed query parameters of the trending and
// watch-history feeds.
type SampleRequest struct {
	N int `validate:"required,min=1"`
}
