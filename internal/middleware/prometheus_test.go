// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Ismailshah-123/movie-recommender/internal/metrics"
)

func TestPrometheusMetricsRecordsStatusCode(t *testing.T) {
	handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/brew", "418"))

	req := httptest.NewRequest(http.MethodGet, "/brew", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/brew", "418"))
	if after != before+1 {
		t.Errorf("api_requests_total{418} = %v, want %v", after, before+1)
	}
}

func TestPrometheusMetricsDefaultsTo200(t *testing.T) {
	handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/implicit", "200"))

	req := httptest.NewRequest(http.MethodGet, "/implicit", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/implicit", "200"))
	if after != before+1 {
		t.Errorf("api_requests_total{200} = %v, want %v", after, before+1)
	}
}
