// Movie Recommender - Hybrid CF + Content Movie Recommendations
// Copyright 2026 Ismail Shah
// SPDX-License-Identifier: MIT
// https://github.com/Ismailshah-123/movie-recommender

package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	UserID int     `validate:"required,gt=0"`
	Title  string  `validate:"required"`
	TopN   int     `validate:"omitempty,min=1,max=100"`
	Alpha  float64 `validate:"gte=0,lte=1"`
}

func TestValidateStructValid(t *testing.T) {
	t.Parallel()

	req := sampleRequest{UserID: 7, Title: "Heat", TopN: 10, Alpha: 0.1}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStructSingleError(t *testing.T) {
	t.Parallel()

	req := sampleRequest{UserID: 7, Title: "Heat", TopN: 500, Alpha: 0.1}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "TopN") {
		t.Errorf("Message = %q, want field name included", apiErr.Message)
	}
	if apiErr.Details["field"] != "TopN" {
		t.Errorf("Details[field] = %v, want TopN", apiErr.Details["field"])
	}
}

func TestValidateStructMultipleErrors(t *testing.T) {
	t.Parallel()

	req := sampleRequest{Alpha: 2}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if got := len(err.Errors()); got != 3 {
		t.Errorf("len(Errors()) = %d, want 3 (UserID, Title, Alpha)", got)
	}

	apiErr := err.ToAPIError()
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("Details[fields] missing for multi-error response")
	}
}
