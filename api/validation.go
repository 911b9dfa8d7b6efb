// Package api provides validation utilities for API request handling.
package api

import (
	"strings"

	"github.com/gcbaptista/go-case-predictor/services"
)

// maxTopN bounds per-request overrides of the number of past cases.
const maxTopN = 50

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidatePredictionRequest validates the body of a rank, prompt or predict request
func ValidatePredictionRequest(req *services.PredictionRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("request", "Request body is required")
		return result
	}

	if strings.TrimSpace(req.Query) == "" {
		result.AddError("query", "Query is required and cannot be blank")
	}

	if req.TopN < 0 {
		result.AddError("top_n", "top_n cannot be negative")
	} else if req.TopN > maxTopN {
		result.AddError("top_n", "top_n cannot exceed 50")
	}

	return result
}

// RecordListRequest is the query string accepted by the corpus listing
type RecordListRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// ValidateRecordListRequest validates and normalizes pagination parameters
func ValidateRecordListRequest(req *RecordListRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req.Page < 0 {
		result.AddError("page", "page cannot be negative")
	}
	if req.PageSize < 0 {
		result.AddError("page_size", "page_size cannot be negative")
	}
	if result.HasErrors() {
		return result
	}

	// Set defaults
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100 // Maximum page size
	}

	return result
}
