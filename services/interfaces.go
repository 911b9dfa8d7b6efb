package services

import (
	"context"

	"github.com/gcbaptista/go-case-predictor/config"
	"github.com/gcbaptista/go-case-predictor/model"
)

// PredictionRequest is the body accepted by the rank, prompt and predict endpoints.
type PredictionRequest struct {
	Query string `json:"query"`           // Free-text description of the new case
	TopN  int    `json:"top_n,omitempty"` // Optional: override the configured number of past cases; 0 uses the default
}

// RankResult lists the selected past cases for a query.
type RankResult struct {
	Hits  []model.ScoredRecord `json:"hits"`
	Total int                  `json:"total"` // Number of records in the corpus
}

// RecordPage is one page of the corpus listing.
type RecordPage struct {
	Records  []model.Record `json:"records"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Pages    int            `json:"pages"`
}

// Predictor defines the operations the HTTP and CLI surfaces need from the prediction engine.
type Predictor interface {
	Settings() config.Settings
	Records() []model.Record
	Len() int // Corpus size, without copying records
	Rank(text string, n int) []model.ScoredRecord
	Prompt(text string, n int) (*model.Prediction, error)
	Predict(ctx context.Context, text string, n int) (*model.Prediction, error)
}

// Paginate returns page (1-based) of records with the given page size.
// Out-of-range pages are empty, not errors.
func Paginate(records []model.Record, page, pageSize int) RecordPage {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	total := len(records)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return RecordPage{
		Records:  append([]model.Record{}, records[start:end]...),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Pages:    (total + pageSize - 1) / pageSize,
	}
}
