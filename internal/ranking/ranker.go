package ranking

import (
	"sort"

	internalErrors "github.com/gcbaptista/go-case-predictor/internal/errors"
	"github.com/gcbaptista/go-case-predictor/internal/scoring"
	"github.com/gcbaptista/go-case-predictor/model"
)

// Ranker scores every record against a query and keeps the best N.
type Ranker struct {
	scorer *scoring.Scorer
	topN   int
}

// NewRanker creates a ranker that selects topN records by default.
func NewRanker(scorer *scoring.Scorer, topN int) (*Ranker, error) {
	if scorer == nil {
		return nil, internalErrors.NewValidationError("scorer", "cannot be nil")
	}
	if topN <= 0 {
		return nil, internalErrors.NewValidationError("top_n", "must be a positive integer")
	}
	return &Ranker{scorer: scorer, topN: topN}, nil
}

// TopN returns the default selection size.
func (r *Ranker) TopN() int {
	return r.topN
}

// Rank returns the default number of best records for query.
func (r *Ranker) Rank(records []model.Record, query model.Record) []model.ScoredRecord {
	return r.RankN(records, query, r.topN)
}

// RankN returns at most n records ordered by score, highest first.
// Records with equal scores keep their corpus order. Zero-score records stay eligible: when
// fewer than n records match, the remainder is filled from non-matching records in corpus order.
// A non-positive n falls back to the ranker's default.
func (r *Ranker) RankN(records []model.Record, query model.Record, n int) []model.ScoredRecord {
	if n <= 0 {
		n = r.topN
	}

	scored := ScoreAll(r.scorer, records, query)

	// Sort by score descending; SliceStable keeps corpus order among ties
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// ScoreAll scores every record in corpus order without sorting or truncating.
func ScoreAll(scorer *scoring.Scorer, records []model.Record, query model.Record) []model.ScoredRecord {
	queryTokens := scorer.QueryTokens(query)

	scored := make([]model.ScoredRecord, 0, len(records))
	for i, rec := range records {
		b := scorer.Score(rec, queryTokens)
		scored = append(scored, model.ScoredRecord{
			Record:   rec,
			Score:    b.Total,
			Position: i,
			Matches:  b.Matches,
		})
	}
	return scored
}
