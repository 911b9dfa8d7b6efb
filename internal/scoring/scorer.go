package scoring

import (
	"fmt"
	"strings"

	"github.com/gcbaptista/go-case-predictor/config"
	internalErrors "github.com/gcbaptista/go-case-predictor/internal/errors"
	"github.com/gcbaptista/go-case-predictor/internal/tokenizer"
	"github.com/gcbaptista/go-case-predictor/model"
)

// Breakdown is the score of one record against a query.
type Breakdown struct {
	Total   int                 // Sum of weighted intersection sizes
	Matches map[string][]string // FieldName -> shared tokens, only for fields with at least one match
}

// Scorer computes the weighted lexical overlap between corpus records and a query.
//
// Score = |Subject ∩ Q| * w_subject + |Description ∩ Q| * w_description + |Paragraphs ∩ Q| * w_paragraphs
//
// where Q is the token set of the query's Subject and Description joined by a space.
// Overlap is not normalized by field length; the weights encode field importance only.
type Scorer struct {
	normalizer   *tokenizer.Normalizer
	fields       []config.FieldWeight
	querySubject string
	queryDesc    string
}

// NewScorer creates a scorer from validated settings.
func NewScorer(settings *config.Settings) (*Scorer, error) {
	if settings == nil {
		return nil, internalErrors.NewValidationError("settings", "cannot be nil")
	}
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, internalErrors.NewValidationError("settings", strings.Join(problems, "; "))
	}

	return &Scorer{
		normalizer:   tokenizer.NewNormalizer(settings.Stopwords),
		fields:       settings.ScoredFields(),
		querySubject: settings.Fields.Subject,
		queryDesc:    settings.Fields.Description,
	}, nil
}

// Normalizer returns the normalizer shared by corpus and query tokenization.
func (s *Scorer) Normalizer() *tokenizer.Normalizer {
	return s.normalizer
}

// QueryTokens returns the query's comparison set. Only the query's Subject and Description are
// used; a query never contributes its own Paragraphs.
func (s *Scorer) QueryTokens(query model.Record) tokenizer.TokenSet {
	return s.normalizer.TokenSet(query.Get(s.querySubject) + " " + query.Get(s.queryDesc))
}

// Score computes the breakdown for one record. Absent fields count as empty text.
func (s *Scorer) Score(rec model.Record, queryTokens tokenizer.TokenSet) Breakdown {
	b := Breakdown{Matches: make(map[string][]string)}
	for _, fw := range s.fields {
		fieldTokens := s.normalizer.TokenSet(rec.Get(fw.Field))
		shared := fieldTokens.Intersection(queryTokens)
		if len(shared) == 0 {
			continue
		}
		b.Total += len(shared) * fw.Weight
		b.Matches[fw.Field] = shared
	}
	return b
}

// ScoreRecord is a convenience wrapper that tokenizes the query and scores one record.
func (s *Scorer) ScoreRecord(rec, query model.Record) int {
	return s.Score(rec, s.QueryTokens(query)).Total
}

// String describes the scorer's weights, for logging.
func (s *Scorer) String() string {
	parts := make([]string, len(s.fields))
	for i, fw := range s.fields {
		parts[i] = fmt.Sprintf("%s=%d", fw.Field, fw.Weight)
	}
	return "Scorer{" + strings.Join(parts, ", ") + "}"
}
