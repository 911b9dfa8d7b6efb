// Package engine wires the corpus, scorer, ranker, prompt assembler and generator into a predictor.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-case-predictor/config"
	"github.com/gcbaptista/go-case-predictor/internal/corpus"
	internalErrors "github.com/gcbaptista/go-case-predictor/internal/errors"
	"github.com/gcbaptista/go-case-predictor/internal/generation"
	"github.com/gcbaptista/go-case-predictor/internal/prompt"
	"github.com/gcbaptista/go-case-predictor/internal/ranking"
	"github.com/gcbaptista/go-case-predictor/internal/scoring"
	"github.com/gcbaptista/go-case-predictor/model"
)

// ErrNoGenerator is wrapped into a GenerationError when Predict is called on a predictor built
// without a generator.
var ErrNoGenerator = errors.New("no generator configured")

// Predictor answers queries against a fixed corpus.
// The corpus and settings never change after construction, so a Predictor is safe for
// concurrent use as long as its generator is.
// It implements the services.Predictor interface.
type Predictor struct {
	settings  *config.Settings
	records   []model.Record
	ranker    *ranking.Ranker
	assembler *prompt.Assembler
	generator generation.Generator
	logger    *zap.Logger
}

// NewPredictor builds a predictor over records. gen may be nil when only ranking and prompt
// assembly are needed.
func NewPredictor(settings *config.Settings, records []model.Record, gen generation.Generator, logger *zap.Logger) (*Predictor, error) {
	if settings == nil {
		return nil, internalErrors.NewValidationError("settings", "cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	settingsCopy := settings.Clone()
	scorer, err := scoring.NewScorer(settingsCopy)
	if err != nil {
		return nil, err
	}
	ranker, err := ranking.NewRanker(scorer, settingsCopy.TopN)
	if err != nil {
		return nil, err
	}
	assembler, err := prompt.NewAssembler(settingsCopy)
	if err != nil {
		return nil, err
	}

	owned := make([]model.Record, len(records))
	for i, rec := range records {
		owned[i] = rec.Clone()
	}

	logger.Info("Predictor ready",
		zap.Int("records", len(owned)),
		zap.Int("top_n", settingsCopy.TopN),
		zap.String("language", settingsCopy.Language),
		zap.Stringer("scorer", scorer))

	return &Predictor{
		settings:  settingsCopy,
		records:   owned,
		ranker:    ranker,
		assembler: assembler,
		generator: gen,
		logger:    logger,
	}, nil
}

// LoadPredictor reads the corpus at corpusPath and builds a predictor over it.
// An unreadable corpus stops here with a SourceUnavailableError, before any scoring.
func LoadPredictor(settings *config.Settings, corpusPath string, gen generation.Generator, logger *zap.Logger) (*Predictor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	records, err := corpus.LoadFile(corpusPath)
	if err != nil {
		logger.Error("Failed to load corpus", zap.String("path", corpusPath), zap.Error(err))
		return nil, err
	}
	logger.Info("Corpus loaded", zap.String("path", corpusPath), zap.Int("records", len(records)))
	return NewPredictor(settings, records, gen, logger)
}

// Settings returns a copy of the predictor's settings.
func (p *Predictor) Settings() config.Settings {
	return *p.settings.Clone()
}

// Records returns a copy of the corpus in file order.
func (p *Predictor) Records() []model.Record {
	out := make([]model.Record, len(p.records))
	for i, rec := range p.records {
		out[i] = rec.Clone()
	}
	return out
}

// Len returns the number of records in the corpus.
func (p *Predictor) Len() int {
	return len(p.records)
}

// NewQuery builds the synthetic query record for a free-text description.
// Its Subject is the configured placeholder, which takes part in scoring like any other token.
func (p *Predictor) NewQuery(text string) model.Record {
	return model.Record{
		p.settings.Fields.Subject:     p.settings.QueryPlaceholder,
		p.settings.Fields.Description: text,
	}
}

// Rank returns the best n records for text. A non-positive n uses the configured top N.
func (p *Predictor) Rank(text string, n int) []model.ScoredRecord {
	return p.ranker.RankN(p.records, p.NewQuery(text), n)
}

// Prompt ranks the corpus for text and assembles the prompt, without calling the generator.
// The returned prediction has an empty Answer.
func (p *Predictor) Prompt(text string, n int) (*model.Prediction, error) {
	start := time.Now()
	query := p.NewQuery(text)
	hits := p.ranker.RankN(p.records, query, n)

	promptText, err := p.assembler.Build(query, model.Records(hits))
	if err != nil {
		return nil, err
	}

	prediction := &model.Prediction{
		QueryID: uuid.New().String(),
		Query:   query,
		Hits:    hits,
		Prompt:  promptText,
		Took:    time.Since(start).Milliseconds(),
	}

	topScore := 0
	if len(hits) > 0 {
		topScore = hits[0].Score
	}
	p.logger.Debug("Prompt assembled",
		zap.String("query_id", prediction.QueryID),
		zap.Int("hits", len(hits)),
		zap.Int("top_score", topScore))

	return prediction, nil
}

// Predict ranks the corpus for text, assembles the prompt and passes it to the generator.
// Generator failures and blank answers come back as a GenerationError and no fallback answer
// is substituted.
func (p *Predictor) Predict(ctx context.Context, text string, n int) (*model.Prediction, error) {
	start := time.Now()
	prediction, err := p.Prompt(text, n)
	if err != nil {
		return nil, err
	}

	if p.generator == nil {
		return nil, internalErrors.NewGenerationError("", ErrNoGenerator)
	}

	answer, err := p.generator.Generate(ctx, prediction.Prompt)
	if err != nil {
		p.logger.Warn("Generation failed", zap.String("query_id", prediction.QueryID), zap.Error(err))
		if !errors.Is(err, internalErrors.ErrGenerationFailed) {
			err = internalErrors.NewGenerationError("", err)
		}
		return nil, err
	}
	if answer, err = generation.CheckAnswer("", answer); err != nil {
		p.logger.Warn("Generation returned no content", zap.String("query_id", prediction.QueryID))
		return nil, err
	}

	prediction.Answer = answer
	prediction.Took = time.Since(start).Milliseconds()
	p.logger.Debug("Prediction complete",
		zap.String("query_id", prediction.QueryID),
		zap.Int64("took_ms", prediction.Took))
	return prediction, nil
}
