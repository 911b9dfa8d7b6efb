package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-case-predictor/config"
	internalErrors "github.com/gcbaptista/go-case-predictor/internal/errors"
	"github.com/gcbaptista/go-case-predictor/internal/generation"
	testutil "github.com/gcbaptista/go-case-predictor/internal/testing"
	"github.com/gcbaptista/go-case-predictor/model"
)

func setupTestPredictor(t *testing.T, corpusText string, gen generation.Generator) *Predictor {
	t.Helper()
	path := testutil.WriteCorpusFile(t, corpusText)
	p, err := LoadPredictor(testutil.TestSettings(t), path, gen, nil)
	require.NoError(t, err, "Failed to create predictor")
	return p
}

func TestPredict_EndToEnd(t *testing.T) {
	gen := &testutil.RecordingGenerator{Answer: "Likely guilty. IDs: 101"}
	p := setupTestPredictor(t, testutil.TwoCaseCorpus, gen)

	prediction, err := p.Predict(context.Background(), "vehicle stolen from a garage", 0)
	require.NoError(t, err)

	assert.Equal(t, "Likely guilty. IDs: 101", prediction.Answer)
	assert.NotEmpty(t, prediction.QueryID)
	require.Len(t, prediction.Hits, 2)
	assert.Equal(t, "theft case", prediction.Hits[0].Record.Get("Subject"))
	assert.Equal(t, 2, prediction.Hits[0].Score)
	assert.Equal(t, "contract dispute", prediction.Hits[1].Record.Get("Subject"))
	assert.Equal(t, 1, prediction.Hits[1].Score)

	require.Equal(t, 1, gen.Calls(), "generator is invoked exactly once")
	sent := gen.Prompts[0]
	assert.Equal(t, prediction.Prompt, sent)
	assert.Contains(t, sent, "\"vehicle stolen from a garage\"")
	iA := strings.Index(sent, "1. ID not specified: stolen vehicle. Paragraphs: 205")
	iB := strings.Index(sent, "2. ID not specified: stolen goods. Paragraphs: 100")
	assert.True(t, iA >= 0 && iB > iA, "theft case is listed before contract dispute:\n%s", sent)
}

func TestPredict_EmptyCorpus(t *testing.T) {
	gen := &testutil.RecordingGenerator{Answer: "no precedent"}
	p := setupTestPredictor(t, "", gen)

	prediction, err := p.Predict(context.Background(), "anything", 0)
	require.NoError(t, err)

	assert.Empty(t, prediction.Hits)
	assert.NotContains(t, prediction.Prompt, "1. ID")
	assert.Contains(t, prediction.Prompt, "From past cases:")
	assert.Equal(t, 1, gen.Calls())
	assert.Equal(t, "no precedent", prediction.Answer)
}

func TestPredict_GeneratorFailure(t *testing.T) {
	gen := &testutil.RecordingGenerator{Err: errors.New("service down")}
	p := setupTestPredictor(t, testutil.SampleCorpus, gen)

	prediction, err := p.Predict(context.Background(), "stolen vehicle", 0)
	require.Error(t, err)
	assert.Nil(t, prediction)
	assert.True(t, errors.Is(err, internalErrors.ErrGenerationFailed))
	assert.Contains(t, err.Error(), "service down")
	assert.Equal(t, 1, gen.Calls())
}

func TestPredict_GenerationErrorPassesThrough(t *testing.T) {
	original := internalErrors.NewGenerationError("openai", errors.New("429"))
	gen := &testutil.RecordingGenerator{Err: original}
	p := setupTestPredictor(t, testutil.SampleCorpus, gen)

	_, err := p.Predict(context.Background(), "stolen vehicle", 0)
	var genErr *internalErrors.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "openai", genErr.Provider)
}

func TestPredict_NoGenerator(t *testing.T) {
	p := setupTestPredictor(t, testutil.SampleCorpus, nil)

	_, err := p.Predict(context.Background(), "stolen vehicle", 0)
	assert.True(t, errors.Is(err, internalErrors.ErrGenerationFailed))
	assert.True(t, errors.Is(err, ErrNoGenerator))
}

func TestLoadPredictor_MissingCorpus(t *testing.T) {
	gen := &testutil.RecordingGenerator{Answer: "unused"}
	path := filepath.Join(t.TempDir(), "missing.txt")

	p, err := LoadPredictor(testutil.TestSettings(t), path, gen, nil)
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, internalErrors.ErrSourceUnavailable))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), path)
	assert.Equal(t, 0, gen.Calls(), "nothing is generated when the corpus is unavailable")
}

func TestNewPredictor_InvalidSettings(t *testing.T) {
	_, err := NewPredictor(nil, nil, nil, nil)
	assert.True(t, errors.Is(err, internalErrors.ErrInvalidInput))

	settings := config.DefaultSettings()
	settings.Weights.Subject = 0
	_, err = NewPredictor(settings, nil, nil, nil)
	assert.True(t, errors.Is(err, internalErrors.ErrInvalidInput))
}

func TestRank_UsesTopNAndOverride(t *testing.T) {
	p := setupTestPredictor(t, testutil.SampleCorpus, nil)

	assert.Len(t, p.Rank("stolen vehicle", 0), 3)
	hits := p.Rank("stolen vehicle", 1)
	require.Len(t, hits, 1)
	assert.Equal(t, "101", hits[0].Record.Get("ID"))
}

func TestPrompt_DoesNotGenerate(t *testing.T) {
	gen := &testutil.RecordingGenerator{Answer: "x"}
	p := setupTestPredictor(t, testutil.SampleCorpus, gen)

	prediction, err := p.Prompt("forged invoice", 2)
	require.NoError(t, err)

	assert.Empty(t, prediction.Answer)
	require.Len(t, prediction.Hits, 2)
	assert.Equal(t, "103", prediction.Hits[0].Record.Get("ID"))
	assert.Equal(t, 0, gen.Calls())
}

func TestNewQuery(t *testing.T) {
	p := setupTestPredictor(t, "", nil)
	assert.Equal(t, model.Record{"Subject": "Unspecified", "Description": "broken window"}, p.NewQuery("broken window"))

	cz, err := NewPredictor(config.CzechSettings(), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, model.Record{"Předmět": "Neurčený", "Popis": "krádež"}, cz.NewQuery("krádež"))
}

func TestPredictor_ReturnsCopies(t *testing.T) {
	records := testutil.SampleRecords()
	p, err := NewPredictor(testutil.TestSettings(t), records, nil, nil)
	require.NoError(t, err)

	records[0]["Subject"] = "mutated"
	assert.Equal(t, "theft case", p.Records()[0].Get("Subject"), "corpus is copied on construction")

	out := p.Records()
	out[0]["Subject"] = "mutated"
	assert.Equal(t, "theft case", p.Records()[0].Get("Subject"), "Records returns copies")

	s := p.Settings()
	s.TopN = 99
	assert.Equal(t, 3, p.Settings().TopN)
}

func TestPredict_UniqueQueryIDs(t *testing.T) {
	p := setupTestPredictor(t, testutil.SampleCorpus, generation.Echo{})

	first, err := p.Predict(context.Background(), "fraud", 0)
	require.NoError(t, err)
	second, err := p.Predict(context.Background(), "fraud", 0)
	require.NoError(t, err)

	assert.NotEqual(t, first.QueryID, second.QueryID)
	assert.Equal(t, first.Prompt, first.Answer, "echo generator returns the prompt")
}

func TestPredict_BlankAnswerFails(t *testing.T) {
	blank := generation.Func(func(context.Context, string) (string, error) {
		return "  ", nil
	})
	cached, err := generation.NewCached(blank, 4)
	require.NoError(t, err)

	tests := []struct {
		name string
		gen  generation.Generator
	}{
		{"injected func", blank},
		{"cached func", cached},
		{"recording generator with empty answer", &testutil.RecordingGenerator{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := setupTestPredictor(t, testutil.TwoCaseCorpus, tt.gen)

			prediction, err := p.Predict(context.Background(), "vehicle stolen", 0)
			require.Error(t, err)
			assert.Nil(t, prediction)
			assert.True(t, errors.Is(err, internalErrors.ErrGenerationFailed))
			assert.True(t, errors.Is(err, generation.ErrEmptyResponse))
		})
	}

	assert.Equal(t, 0, cached.Len(), "blank answer is not replayed from the cache")
}

func TestPredictor_Len(t *testing.T) {
	assert.Equal(t, 0, setupTestPredictor(t, "", nil).Len())

	p := setupTestPredictor(t, testutil.SampleCorpus, nil)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, len(p.Records()), p.Len())
}
