package ranking

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-case-predictor/config"
	"github.com/gcbaptista/go-case-predictor/internal/corpus"
	internalErrors "github.com/gcbaptista/go-case-predictor/internal/errors"
	"github.com/gcbaptista/go-case-predictor/internal/scoring"
	testutil "github.com/gcbaptista/go-case-predictor/internal/testing"
	"github.com/gcbaptista/go-case-predictor/model"
)

func setupTestRanker(t *testing.T, topN int) *Ranker {
	t.Helper()
	scorer, err := scoring.NewScorer(config.DefaultSettings())
	require.NoError(t, err)
	ranker, err := NewRanker(scorer, topN)
	require.NoError(t, err)
	return ranker
}

func query(desc string) model.Record {
	return model.Record{"Subject": "Unspecified", "Description": desc}
}

func ids(hits []model.ScoredRecord) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.Record.Get("ID")
	}
	return out
}

func TestNewRanker(t *testing.T) {
	scorer, err := scoring.NewScorer(config.DefaultSettings())
	require.NoError(t, err)

	_, err = NewRanker(nil, 3)
	assert.True(t, errors.Is(err, internalErrors.ErrInvalidInput))

	_, err = NewRanker(scorer, 0)
	assert.True(t, errors.Is(err, internalErrors.ErrInvalidInput))

	r, err := NewRanker(scorer, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, r.TopN())
}

func TestRank_TwoCaseScenario(t *testing.T) {
	records, err := corpus.Parse(strings.NewReader(testutil.TwoCaseCorpus))
	require.NoError(t, err)
	ranker := setupTestRanker(t, 3)

	hits := ranker.Rank(records, query("vehicle stolen"))

	require.Len(t, hits, 2)
	// Record A shares "stolen" and "vehicle" with the query in its Description
	assert.Equal(t, "theft case", hits[0].Record.Get("Subject"))
	assert.Equal(t, 2, hits[0].Score)
	assert.Equal(t, 0, hits[0].Position)
	// Record B shares only "stolen"
	assert.Equal(t, "contract dispute", hits[1].Record.Get("Subject"))
	assert.Equal(t, 1, hits[1].Score)
	assert.Equal(t, 1, hits[1].Position)
}

func TestRank_TieKeepsCorpusOrder(t *testing.T) {
	records, err := corpus.Parse(strings.NewReader(testutil.TwoCaseCorpus))
	require.NoError(t, err)
	ranker := setupTestRanker(t, 3)

	// Both records share exactly "stolen" in their Description
	hits := ranker.Rank(records, query("stolen"))

	require.Len(t, hits, 2)
	assert.Equal(t, 1, hits[0].Score)
	assert.Equal(t, 1, hits[1].Score)
	assert.Equal(t, "theft case", hits[0].Record.Get("Subject"), "A precedes B on a tie")
	assert.Equal(t, "contract dispute", hits[1].Record.Get("Subject"))
}

func TestRank_TruncatesToTopN(t *testing.T) {
	records := make([]model.Record, 0, 10)
	for i := 0; i < 10; i++ {
		records = append(records, model.Record{
			"ID":          fmt.Sprintf("%d", i),
			"Description": strings.Repeat("w", i+1) + " theft", // every record matches "theft" once
		})
	}
	// Give record 7 an extra subject match so it ranks first
	records[7]["Subject"] = "theft"
	ranker := setupTestRanker(t, 3)

	hits := ranker.Rank(records, query("theft"))

	assert.Equal(t, []string{"7", "0", "1"}, ids(hits))
	assert.Equal(t, 6, hits[0].Score)
	assert.Equal(t, 1, hits[1].Score)
}

func TestRank_FewerRecordsThanN(t *testing.T) {
	ranker := setupTestRanker(t, 10)

	hits := ranker.Rank(testutil.SampleRecords(), query("vehicle"))

	require.Len(t, hits, 3, "the whole corpus is returned without padding")
	// 101 and 103 mention "vehicle" in their Description; 102 does not
	assert.Equal(t, []string{"101", "103", "102"}, ids(hits))
	assert.Equal(t, []int{1, 1, 0}, []int{hits[0].Score, hits[1].Score, hits[2].Score})
}

func TestRank_ZeroScoresStillSelected(t *testing.T) {
	ranker := setupTestRanker(t, 2)

	hits := ranker.Rank(testutil.SampleRecords(), query("maritime salvage"))

	require.Len(t, hits, 2, "ranking never filters by a minimum score")
	assert.Equal(t, []string{"101", "102"}, ids(hits))
	for _, h := range hits {
		assert.Equal(t, 0, h.Score)
		assert.Empty(t, h.Matches)
	}
}

func TestRank_EmptyCorpus(t *testing.T) {
	ranker := setupTestRanker(t, 3)

	hits := ranker.Rank(nil, query("anything"))
	assert.NotNil(t, hits)
	assert.Empty(t, hits)

	hits = ranker.Rank([]model.Record{}, query("anything"))
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}

func TestRankN_Override(t *testing.T) {
	ranker := setupTestRanker(t, 3)
	records := testutil.SampleRecords()

	assert.Len(t, ranker.RankN(records, query("vehicle"), 1), 1)
	assert.Len(t, ranker.RankN(records, query("vehicle"), 0), 3, "non-positive n uses the default")
	assert.Len(t, ranker.RankN(records, query("vehicle"), -4), 3)
}

func TestRank_Properties(t *testing.T) {
	ranker := setupTestRanker(t, 4)
	records := []model.Record{
		{"ID": "a", "Subject": "contract", "Description": "unpaid invoice"},
		{"ID": "b", "Subject": "theft", "Description": "stolen bicycle", "Paragraphs": "205"},
		{"ID": "c", "Description": "stolen car in the night"},
		{"ID": "d", "Subject": "theft", "Description": "car theft", "Paragraphs": "205"},
		{"ID": "e", "Description": "noise complaint"},
		{"ID": "f", "Subject": "fraud", "Description": "stolen identity"},
	}
	q := query("theft of a stolen car 205")

	first := ranker.Rank(records, q)

	// At most N, non-increasing scores, ties in corpus order
	require.Len(t, first, 4)
	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, first[i-1].Score, first[i].Score)
		if first[i-1].Score == first[i].Score {
			assert.Less(t, first[i-1].Position, first[i].Position)
		}
	}
	// Every hit comes from the corpus
	for _, h := range first {
		assert.Equal(t, records[h.Position], h.Record)
	}
	// Deterministic across runs
	for i := 0; i < 10; i++ {
		assert.Equal(t, ids(first), ids(ranker.Rank(records, q)))
	}

	// N >= corpus size returns the full corpus, still ordered
	all := ranker.RankN(records, q, len(records)+5)
	assert.Len(t, all, len(records))
	assert.Equal(t, ids(first), ids(all)[:4])
}

func TestScoreAll_KeepsCorpusOrder(t *testing.T) {
	scorer, err := scoring.NewScorer(config.DefaultSettings())
	require.NoError(t, err)

	scored := ScoreAll(scorer, testutil.SampleRecords(), query("contract"))

	require.Len(t, scored, 3)
	assert.Equal(t, []string{"101", "102", "103"}, ids(scored))
	assert.Equal(t, 5, scored[1].Score)
	assert.Equal(t, map[string][]string{"Subject": {"contract"}}, scored[1].Matches)
}
