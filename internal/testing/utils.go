// Package testing provides fixtures and helpers shared by the predictor's tests.
package testing

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-case-predictor/config"
	"github.com/gcbaptista/go-case-predictor/model"
)

// SampleCorpus is a small English corpus: a theft, a contract dispute, and a fraud case
// that lacks Decision and Sentence fields.
const SampleCorpus = `ID: 101
Subject: theft case
Description: stolen vehicle
Paragraphs: 205
Decision: guilty
Sentence: 2 years probation

ID: 102
Subject: contract dispute
Description: stolen goods
Paragraphs: 100
Decision: dismissed
Sentence: none

ID: 103
Subject: fraud
Description: forged invoice for a vehicle lease
Paragraphs: 209
`

// TwoCaseCorpus is the two-record theft/contract corpus used by end-to-end scenarios.
const TwoCaseCorpus = `Subject: theft case
Description: stolen vehicle
Paragraphs: 205

Subject: contract dispute
Description: stolen goods
Paragraphs: 100
`

// CzechCorpus uses Czech field names and wording.
const CzechCorpus = `ID: 7 T 12/2021
Předmět: krádež auta
Popis: Obžalovaný odcizil osobní automobil z parkoviště.
Paragrafy: § 205 tr. zák.
Rozhodnutí: vinen
Trest: podmíněný trest 2 roky

ID: 3 C 45/2020
Předmět: spor o smlouvu
Popis: Žalobce požaduje zaplacení kupní ceny.
Paragrafy: § 2079 o. z.
Rozhodnutí: vyhověno
`

// WriteCorpusFile writes content to a corpus file inside a per-test temp dir and returns its path.
func WriteCorpusFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "Failed to write corpus fixture")
	return path
}

// SampleRecords returns the parsed form of SampleCorpus.
func SampleRecords() []model.Record {
	return []model.Record{
		{"ID": "101", "Subject": "theft case", "Description": "stolen vehicle", "Paragraphs": "205", "Decision": "guilty", "Sentence": "2 years probation"},
		{"ID": "102", "Subject": "contract dispute", "Description": "stolen goods", "Paragraphs": "100", "Decision": "dismissed", "Sentence": "none"},
		{"ID": "103", "Subject": "fraud", "Description": "forged invoice for a vehicle lease", "Paragraphs": "209"},
	}
}

// TestSettings returns validated default settings for tests.
func TestSettings(t *testing.T) *config.Settings {
	t.Helper()
	settings := config.DefaultSettings()
	require.Empty(t, settings.Validate(), "Default settings must validate")
	return settings
}

// RecordingGenerator is a deterministic generation stand-in that remembers every prompt.
type RecordingGenerator struct {
	mu      sync.Mutex
	Answer  string
	Err     error
	Prompts []string
}

// Generate records the prompt and returns the configured answer or error.
func (g *RecordingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Prompts = append(g.Prompts, prompt)
	if g.Err != nil {
		return "", g.Err
	}
	return g.Answer, nil
}

// Calls returns how many prompts were received.
func (g *RecordingGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Prompts)
}
