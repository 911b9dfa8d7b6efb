// Package config provides configuration structures for the case predictor.
// It defines field names, scoring weights, stopwords, selection size and prompt wording.
package config

import (
	"strings"
)

// Supported prompt languages.
const (
	LanguageEnglish = "en"
	LanguageCzech   = "cs"
)

// FieldNames maps the logical fields used by scoring and prompting to the corpus' own field names.
// Corpora may use localized names (e.g., "Předmět" instead of "Subject").
type FieldNames struct {
	ID          string `json:"id" yaml:"id" mapstructure:"id"`                            // Identity field, e.g. "ID"
	Subject     string `json:"subject" yaml:"subject" mapstructure:"subject"`             // Short subject line
	Description string `json:"description" yaml:"description" mapstructure:"description"` // Free-text description
	Paragraphs  string `json:"paragraphs" yaml:"paragraphs" mapstructure:"paragraphs"`    // Legal code references
	Decision    string `json:"decision" yaml:"decision" mapstructure:"decision"`          // Court decision
	Sentence    string `json:"sentence" yaml:"sentence" mapstructure:"sentence"`          // Imposed sentence
}

// Weights are the per-field multipliers applied to intersection counts during scoring.
type Weights struct {
	Subject     int `json:"subject" yaml:"subject" mapstructure:"subject"`
	Description int `json:"description" yaml:"description" mapstructure:"description"`
	Paragraphs  int `json:"paragraphs" yaml:"paragraphs" mapstructure:"paragraphs"`
}

// FieldWeight binds a corpus field name to its scoring weight.
type FieldWeight struct {
	Field  string
	Weight int
}

// Settings contains all configuration options for ranking and prompt assembly.
// A Settings value is built once and then treated as read-only; components copy what they need
// at construction, so several configurations can run side by side.
type Settings struct {
	Fields           FieldNames `json:"fields" yaml:"fields" mapstructure:"fields"`
	Weights          Weights    `json:"weights" yaml:"weights" mapstructure:"weights"`
	Stopwords        []string   `json:"stopwords" yaml:"stopwords" mapstructure:"stopwords"`                         // Tokens excluded from all comparisons
	TopN             int        `json:"top_n" yaml:"top_n" mapstructure:"top_n"`                                     // Number of similar records to select
	QueryPlaceholder string     `json:"query_placeholder" yaml:"query_placeholder" mapstructure:"query_placeholder"` // Subject value of the synthetic query
	NotSpecified     string     `json:"not_specified" yaml:"not_specified" mapstructure:"not_specified"`             // Rendered for absent fields
	Language         string     `json:"language" yaml:"language" mapstructure:"language"`                            // Prompt template language: "en" or "cs"
}

// DefaultStopwords are short function words and punctuation symbols that never count as matches.
var DefaultStopwords = []string{
	"a", "i", "s", "v", "na", "se", "do", "je", "pro", "z", "u", "o", "§", ".",
	",", "?", "!", ":", ";", "-",
}

// DefaultSettings returns settings for a corpus with English field names.
func DefaultSettings() *Settings {
	return &Settings{
		Fields: FieldNames{
			ID:          "ID",
			Subject:     "Subject",
			Description: "Description",
			Paragraphs:  "Paragraphs",
			Decision:    "Decision",
			Sentence:    "Sentence",
		},
		Weights:          Weights{Subject: 5, Description: 1, Paragraphs: 3},
		Stopwords:        append([]string(nil), DefaultStopwords...),
		TopN:             3,
		QueryPlaceholder: "Unspecified",
		NotSpecified:     "not specified",
		Language:         LanguageEnglish,
	}
}

// CzechSettings returns settings for the Czech case corpus format.
func CzechSettings() *Settings {
	s := DefaultSettings()
	s.Fields = FieldNames{
		ID:          "ID",
		Subject:     "Předmět",
		Description: "Popis",
		Paragraphs:  "Paragrafy",
		Decision:    "Rozhodnutí",
		Sentence:    "Trest",
	}
	s.QueryPlaceholder = "Neurčený"
	s.NotSpecified = "neuvedeno"
	s.Language = LanguageCzech
	return s
}

// ScoredFields returns the corpus fields compared against the query, with their weights.
func (settings *Settings) ScoredFields() []FieldWeight {
	return []FieldWeight{
		{Field: settings.Fields.Subject, Weight: settings.Weights.Subject},
		{Field: settings.Fields.Description, Weight: settings.Weights.Description},
		{Field: settings.Fields.Paragraphs, Weight: settings.Weights.Paragraphs},
	}
}

// Clone returns a deep copy of the settings.
func (settings *Settings) Clone() *Settings {
	out := *settings
	out.Stopwords = append([]string(nil), settings.Stopwords...)
	return &out
}

// ApplyDefaults fills unset values from DefaultSettings.
// Stopwords are only defaulted when nil; an explicit empty list disables filtering.
func (settings *Settings) ApplyDefaults() {
	def := DefaultSettings()

	if settings.Fields.ID == "" {
		settings.Fields.ID = def.Fields.ID
	}
	if settings.Fields.Subject == "" {
		settings.Fields.Subject = def.Fields.Subject
	}
	if settings.Fields.Description == "" {
		settings.Fields.Description = def.Fields.Description
	}
	if settings.Fields.Paragraphs == "" {
		settings.Fields.Paragraphs = def.Fields.Paragraphs
	}
	if settings.Fields.Decision == "" {
		settings.Fields.Decision = def.Fields.Decision
	}
	if settings.Fields.Sentence == "" {
		settings.Fields.Sentence = def.Fields.Sentence
	}

	if settings.Weights == (Weights{}) {
		settings.Weights = def.Weights
	}
	if settings.Stopwords == nil {
		settings.Stopwords = def.Stopwords
	}
	if settings.TopN == 0 {
		settings.TopN = def.TopN
	}
	if settings.QueryPlaceholder == "" {
		settings.QueryPlaceholder = def.QueryPlaceholder
	}
	if settings.NotSpecified == "" {
		settings.NotSpecified = def.NotSpecified
	}
	if settings.Language == "" {
		settings.Language = def.Language
	}
}

// Validate checks the settings and returns one message per problem found.
func (settings *Settings) Validate() []string {
	var problems []string

	fields := map[string]string{
		"fields.id":          settings.Fields.ID,
		"fields.subject":     settings.Fields.Subject,
		"fields.description": settings.Fields.Description,
		"fields.paragraphs":  settings.Fields.Paragraphs,
		"fields.decision":    settings.Fields.Decision,
		"fields.sentence":    settings.Fields.Sentence,
	}
	for _, key := range []string{"fields.id", "fields.subject", "fields.description", "fields.paragraphs", "fields.decision", "fields.sentence"} {
		if strings.TrimSpace(fields[key]) == "" {
			problems = append(problems, "Field name '"+key+"' cannot be empty or whitespace-only")
		}
	}

	// Scoring reads three distinct fields; sharing a name would double count
	problems = append(problems, checkDuplicates("scored fields", []string{
		settings.Fields.Subject, settings.Fields.Description, settings.Fields.Paragraphs,
	})...)

	if settings.Weights.Subject <= 0 || settings.Weights.Description <= 0 || settings.Weights.Paragraphs <= 0 {
		problems = append(problems, "Field weights must be positive integers")
	}

	if settings.TopN <= 0 {
		problems = append(problems, "top_n must be a positive integer")
	}

	for _, word := range settings.Stopwords {
		if strings.TrimSpace(word) == "" || strings.ContainsAny(word, " \t\n\r") {
			problems = append(problems, "Stopword '"+word+"' must be a single non-empty token")
		}
	}

	if settings.Language != LanguageEnglish && settings.Language != LanguageCzech {
		problems = append(problems, "Invalid language '"+settings.Language+"' (must be 'en' or 'cs')")
	}

	return problems
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, fields []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, field := range fields {
		if seen[field] {
			errors = append(errors, "Duplicate field '"+field+"' found in "+fieldName)
		}
		seen[field] = true
	}

	return errors
}
