// Package prompt renders a query and its most similar past cases into the text handed to the
// generation provider.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/gcbaptista/go-case-predictor/config"
	internalErrors "github.com/gcbaptista/go-case-predictor/internal/errors"
	"github.com/gcbaptista/go-case-predictor/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// caseView is one enumerated past case as seen by the templates.
type caseView struct {
	Index       int
	ID          string
	Description string
	Paragraphs  string
	Decision    string
	Sentence    string
}

type promptView struct {
	Query string
	Cases []caseView
}

// Assembler builds prompts for one field-name configuration and language.
type Assembler struct {
	tmpl         *template.Template
	fields       config.FieldNames
	notSpecified string
}

// NewAssembler creates an assembler using the template for settings.Language.
func NewAssembler(settings *config.Settings) (*Assembler, error) {
	if settings == nil {
		return nil, internalErrors.NewValidationError("settings", "cannot be nil")
	}

	name := settings.Language + ".tmpl"
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, internalErrors.NewValidationError("language", fmt.Sprintf("no prompt template for '%s'", settings.Language))
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template %s: %w", name, err)
	}

	return &Assembler{
		tmpl:         tmpl,
		fields:       settings.Fields,
		notSpecified: settings.NotSpecified,
	}, nil
}

// Build renders the prompt. The query's Description is quoted verbatim; each selected record is
// listed 1..N with its ID, Description, Paragraphs, Decision and Sentence, and any absent field
// reads as the configured "not specified" text. With no selected records the case list is empty
// but the closing instructions are still present.
func (a *Assembler) Build(query model.Record, selected []model.Record) (string, error) {
	view := promptView{
		Query: query.Get(a.fields.Description),
		Cases: make([]caseView, len(selected)),
	}
	for i, rec := range selected {
		view.Cases[i] = caseView{
			Index:       i + 1,
			ID:          rec.GetOr(a.fields.ID, a.notSpecified),
			Description: rec.GetOr(a.fields.Description, a.notSpecified),
			Paragraphs:  rec.GetOr(a.fields.Paragraphs, a.notSpecified),
			Decision:    rec.GetOr(a.fields.Decision, a.notSpecified),
			Sentence:    rec.GetOr(a.fields.Sentence, a.notSpecified),
		}
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
