package generation

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/gcbaptista/go-case-predictor/config"
	internalErrors "github.com/gcbaptista/go-case-predictor/internal/errors"
)

const (
	defaultGeminiModel = "gemini-2.5-flash"
	geminiKeyEnv       = "GEMINI_API_KEY"
)

// Gemini generates answers through Google's Gemini API.
type Gemini struct {
	model    string
	generate func(ctx context.Context, model, prompt string) (string, error)
}

// NewGemini creates a Gemini client. The API key comes from cfg.APIKey or GEMINI_API_KEY.
func NewGemini(ctx context.Context, cfg config.GeneratorConfig) (*Gemini, error) {
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv(geminiKeyEnv)
	}
	if key == "" {
		return nil, internalErrors.NewValidationError("generator.api_key", "missing Gemini API key (set it in config or "+geminiKeyEnv+")")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	var genCfg *genai.GenerateContentConfig
	if cfg.Temperature != nil {
		temp := float32(*cfg.Temperature)
		genCfg = &genai.GenerateContentConfig{Temperature: &temp}
	}

	model := cfg.Model
	if model == "" || model == defaultOpenAIModel {
		model = defaultGeminiModel
	}

	return &Gemini{
		model: model,
		generate: func(ctx context.Context, model, prompt string) (string, error) {
			contents := []*genai.Content{
				genai.NewContentFromText(prompt, genai.RoleUser),
			}
			result, err := client.Models.GenerateContent(ctx, model, contents, genCfg)
			if err != nil {
				return "", err
			}
			return result.Text(), nil
		},
	}, nil
}

// Generate sends prompt as a single user turn and returns the concatenated text parts.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	answer, err := g.generate(ctx, g.model, prompt)
	if err != nil {
		return "", internalErrors.NewGenerationError(ProviderGemini, fmt.Errorf("GenAI generate failed: %w", err))
	}
	return CheckAnswer(ProviderGemini, answer)
}
