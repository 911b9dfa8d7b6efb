// Package generation is the boundary to the external text generation service.
//
// The predictor hands one prompt to a Generator and gets one answer back. Nothing here retries;
// callers that need resilience wrap the Generator themselves.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gcbaptista/go-case-predictor/config"
	internalErrors "github.com/gcbaptista/go-case-predictor/internal/errors"
)

// Provider names accepted by New.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderEcho   = "echo"
)

// ErrEmptyResponse is wrapped into a GenerationError when a provider answers with no content.
var ErrEmptyResponse = errors.New("empty response")

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Func adapts an ordinary function to the Generator interface.
type Func func(ctx context.Context, prompt string) (string, error)

// Generate calls f(ctx, prompt).
func (f Func) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// New builds the generator selected by cfg.Provider, wrapped in a response cache when
// cfg.CacheSize is positive.
func New(ctx context.Context, cfg config.GeneratorConfig, logger *zap.Logger) (Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		gen Generator
		err error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderOpenAI, "":
		gen, err = NewOpenAI(cfg)
	case ProviderGemini:
		gen, err = NewGemini(ctx, cfg)
	case ProviderEcho:
		gen = Echo{}
	default:
		return nil, internalErrors.NewValidationError("generator.provider", fmt.Sprintf("unknown provider '%s'", cfg.Provider))
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("Generation provider ready",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Int("cache_size", cfg.CacheSize))

	if cfg.CacheSize > 0 {
		return NewCached(gen, cfg.CacheSize)
	}
	return gen, nil
}

// Echo returns the prompt unchanged. It is useful for offline runs and for inspecting prompts.
type Echo struct{}

// Generate returns prompt.
func (Echo) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", internalErrors.NewGenerationError(ProviderEcho, err)
	}
	return prompt, nil
}

// CheckAnswer turns blank generator output into a GenerationError wrapping ErrEmptyResponse.
func CheckAnswer(provider, answer string) (string, error) {
	if IsBlank(answer) {
		return "", internalErrors.NewGenerationError(provider, ErrEmptyResponse)
	}
	return answer, nil
}

// IsBlank reports whether answer has no content besides whitespace.
func IsBlank(answer string) bool {
	return strings.TrimSpace(answer) == ""
}
