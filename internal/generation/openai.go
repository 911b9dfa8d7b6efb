package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gcbaptista/go-case-predictor/config"
	internalErrors "github.com/gcbaptista/go-case-predictor/internal/errors"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-3.5-turbo"
	openAIKeyEnv         = "OPENAI_API_KEY"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// OpenAI talks to an OpenAI-compatible /chat/completions endpoint.
type OpenAI struct {
	httpClient  *http.Client
	url         string
	apiKey      string
	model       string
	temperature *float64
}

// NewOpenAI creates a client from cfg. The API key comes from cfg.APIKey or OPENAI_API_KEY.
func NewOpenAI(cfg config.GeneratorConfig) (*OpenAI, error) {
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv(openAIKeyEnv)
	}
	if key == "" {
		return nil, internalErrors.NewValidationError("generator.api_key", "missing OpenAI API key (set it in config or "+openAIKeyEnv+")")
	}

	base := cfg.BaseURL
	if base == "" {
		base = defaultOpenAIBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &OpenAI{
		httpClient:  &http.Client{Timeout: timeout},
		url:         strings.TrimRight(base, "/") + "/chat/completions",
		apiKey:      key,
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

// Generate sends prompt as a single user message and returns the first choice's content.
func (c *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", internalErrors.NewGenerationError(ProviderOpenAI, fmt.Errorf("marshal chat request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", internalErrors.NewGenerationError(ProviderOpenAI, fmt.Errorf("create chat request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", internalErrors.NewGenerationError(ProviderOpenAI, fmt.Errorf("send chat request: %w", err))
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", internalErrors.NewGenerationError(ProviderOpenAI, fmt.Errorf("read chat response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", internalErrors.NewGenerationError(ProviderOpenAI,
			fmt.Errorf("server status %s: %s", resp.Status, strings.TrimSpace(string(bodyBytes))))
	}

	var cr chatResponse
	if err := json.Unmarshal(bodyBytes, &cr); err != nil {
		return "", internalErrors.NewGenerationError(ProviderOpenAI, fmt.Errorf("decode chat response: %w", err))
	}
	if len(cr.Choices) == 0 {
		return "", internalErrors.NewGenerationError(ProviderOpenAI, ErrEmptyResponse)
	}
	return CheckAnswer(ProviderOpenAI, cr.Choices[0].Message.Content)
}
