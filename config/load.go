package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Preset names select the base Settings that a config file overlays.
const (
	PresetEnglish = "en"
	PresetCzech   = "cs"
)

// GeneratorConfig selects and configures the text generation provider.
type GeneratorConfig struct {
	Provider       string   `json:"provider" yaml:"provider" mapstructure:"provider"` // "openai", "gemini" or "echo"
	Model          string   `json:"model" yaml:"model" mapstructure:"model"`
	BaseURL        string   `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`
	APIKey         string   `json:"-" yaml:"api_key,omitempty" mapstructure:"api_key"` // Falls back to the provider's env var
	TimeoutSeconds int      `json:"timeout_seconds" yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	Temperature    *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" mapstructure:"temperature"`
	CacheSize      int      `json:"cache_size" yaml:"cache_size" mapstructure:"cache_size"` // LRU entries; 0 disables caching
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr         string `json:"addr" yaml:"addr" mapstructure:"addr"`
	MaxBodyBytes int64  `json:"max_body_bytes" yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// AppConfig is the full application configuration.
type AppConfig struct {
	Corpus    string          `json:"corpus" yaml:"corpus" mapstructure:"corpus"`
	LogLevel  string          `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	Preset    string          `json:"preset" yaml:"preset" mapstructure:"preset"`
	Settings  Settings        `json:"settings" yaml:"settings" mapstructure:"settings"`
	Generator GeneratorConfig `json:"generator" yaml:"generator" mapstructure:"generator"`
	Server    ServerConfig    `json:"server" yaml:"server" mapstructure:"server"`
}

// DefaultAppConfig returns the configuration used when no file or env overrides exist.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Corpus:   "cases.txt",
		LogLevel: "info",
		Preset:   PresetEnglish,
		Settings: *DefaultSettings(),
		Generator: GeneratorConfig{
			Provider:       "openai",
			Model:          "gpt-3.5-turbo",
			TimeoutSeconds: 60,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
		},
	}
}

// Load reads configuration from path (or casepredict.yaml in . or ./config when path is empty),
// applies CASEPREDICT_* environment overrides and fills defaults.
// A missing default config file is not an error; a missing explicit one is.
func Load(path string, logger *zap.Logger) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("casepredict")
		v.AddConfigPath(".")        // For running locally
		v.AddConfigPath("./config") // Common config folder
	}
	v.SetEnvPrefix("CASEPREDICT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultAppConfig()
	v.SetDefault("corpus", def.Corpus)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("preset", def.Preset)
	v.SetDefault("generator.provider", def.Generator.Provider)
	v.SetDefault("generator.model", def.Generator.Model)
	v.SetDefault("generator.base_url", "")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.timeout_seconds", def.Generator.TimeoutSeconds)
	v.SetDefault("generator.cache_size", def.Generator.CacheSize)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.max_body_bytes", def.Server.MaxBodyBytes)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if logger != nil {
			logger.Debug("No config file found, using defaults/env vars")
		}
	} else if logger != nil {
		logger.Debug("Loaded config file", zap.String("path", v.ConfigFileUsed()))
	}

	// Settings defaults depend on the preset, so they are registered after the file is read
	base, err := presetSettings(v.GetString("preset"))
	if err != nil {
		return nil, err
	}
	setSettingsDefaults(v, base)

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.Settings.ApplyDefaults()

	if problems := cfg.Settings.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid settings: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// WriteYAML writes cfg as a YAML document, suitable as a starting config file.
func WriteYAML(w io.Writer, cfg *AppConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("unable to encode config: %w", err)
	}
	return enc.Close()
}

func presetSettings(preset string) (*Settings, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", PresetEnglish:
		return DefaultSettings(), nil
	case PresetCzech:
		return CzechSettings(), nil
	default:
		return nil, fmt.Errorf("unknown preset '%s' (must be 'en' or 'cs')", preset)
	}
}

func setSettingsDefaults(v *viper.Viper, s *Settings) {
	v.SetDefault("settings.fields.id", s.Fields.ID)
	v.SetDefault("settings.fields.subject", s.Fields.Subject)
	v.SetDefault("settings.fields.description", s.Fields.Description)
	v.SetDefault("settings.fields.paragraphs", s.Fields.Paragraphs)
	v.SetDefault("settings.fields.decision", s.Fields.Decision)
	v.SetDefault("settings.fields.sentence", s.Fields.Sentence)
	v.SetDefault("settings.weights.subject", s.Weights.Subject)
	v.SetDefault("settings.weights.description", s.Weights.Description)
	v.SetDefault("settings.weights.paragraphs", s.Weights.Paragraphs)
	v.SetDefault("settings.stopwords", s.Stopwords)
	v.SetDefault("settings.top_n", s.TopN)
	v.SetDefault("settings.query_placeholder", s.QueryPlaceholder)
	v.SetDefault("settings.not_specified", s.NotSpecified)
	v.SetDefault("settings.language", s.Language)
}
