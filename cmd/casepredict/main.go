package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-case-predictor/config"
)

// options holds the global flags shared by every subcommand.
type options struct {
	configPath string
	corpus     string
	provider   string
	topN       int
	verbose    bool
}

// app is the state built once per invocation by the root command's pre-run hook.
type app struct {
	opts   options
	cfg    *config.AppConfig
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "casepredict",
		Short: "Predict the outcome of a legal case from similar past cases",
		Long: `casepredict ranks a corpus of past court cases by lexical similarity to a new
case description, builds a prompt from the closest matches and asks a text
generation service for next steps and a likely decision.

The corpus is a plain text file of "Key: Value" records separated by blank lines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.opts.configPath, "config", "c", "", "Config file (default: casepredict.yaml in . or ./config)")
	rootCmd.PersistentFlags().StringVar(&a.opts.corpus, "corpus", "", "Corpus file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&a.opts.provider, "provider", "", "Generation provider: openai, gemini or echo (overrides config)")
	rootCmd.PersistentFlags().IntVarP(&a.opts.topN, "top-n", "n", 0, "Number of past cases to use (0: configured default)")
	rootCmd.PersistentFlags().BoolVarP(&a.opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newPredictCmd(a))
	rootCmd.AddCommand(newRankCmd(a))
	rootCmd.AddCommand(newPromptCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// setup loads configuration, applies flag overrides and initializes the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if a.opts.topN < 0 {
		return fmt.Errorf("--top-n cannot be negative (got %d)", a.opts.topN)
	}

	cfg, err := config.Load(a.opts.configPath, nil)
	if err != nil {
		return err
	}
	if a.opts.corpus != "" {
		cfg.Corpus = a.opts.corpus
	}
	if a.opts.provider != "" {
		cfg.Generator.Provider = a.opts.provider
	}
	if a.opts.verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	logger.Debug("Configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("corpus", cfg.Corpus),
		zap.String("provider", cfg.Generator.Provider),
		zap.String("language", cfg.Settings.Language))
	return nil
}

// description joins positional arguments into the case description.
func description(args []string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", fmt.Errorf("case description cannot be blank")
	}
	return text, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
