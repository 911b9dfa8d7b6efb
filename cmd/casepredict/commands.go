package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-case-predictor/api"
	"github.com/gcbaptista/go-case-predictor/config"
	"github.com/gcbaptista/go-case-predictor/internal/engine"
	"github.com/gcbaptista/go-case-predictor/internal/generation"
)

// loadPredictor builds the predictor from the loaded config. withGenerator is false for
// commands that never call the generation service, so they work without an API key.
func (a *app) loadPredictor(cmd *cobra.Command, withGenerator bool) (*engine.Predictor, error) {
	var gen generation.Generator
	if withGenerator {
		var err error
		gen, err = generation.New(cmd.Context(), a.cfg.Generator, a.logger)
		if err != nil {
			return nil, err
		}
	}
	return engine.LoadPredictor(&a.cfg.Settings, a.cfg.Corpus, gen, a.logger)
}

func newPredictCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "predict [description]",
		Short: "Rank past cases and ask the generation service for a prediction",
		Example: `  casepredict predict "vehicle stolen from a garage"
  casepredict predict --provider echo -n 5 vehicle stolen`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := description(args)
			if err != nil {
				return err
			}
			predictor, err := a.loadPredictor(cmd, true)
			if err != nil {
				return err
			}

			prediction, err := predictor.Predict(cmd.Context(), text, a.opts.topN)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, prediction)
			}
			_, err = fmt.Fprintln(out, prediction.Answer)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full prediction (hits, prompt, answer) as JSON")
	return cmd
}

func newRankCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "rank [description]",
		Short: "Show the past cases most similar to a description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := description(args)
			if err != nil {
				return err
			}
			predictor, err := a.loadPredictor(cmd, false)
			if err != nil {
				return err
			}

			hits := predictor.Rank(text, a.opts.topN)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, hits)
			}

			settings := predictor.Settings()
			for i, hit := range hits {
				id := hit.Record.GetOr(settings.Fields.ID, settings.NotSpecified)
				subject := hit.Record.GetOr(settings.Fields.Subject, settings.NotSpecified)
				if _, err := fmt.Fprintf(out, "%d. [%d] ID %s: %s\n", i+1, hit.Score, id, subject); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print hits with per-field matches as JSON")
	return cmd
}

func newPromptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt [description]",
		Short: "Print the prompt that predict would send, without calling the generation service",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := description(args)
			if err != nil {
				return err
			}
			predictor, err := a.loadPredictor(cmd, false)
			if err != nil {
				return err
			}

			prediction, err := predictor.Prompt(text, a.opts.topN)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), prediction.Prompt)
			return err
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rank, prompt and predict operations over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			predictor, err := a.loadPredictor(cmd, true)
			if err != nil {
				return err
			}

			router := api.NewRouter(predictor, a.logger, a.cfg.Server.MaxBodyBytes)
			return api.Serve(cmd.Context(), a.cfg.Server.Addr, router, a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config, e.g. :9000)")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create configuration",
	}

	var output string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration as YAML",
		Long: `Writes the configuration currently in effect (defaults, config file and
CASEPREDICT_* environment overrides) as YAML, to stdout or to --output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.cfg
			cfg.Generator.APIKey = ""

			if output == "" {
				return config.WriteYAML(cmd.OutOrStdout(), &cfg)
			}

			f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
			if err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
			if err := config.WriteYAML(f, &cfg); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return err
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "", "File to create (refuses to overwrite)")

	configCmd.AddCommand(initCmd)
	return configCmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
