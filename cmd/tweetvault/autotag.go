package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"tweetvault/pkg/tagger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	autotagLLMFlag    bool
	autotagDryRunFlag bool
	autotagLimitFlag  int
	autotagModelFlag  string
)

var autotagCmd = &cobra.Command{
	Use:   "autotag",
	Short: "Suggest and apply tags on untagged entries",
	Long: `Scan untagged entries and tag them automatically. The keyword rule pass always
runs; --llm adds an Anthropic classification pass on top (requires
ANTHROPIC_API_KEY). With --dry-run the suggestions are printed but nothing is
written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer logger.Sync()

		opts := tagger.Options{
			Limit:  autotagLimitFlag,
			DryRun: autotagDryRunFlag,
		}

		if autotagLLMFlag {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			model := autotagModelFlag
			if model == "" {
				model = cfg.AnthropicModel
			}
			if cfg.AnthropicKey == "" {
				return errors.New("--llm requires ANTHROPIC_API_KEY to be set")
			}
			classifier, err := tagger.NewClassifier(cfg.AnthropicKey, model)
			if err != nil {
				return err
			}
			opts.Classifier = classifier
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		logger.Info("auto-tag run starting",
			zap.Int("limit", opts.Limit),
			zap.Bool("llm", autotagLLMFlag),
			zap.Bool("dryRun", autotagDryRunFlag),
		)

		result, err := tagger.Run(cmd.Context(), dbConn, opts)
		if err != nil {
			return fmt.Errorf("auto-tag run failed: %w", err)
		}

		logger.Info("auto-tag run finished",
			zap.Int("scanned", result.Scanned),
			zap.Int("tagged", result.Tagged),
		)

		verb := "Tagged"
		if autotagDryRunFlag {
			verb = "Would tag"
		}
		fmt.Printf("Scanned %d untagged entries. %s %d.\n", result.Scanned, verb, result.Tagged)

		ids := make([]string, 0, len(result.Suggested))
		for id := range result.Suggested {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Printf("  %s: %s\n", id, strings.Join(result.Suggested[id], ", "))
		}
		return nil
	},
}

func initAutotagCmd() {
	autotagCmd.Flags().BoolVar(&autotagLLMFlag, "llm", false, "Also run the Anthropic classification pass")
	autotagCmd.Flags().BoolVar(&autotagDryRunFlag, "dry-run", false, "Print suggestions without writing them")
	autotagCmd.Flags().IntVar(&autotagLimitFlag, "limit", 0, "Maximum entries to scan (default 50)")
	autotagCmd.Flags().StringVar(&autotagModelFlag, "model", "", "Anthropic model name (overrides the config file)")
}
