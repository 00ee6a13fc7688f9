package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/enrich"
	"github.com/sells-group/leadgen-cli/pkg/anthropic"
	"github.com/sells-group/leadgen-cli/pkg/perplexity"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Research pending companies via LLM and fill their profiles",
	Long: `Selects companies still missing enrichment data, researches each one
through the configured provider and writes the structured results back.

Examples:
  leadgen enrich
  leadgen enrich --limit 10
  leadgen enrich --concurrency 8`,
	RunE: runEnrich,
}

func init() {
	f := enrichCmd.Flags()
	f.Int("limit", 0, "maximum companies to enrich (default from config)")
	f.Int("concurrency", 0, "parallel research requests (default from config)")

	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := cfg.Validate("enrich"); err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if limit < 1 {
		limit = cfg.Enrich.Limit
	}
	if concurrency < 1 {
		concurrency = cfg.Enrich.Concurrency
	}

	var provider enrich.Provider
	switch cfg.Enrich.Provider {
	case "perplexity":
		client := perplexity.NewClient(cfg.Perplexity.Key,
			perplexity.WithBaseURL(cfg.Perplexity.BaseURL),
			perplexity.WithModel(cfg.Perplexity.Model),
		)
		provider = enrich.NewPerplexityProvider(client)
	default:
		client := anthropic.NewClient(cfg.Anthropic.Key)
		provider = enrich.NewAnthropicProvider(client, cfg.Anthropic.HaikuModel)
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	zap.L().Info("enrichment started",
		zap.String("provider", cfg.Enrich.Provider),
		zap.Int("limit", limit),
		zap.Int("concurrency", concurrency),
	)

	stats, err := enrich.Batch(ctx, st, provider, limit, concurrency)
	if err != nil {
		return err
	}

	fmt.Printf("Enriched %d of %d pending companies.\n", stats.Enriched, stats.Pending)
	return nil
}
