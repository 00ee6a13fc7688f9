package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/extract"
	"github.com/sells-group/leadgen-cli/internal/ingest"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/anthropic"
	"github.com/sells-group/leadgen-cli/pkg/googlecse"
)

const searchSource = "google_cse"

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a live people search and ingest the results",
	Long: `Queries the Google Custom Search API, extracts people profiles from the
hits and persists them together with their companies.

Examples:
  leadgen search --query "CTO Maschinenbau Stuttgart"
  leadgen search --query "Geschäftsführer Logistik" --max-results 30
  leadgen search --query "CTO Stuttgart" --save hits.json`,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.String("query", "", "search query (required)")
	f.Int("max-results", 0, "maximum hits to fetch (default from config)")
	f.String("save", "", "also write the raw hits to this JSON file")
	searchCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := cfg.Validate("search"); err != nil {
		return err
	}

	query, _ := cmd.Flags().GetString("query")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	savePath, _ := cmd.Flags().GetString("save")
	if maxResults < 1 {
		maxResults = cfg.Search.MaxResults
	}

	client := googlecse.NewClient(cfg.Search.Key, cfg.Search.CX,
		googlecse.WithBaseURL(cfg.Search.BaseURL),
		googlecse.WithRateLimit(cfg.Search.QueriesPerSecond),
	)

	zap.L().Info("searching", zap.String("query", query), zap.Int("max_results", maxResults))
	items, err := client.Search(ctx, query, maxResults)
	if err != nil {
		return eris.Wrap(err, "search")
	}

	hits := searchHits(items)
	if savePath != "" {
		if err := saveHits(savePath, hits); err != nil {
			return err
		}
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := ingest.Run(ctx, st, newExtractor(), hits, searchSource, query)
	if err != nil {
		return err
	}

	printIngestStats(stats)
	return nil
}

// newExtractor builds the profile extractor, with the LLM field fallback
// when configured.
func newExtractor() *extract.Extractor {
	if !cfg.Anthropic.UseLLM {
		return extract.New(nil)
	}
	client := anthropic.NewClient(cfg.Anthropic.Key)
	return extract.New(extract.NewAnthropicFieldExtractor(client, cfg.Anthropic.HaikuModel))
}

// searchHits converts API items into the hit shape the extractor reads.
func searchHits(items []googlecse.Item) []model.SearchHit {
	hits := make([]model.SearchHit, 0, len(items))
	for _, item := range items {
		hit := model.SearchHit{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		}
		for _, tags := range item.PageMap.Metatags {
			hit.Metatags = append(hit.Metatags, model.Metatag{
				FirstName:     tags["profile:first_name"],
				LastName:      tags["profile:last_name"],
				OGTitle:       tags["og:title"],
				OGDescription: tags["og:description"],
				OGURL:         tags["og:url"],
			})
		}
		hits = append(hits, hit)
	}
	return hits
}

func saveHits(path string, hits []model.SearchHit) error {
	data, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return eris.Wrap(err, "search: marshal hits")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "search: save hits")
	}
	return nil
}

func printIngestStats(stats ingest.Stats) {
	fmt.Printf("Run %s\n", stats.RunID)
	fmt.Printf("  hits:       %d\n", stats.Hits)
	fmt.Printf("  extracted:  %d (failed %d, duplicates %d)\n", stats.Extracted, stats.Failed, stats.Duplicates)
	fmt.Printf("  valid:      %d (invalid %d)\n", stats.Valid, stats.Invalid)
	fmt.Printf("  people:     %d\n", stats.People)
	fmt.Printf("  companies:  %d (review %d)\n", stats.Companies, stats.ReviewCompanies)
}
