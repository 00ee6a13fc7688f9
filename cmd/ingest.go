package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/ingest"
	"github.com/sells-group/leadgen-cli/internal/model"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest search hits from a saved JSON file",
	Long: `Reads hits saved by "search --save" (or produced by any other search
export in the same shape) and runs the extraction and persistence pipeline
without touching the search API.

Examples:
  leadgen ingest --input hits.json --query "CTO Stuttgart"
  leadgen ingest --input hits.json --source manual`,
	RunE: runIngest,
}

func init() {
	f := ingestCmd.Flags()
	f.String("input", "", "JSON file with search hits (required)")
	f.String("source", searchSource, "source name recorded on the rows")
	f.String("query", "", "query text recorded on the rows")
	ingestCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := cfg.Validate("ingest"); err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	source, _ := cmd.Flags().GetString("source")
	query, _ := cmd.Flags().GetString("query")

	data, err := os.ReadFile(input)
	if err != nil {
		return eris.Wrap(err, "ingest: read input")
	}
	var hits []model.SearchHit
	if err := json.Unmarshal(data, &hits); err != nil {
		return eris.Wrap(err, "ingest: parse input")
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := ingest.Run(ctx, st, newExtractor(), hits, source, query)
	if err != nil {
		return err
	}

	printIngestStats(stats)
	return nil
}
