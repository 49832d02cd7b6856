package cmd

import (
	"fmt"

	"github.com/fragmede/fundcli/core"
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd writes analysis snapshots to Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export <usage|recommendations>",
	Short: "Export analysis data to Parquet for analytics tools",
	Long: `Run the analysis and export a snapshot to Parquet format.

Datasets:
  usage           - one row per executable (counts, durations, success rates)
  recommendations - one row per advised donation for the configured budget

Parquet files load directly into DuckDB, pandas and Spark.

Requires: --output-file parameter

Examples:
  # Export usage rows
  fundcli export usage --output-file usage.parquet

  # Export a $25 distribution
  fundcli export recommendations --amount 25.00 --output-file recs.parquet

  # Query with DuckDB
  duckdb -c "SELECT * FROM read_parquet('usage.parquet') ORDER BY invocation_count DESC"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Cannot export", fmt.Errorf("--output-file is required"))
		}

		store, err := openHistoryStore()
		if err != nil {
			contract.LogFatal("Cannot open history database", err)
		}
		defer func() { _ = store.Close() }()

		if err := core.ExecuteExport(rootCtx, cfg, store, projectRegistry, args[0], cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
		fmt.Printf("Exported %s data to %s\n", args[0], cfg.OutputFile)
	},
}
