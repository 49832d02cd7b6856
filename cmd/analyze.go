package cmd

import (
	"github.com/fragmede/fundcli/core"
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd performs usage analysis over the shell history.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show which executables and projects you actually use.",
	Long: `Walk your Atuin shell history and rank executables by usage.

Each recorded command line is split into segments (pipes, logical operators,
command substitution), the executable of each segment is extracted and
normalized, and the results are attributed to open source projects.

Examples:
  # Last month of usage (default)
  fundcli analyze

  # Everything ever recorded, top 50
  fundcli analyze --period all --limit 50

  # Include executables with no known project
  fundcli analyze --unknown

  # Machine-readable output
  fundcli analyze --output json --output-file usage.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openHistoryStore()
		if err != nil {
			contract.LogFatal("Cannot open history database", err)
		}
		defer func() { _ = store.Close() }()

		if err := core.ExecuteAnalyze(rootCtx, cfg, store, projectRegistry); err != nil {
			contract.LogFatal("Cannot run usage analysis", err)
		}
	},
}
