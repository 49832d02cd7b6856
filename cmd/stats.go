package cmd

import (
	"github.com/fragmede/fundcli/core"
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/spf13/cobra"
)

// statsCmd shows history database statistics.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display history database statistics.",
	Long: `Show summary statistics for the Atuin history database.

Displays the total number of recorded commands and the timestamps of
the oldest and newest records.

Examples:
  # Default database location
  fundcli stats

  # Explicit database path
  fundcli stats --history-db /backups/history.db`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openHistoryStore()
		if err != nil {
			contract.LogFatal("Cannot open history database", err)
		}
		defer func() { _ = store.Close() }()

		if err := core.ExecuteStats(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Cannot read history statistics", err)
		}
	},
}
