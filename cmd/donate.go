package cmd

import (
	"github.com/fragmede/fundcli/core"
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/spf13/cobra"
)

// donateCmd turns recommendations into actionable donation links.
var donateCmd = &cobra.Command{
	Use:   "donate",
	Short: "Generate donation links for your recommended projects.",
	Long: `Compute recommendations and produce a donation link per platform.

Projects sharing a donation URL (e.g. fiscal hosts) are merged into one
link. Open Collective links are pre-filled with the recommended amount;
GitHub Sponsors and direct links are not, since those platforms have no
pre-fill support.

Examples:
  # Show links for a $25 budget
  fundcli donate --amount 25.00

  # Write a shareable report
  fundcli donate --amount 25.00 --output-file donations.html

  # Open every link in the browser
  fundcli donate --amount 25.00 --open`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openHistoryStore()
		if err != nil {
			contract.LogFatal("Cannot open history database", err)
		}
		defer func() { _ = store.Close() }()

		if err := core.ExecuteDonate(rootCtx, cfg, store, projectRegistry); err != nil {
			contract.LogFatal("Cannot generate donation links", err)
		}
	},
}
