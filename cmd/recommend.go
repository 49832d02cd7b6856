package cmd

import (
	"github.com/fragmede/fundcli/core"
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/spf13/cobra"
)

// recommendCmd computes a donation distribution over analyzed usage.
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Split a donation budget across the projects you use.",
	Long: `Analyze usage and allocate a budget across the projects behind it.

The distribution is exact: recommended amounts always sum to the budget.
Projects below the minimum threshold are excluded and their share is
redistributed; at most --max-projects projects are funded.

Weighting strategies:
  count    - invocation count (default)
  duration - accumulated command duration
  success  - invocations weighted by success rate
  combined - blend of count, duration and success

Examples:
  # Distribute $25 by invocation count
  fundcli recommend --amount 25.00

  # Reward the tools you spend time in
  fundcli recommend --amount 25.00 --weight duration

  # Fund at most 5 projects, at least $2 each
  fundcli recommend --amount 25.00 --max-projects 5 --min-amount 2.00

  # Markdown for pasting into a tracking issue
  fundcli recommend --amount 25.00 --output markdown`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openHistoryStore()
		if err != nil {
			contract.LogFatal("Cannot open history database", err)
		}
		defer func() { _ = store.Close() }()

		if err := core.ExecuteRecommend(rootCtx, cfg, store, projectRegistry); err != nil {
			contract.LogFatal("Cannot compute recommendations", err)
		}
	},
}
