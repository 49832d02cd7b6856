package cmd

import (
	"github.com/fragmede/fundcli/core"
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/spf13/cobra"
)

// projectsCmd searches or lists the bundled project registry.
var projectsCmd = &cobra.Command{
	Use:   "projects [query]",
	Short: "Search or list the known open source projects.",
	Long: `Look up projects in the bundled registry.

With a query, matches against project names, descriptions, ids and
executable names. With --all, lists every known project.

Examples:
  # Which project owns 'rg'?
  fundcli projects rg

  # Everything in the registry
  fundcli projects --all`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		listAll, _ := cmd.Flags().GetBool("all")

		if err := core.ExecuteProjects(cfg, projectRegistry, query, listAll); err != nil {
			contract.LogFatal("Cannot list projects", err)
		}
	},
}
