package cmd

import (
	"github.com/fragmede/fundcli/core"
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/spf13/cobra"
)

// aliasesCmd resolves shell aliases to registry projects.
var aliasesCmd = &cobra.Command{
	Use:   "aliases",
	Short: "Show how your shell aliases map to known projects.",
	Long: `Probe your login shell for aliases and resolve each expansion to
its base executable.

Supports bash, zsh and fish. Alias chains are followed one level
(g -> gs -> 'git status'), and aliases that shadow a known executable
name are dropped rather than miscounted.

Examples:
  # Resolutions for the current $SHELL
  fundcli aliases

  # Export for inspection
  fundcli aliases --output csv --output-file aliases.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAliases(rootCtx, cfg, projectRegistry); err != nil {
			contract.LogFatal("Cannot resolve aliases", err)
		}
	},
}
