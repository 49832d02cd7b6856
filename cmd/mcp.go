package cmd

import (
	"github.com/fragmede/fundcli/internal/classify"
	"github.com/fragmede/fundcli/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the fundcli MCP server",
	Long:  `Launch an MCP server that allows AI agents to analyze usage, compute donation recommendations and investigate executables via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Stdio carries the protocol, so setup must not print there.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		return mcp.StartMCPServer(rootCtx, cfg, store, projectRegistry, classify.Manager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
