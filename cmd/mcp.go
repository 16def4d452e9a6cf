package cmd

import (
	"github.com/huangsam/attrition/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd serves the simulator to AI agents over stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Attrition MCP server",
	Long: `Launch an MCP server on stdio so AI agents can run scenario simulations,
sweeps and segment analysis through standard tools.

Roster and model settings come from the usual flags and config file. Scenario
inputs are supplied per tool call and start from the neutral scenario.`,
	// Stdout carries the protocol, so nothing else may print there.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, rosterManager)
	},
}
