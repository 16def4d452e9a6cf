package cmd

import (
	"github.com/huangsam/attrition/core"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/spf13/cobra"
)

// modelCmd displays the rules and coefficients of the risk model.
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Display the rules and coefficients of the risk model",
	Long: `Show every rule of the risk model with its neutral value, domain, coefficient
and when it is surfaced as an impact factor.

Custom coefficients from the model section of .attrition.yaml are applied.
No simulation is performed - this is purely informational.

Examples:
  # Show the default model
  attrition model

  # View with custom coefficients from config file
  attrition model --config .attrition.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteModel(rootCtx, cfg, rosterManager); err != nil {
			contract.LogFatal("Cannot display model", err)
		}
	},
}
