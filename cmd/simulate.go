package cmd

import (
	"github.com/huangsam/attrition/core"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/spf13/cobra"
)

// simulateCmd runs one what-if scenario.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Predict the attrition risk of a scenario and explain what moved it.",
	Long: `Apply a scenario of HR interventions to a baseline risk.

The baseline comes from --employee when given, otherwise from --baseline.
Each intervention adds a signed contribution and the result is clamped to 0-100:
- Salary increase lowers risk per point above 0
- Overtime and manager changes raise risk
- Frequent travel raises risk, no travel lowers it
- Training above 40 hours and remote days above 2 lower risk
- Job satisfaction above 3 lowers risk, below 3 raises it

The output lists the predicted risk, the impact factors ranked by magnitude,
and a recommendation.

Examples:
  # Dashboard example: overtime, frequent travel and a 10% raise
  attrition simulate --overtime --business-travel frequently --salary-increase 10

  # Start from an employee of the roster
  attrition simulate --employee EMP001 --job-satisfaction 4

  # Show every non-zero contribution, including training and travel credits
  attrition simulate --training-hours 80 --business-travel never --symmetric-factors

  # Export the result as JSON
  attrition simulate --manager-change --output json --output-file result.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSimulate(rootCtx, cfg, rosterManager); err != nil {
			contract.LogFatal("Cannot run simulation", err)
		}
	},
}
