package cmd

import (
	"github.com/huangsam/attrition/core"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd ranks several named scenarios.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Rank named scenarios from a YAML file by predicted risk.",
	Long: `Simulate every scenario of --scenario-file against the same baseline and rank
them from the lowest to the highest predicted risk.

The file lists named scenarios. Omitted fields keep their neutral value:

  scenarios:
    - name: raise
      inputs:
        salary_increase: 10
    - name: remote
      inputs:
        work_from_home: 4

Examples:
  # Compare interventions for an employee
  attrition compare --scenario-file scenarios.yaml --employee EMP003

  # Export the ranking to CSV
  attrition compare --scenario-file scenarios.yaml --output csv --output-file ranking.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, rosterManager); err != nil {
			contract.LogFatal("Cannot compare scenarios", err)
		}
	},
}
