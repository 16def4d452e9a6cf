package cmd

import (
	"github.com/huangsam/attrition/core"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/spf13/cobra"
)

// segmentCmd applies one scenario to a slice of the roster.
var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Apply a scenario to every matching employee of the roster.",
	Long: `Run the same scenario for a segment of the roster and rank the employees by
their predicted risk.

Filters combine:
- --department   exact department name, or all
- --risk-level   baseline level: high, medium, low
- --search       name or ID contains the text, ignoring case
- --where        CEL expression over employee (id, name, department, role,
                 baseline_risk, top_drivers, last_assessed, age, tenure_years,
                 satisfaction)

The summary covers every matching employee, not only the ones shown.

Examples:
  # What would a 10% raise do for the high-risk engineers?
  attrition segment --department Engineering --risk-level high --salary-increase 10

  # Young employees with some tenure
  attrition segment --where 'employee.age < 30 && employee.tenure_years > 2.0' --overtime`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSegment(rootCtx, cfg, rosterManager); err != nil {
			contract.LogFatal("Cannot run segment simulation", err)
		}
	},
}
