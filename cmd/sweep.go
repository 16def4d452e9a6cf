package cmd

import (
	"github.com/huangsam/attrition/core"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/spf13/cobra"
)

// sweepCmd computes a sensitivity curve for one field.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Show how the predicted risk responds to one field across its range.",
	Long: `Vary a single scenario field across its whole domain while every other input
stays fixed, and print the predicted risk at each value.

Fields:
  salary_increase   0 to 20 in steps of 1
  overtime          no and yes
  business_travel   never, rarely, frequently, non-travel
  training_hours    0 to 120 in steps of 5
  manager_change    no and yes
  work_from_home    0 to 5 in steps of 1
  job_satisfaction  1 to 5 in steps of 1

Examples:
  # How much does salary matter for EMP001?
  attrition sweep --field salary_increase --employee EMP001

  # Training sensitivity with overtime held on
  attrition sweep --field training-hours --overtime`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSweep(rootCtx, cfg, rosterManager); err != nil {
			contract.LogFatal("Cannot run sweep", err)
		}
	},
}
