// Package cmd defines the command-line interface for attrition.
package cmd

import (
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(segmentCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the roster subcommands to the parent roster command
	rosterCmd.AddCommand(rosterListCmd)
	rosterCmd.AddCommand(rosterShowCmd)
	rosterCmd.AddCommand(rosterStatusCmd)
	rosterCmd.AddCommand(rosterSeedCmd)
	rosterCmd.AddCommand(rosterMigrateCmd)
	rosterCmd.AddCommand(rosterClearCmd)
	rosterCmd.AddCommand(rosterExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Float64("baseline", schema.DefaultBaselineRisk, "Baseline attrition risk (0-100) when no employee is given")
	rootCmd.PersistentFlags().StringP("employee", "e", "", "Employee ID whose baseline risk is used")
	rootCmd.PersistentFlags().Float64("salary-increase", 0, "Salary increase in percent (0-20)")
	rootCmd.PersistentFlags().Bool("overtime", false, "Overtime is required")
	rootCmd.PersistentFlags().String("business-travel", string(schema.TravelRarely), "Business travel: never or rarely or frequently or non-travel")
	rootCmd.PersistentFlags().Float64("training-hours", 40, "Training hours per year (0-120)")
	rootCmd.PersistentFlags().Bool("manager-change", false, "The employee recently changed manager")
	rootCmd.PersistentFlags().Float64("work-from-home", 2, "Work from home days per week (0-5)")
	rootCmd.PersistentFlags().Float64("job-satisfaction", 3, "Job satisfaction level (1-5)")
	rootCmd.PersistentFlags().Bool("symmetric-factors", false, "Show every non-zero contribution as an impact factor")
	rootCmd.PersistentFlags().String("delay", "", "Wait this long before simulating, e.g. 2s")
	rootCmd.PersistentFlags().StringP("department", "d", "", "Only include employees of this department (or all)")
	rootCmd.PersistentFlags().String("risk-level", "", "Only include employees at this baseline level: high or medium or low or all")
	rootCmd.PersistentFlags().StringP("search", "s", "", "Only include employees whose name or ID contains this text")
	rootCmd.PersistentFlags().String("where", "", "CEL expression over employee, e.g. 'employee.age < 30'")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("roster-backend", string(schema.NoneBackend), "Roster backend: none or sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("roster-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level for serve and mcp: debug or info or warn or error")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of sweepCmd to Viper
	sweepCmd.Flags().String("field", "", "Scenario field to sweep across its domain")
	if err := viper.BindPFlags(sweepCmd.Flags()); err != nil {
		contract.LogFatal("Error binding sweep flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().String("scenario-file", "", "YAML file with the named scenarios to compare")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultServeAddr, "Address the HTTP API listens on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of rosterSeedCmd to Viper
	rosterSeedCmd.Flags().String("seed-file", "", "Employees to load: .json, .yaml or .parquet (default: built-in roster)")
	if err := viper.BindPFlags(rosterSeedCmd.Flags()); err != nil {
		contract.LogFatal("Error binding roster seed flags", err)
	}

	// Bind all flags of rosterMigrateCmd to Viper
	rosterMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(rosterMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding roster migrate flags", err)
	}
}
