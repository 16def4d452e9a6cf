package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/attrition/core"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/internal/rosterdb"
	"github.com/huangsam/attrition/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rosterBackendFromViper reads and validates the roster backend settings.
func rosterBackendFromViper() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backendStr := strings.ToLower(strings.TrimSpace(viper.GetString("roster-backend")))
	connStr := viper.GetString("roster-db-connect")

	// Handle empty backend as NoneBackend
	backend := schema.NoneBackend
	if backendStr != "" {
		backend = schema.DatabaseBackend(backendStr)
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid roster backend '%s'. must be none, sqlite, mysql, postgresql", backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// rosterSetup loads minimal configuration needed for roster administration.
// This is used by commands that need roster access without full shared setup.
func rosterSetup() error {
	backend, connStr, err := rosterBackendFromViper()
	if err != nil {
		return err
	}
	if err := rosterdb.InitRoster(backend, connStr); err != nil {
		return err
	}
	cfg.RosterBackend = backend
	cfg.RosterDBConnect = connStr
	return nil
}

// rosterSetupWrapper wraps rosterSetup to provide PreRunE for roster commands.
func rosterSetupWrapper(_ *cobra.Command, _ []string) error {
	return rosterSetup()
}

// rosterMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the store or create tables,
// allowing migrations to run on a fresh database.
func rosterMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := rosterBackendFromViper()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = rosterdb.GetDBFilePath()
	}

	cfg.RosterBackend = backend
	cfg.RosterDBConnect = connStr
	return nil
}

// sqliteFilePath returns the SQLite file a roster command acts on.
func sqliteFilePath() string {
	if cfg.RosterDBConnect != "" {
		return cfg.RosterDBConnect
	}
	return rosterdb.GetDBFilePath()
}

// rosterCmd focused on roster data management.
//
// Note: status, seed, clear and migrate use minimal initialization (rosterSetup)
// instead of the full sharedSetup used by simulation commands.
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Browse and manage the employee roster",
	Long: `Manage the employees whose baseline risk simulations start from.

Supported backends: none (built-in read-only roster, default), SQLite, MySQL, PostgreSQL

Subcommands:
  list    - List employees, with the segment filters
  show    - Show one employee
  status  - Show roster statistics
  seed    - Load employees from a file, or the built-in roster
  migrate - Run database schema migrations
  clear   - Remove all employees
  export  - Export employees to Parquet

Examples:
  # Create a SQLite roster with the built-in employees
  attrition roster migrate --roster-backend sqlite
  attrition roster seed --roster-backend sqlite

  # Browse it
  attrition roster list --roster-backend sqlite --department Engineering`,
}

// rosterListCmd lists employees.
var rosterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees of the roster",
	Long: `List employees ordered by ID.

Accepts the same filters as segment: --department, --risk-level, --search and --where.

Examples:
  attrition roster list --risk-level high
  attrition roster list --where '"Training" in employee.top_drivers' --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRosterList(rootCtx, cfg, rosterManager); err != nil {
			contract.LogFatal("Cannot list employees", err)
		}
	},
}

// rosterShowCmd shows one employee.
var rosterShowCmd = &cobra.Command{
	Use:   "show <employee-id>",
	Short: "Show one employee of the roster",
	Long: `Show the baseline risk, drivers and profile of one employee.

Examples:
  attrition roster show EMP001`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteRosterShow(rootCtx, cfg, rosterManager, args[0]); err != nil {
			contract.LogFatal("Cannot show employee", err)
		}
	},
}

// rosterStatusCmd shows roster status.
var rosterStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display roster statistics and connection details",
	Long: `Show the backend, number of employees per department, mean baseline risk,
latest assessment date and schema version of the roster.

Examples:
  attrition roster status --roster-backend sqlite`,
	PreRunE: rosterSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := rosterdb.Manager.GetRosterStore().GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get roster status", err)
		}
		rosterdb.PrintRosterStatus(status)
	},
}

// rosterSeedCmd loads employees into the roster.
var rosterSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load employees into the roster",
	Long: `Insert employees into a database roster, replacing existing rows with the same ID.

Without --seed-file the built-in roster is loaded. Files may be .json, .yaml or
.parquet (as written by roster export).

Examples:
  attrition roster seed --roster-backend sqlite
  attrition roster seed --roster-backend sqlite --seed-file employees.yaml`,
	PreRunE: rosterSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		employees := rosterdb.FixtureEmployees()
		if path := viper.GetString("seed-file"); path != "" {
			loaded, err := rosterdb.LoadSeedFile(path)
			if err != nil {
				contract.LogFatal("Failed to load seed file", err)
			}
			employees = loaded
		}
		if err := rosterdb.Manager.GetRosterStore().SeedEmployees(rootCtx, employees); err != nil {
			contract.LogFatal("Failed to seed roster", err)
		}
		fmt.Printf("Seeded %d employees into the %s roster.\n", len(employees), cfg.RosterBackend)
	},
}

// rosterMigrateCmd runs database migrations for the roster store.
var rosterMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the roster store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  attrition roster migrate --roster-backend sqlite

  # Rollback to initial state
  attrition roster migrate --roster-backend sqlite --target-version 0`,
	PreRunE: rosterMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		before, after, err := rosterdb.MigrateRoster(cfg.RosterBackend, cfg.RosterDBConnect, targetVersion)
		if err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		rosterdb.PrintMigrationResult(before, after)
	},
}

// rosterClearCmd clears the roster.
var rosterClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all employees from the roster",
	Long: `Delete every employee of a database roster. For SQLite the database file is removed.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  attrition roster export --roster-backend sqlite --output-file backup.parquet
  attrition roster clear --roster-backend sqlite`,
	PreRunE: rosterMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := rosterdb.ClearRoster(cfg.RosterBackend, sqliteFilePath(), cfg.RosterDBConnect); err != nil {
			contract.LogFatal("Failed to clear roster", err)
		}
		fmt.Println("Roster cleared successfully.")
	},
}

// rosterExportCmd exports the roster to Parquet.
var rosterExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the roster to Parquet",
	Long: `Write every employee to a Parquet file for analytics tools or a later seed.

Requires: --output-file parameter

Examples:
  attrition roster export --output-file roster.parquet
  duckdb -c "SELECT department, avg(baseline_risk) FROM 'roster.parquet' GROUP BY 1"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := rosterdb.ExportRoster(rootCtx, rosterManager.GetRosterStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export roster", err)
		}
	},
}
