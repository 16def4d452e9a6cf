package rosterdb

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/attrition/schema"
)

//go:embed migrations
var migrationsFS embed.FS

// migrationDialects maps each SQL backend to its migrations subdirectory.
var migrationDialects = map[schema.DatabaseBackend]string{
	schema.SQLiteBackend:     "sqlite",
	schema.MySQLBackend:      "mysql",
	schema.PostgreSQLBackend: "postgresql",
}

// MigrateRoster runs database migrations for the roster store and returns the versions
// before and after the run.
// - If targetVersion < 0, it migrates to the latest version.
// - If targetVersion == 0, it rolls back all migrations (to initial state).
// - If targetVersion > 0, it migrates to the specified version.
func MigrateRoster(backend schema.DatabaseBackend, connStr string, targetVersion int) (before, after uint, err error) {
	dialect, ok := migrationDialects[backend]
	if !ok {
		return 0, 0, fmt.Errorf("migrations are not supported for the %s backend", backend)
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = db.Close() }()

	// Verify connection
	if err := db.Ping(); err != nil {
		return 0, 0, fmt.Errorf("failed to ping database: %w", err)
	}

	// Create a migrate driver instance
	var driver database.Driver
	switch backend {
	case schema.SQLiteBackend:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	case schema.MySQLBackend:
		driver, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	case schema.PostgreSQLBackend:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}

	migrationFS, err := fs.Sub(migrationsFS, "migrations/"+dialect)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to access migrations directory: %w", err)
	}

	sourceDriver, err := iofs.New(migrationFS, ".")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "attrition", driver)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, 0, fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return currentVersion, currentVersion, fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", currentVersion)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return currentVersion, currentVersion, fmt.Errorf("failed to migrate to latest version: %w", err)
		}
	case targetVersion == 0:
		err = m.Down()
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return currentVersion, currentVersion, fmt.Errorf("failed to roll back to version 0: %w", err)
		}
	default:
		err = m.Migrate(uint(targetVersion))
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return currentVersion, currentVersion, fmt.Errorf("failed to migrate to version %d: %w", targetVersion, err)
		}
	}

	newVersion, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return currentVersion, 0, nil
	}
	if err != nil {
		return currentVersion, 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return currentVersion, newVersion, nil
}

// PrintMigrationResult reports the outcome of MigrateRoster the way the CLI shows it.
func PrintMigrationResult(before, after uint) {
	if before == after {
		fmt.Printf("No migration needed. Roster schema is already at version %d\n", after)
		return
	}
	fmt.Printf("Successfully migrated roster schema from version %d to version %d\n", before, after)
}
