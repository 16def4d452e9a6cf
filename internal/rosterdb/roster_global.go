package rosterdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &RosterStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for roster storage.
func GetDBFilePath() string {
	return contract.GetRosterDBFilePath()
}

// InitRoster initializes the global roster manager with the configured backend.
func InitRoster(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		store, err := NewRosterStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize roster: %w", err)
			return
		}
		Manager.Lock()
		Manager.roster = store
		Manager.Unlock()
	})

	return initErr
}

// CloseRoster should be called on application shutdown.
func CloseRoster() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.roster != nil {
			_ = Manager.roster.Close()
		}
	})
}

// ClearRoster removes every employee for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it deletes the rows and keeps the table.
// The fixture roster cannot be cleared.
func ClearRoster(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		db, err := openDB(backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return clearSQLTable(db, backend)

	case schema.NoneBackend, "":
		return fmt.Errorf("cannot clear the %s backend: %w", schema.NoneBackend, contract.ErrReadOnlyRoster)

	default:
		return fmt.Errorf("unsupported roster backend for clearing: %s", backend)
	}
}

// clearSQLTable pings the database and empties the roster table.
func clearSQLTable(db *sql.DB, backend schema.DatabaseBackend) error {
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", backend, err)
	}
	return newRosterStoreWithDB(db, backend, "").ClearEmployees(context.Background())
}
