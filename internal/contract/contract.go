// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/huangsam/attrition/schema"
)

// ErrReadOnlyRoster is returned when a write is attempted on a roster that cannot change.
var ErrReadOnlyRoster = errors.New("roster is read-only")

// RosterManager defines the interface for managing the roster store.
// This allows the storage layer to be mocked for testing.
type RosterManager interface {
	GetRosterStore() RosterStore
}

// RosterStore defines the operations over the employee roster.
// Simulations only read from it; seed and clear are administrative.
type RosterStore interface {
	// ListEmployees returns every employee ordered by ID.
	ListEmployees(ctx context.Context) ([]schema.Employee, error)

	// GetEmployee returns one employee, or an error wrapping ErrEmployeeNotFound.
	GetEmployee(ctx context.Context, id string) (schema.Employee, error)

	// SeedEmployees inserts the employees, replacing existing rows with the same ID.
	SeedEmployees(ctx context.Context, employees []schema.Employee) error

	// ClearEmployees removes every employee.
	ClearEmployees(ctx context.Context) error

	// GetStatus returns status information about the roster store
	GetStatus(ctx context.Context) (schema.RosterStatus, error)

	// Close closes the underlying connection
	Close() error
}

// ErrEmployeeNotFound is returned when an employee ID is not in the roster.
var ErrEmployeeNotFound = errors.New("employee not found")
