package rosterdb

import (
	"context"
	"fmt"
	"slices"

	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
)

// FixtureEmployees returns the built-in roster used when no database is configured.
func FixtureEmployees() []schema.Employee {
	return []schema.Employee{
		{
			ID:           "EMP001",
			Name:         "Sarah Chen",
			Department:   "Engineering",
			Role:         "Senior Developer",
			BaselineRisk: 85,
			TopDrivers:   []string{"Job Satisfaction", "Work-Life Balance"},
			LastAssessed: "2024-01-15",
			Age:          29,
			TenureYears:  3.2,
			Satisfaction: 2.1,
		},
		{
			ID:           "EMP002",
			Name:         "Mike Johnson",
			Department:   "Sales",
			Role:         "Account Manager",
			BaselineRisk: 62,
			TopDrivers:   []string{"Compensation", "Career Growth"},
			LastAssessed: "2024-01-15",
			Age:          34,
			TenureYears:  5.1,
			Satisfaction: 3.4,
		},
		{
			ID:           "EMP003",
			Name:         "Emily Davis",
			Department:   "Marketing",
			Role:         "Marketing Specialist",
			BaselineRisk: 78,
			TopDrivers:   []string{"Manager Quality", "Workload"},
			LastAssessed: "2024-01-14",
			Age:          26,
			TenureYears:  1.8,
			Satisfaction: 2.8,
		},
		{
			ID:           "EMP004",
			Name:         "Alex Kim",
			Department:   "Finance",
			Role:         "Financial Analyst",
			BaselineRisk: 45,
			TopDrivers:   []string{"Career Growth", "Training"},
			LastAssessed: "2024-01-13",
			Age:          31,
			TenureYears:  4.2,
			Satisfaction: 3.8,
		},
	}
}

// FixtureStore is an in-memory, read-only roster.
type FixtureStore struct {
	employees []schema.Employee
}

var _ contract.RosterStore = &FixtureStore{} // Compile-time check

// NewFixtureStore returns a store over the built-in roster.
func NewFixtureStore() *FixtureStore {
	return &FixtureStore{employees: FixtureEmployees()}
}

// ListEmployees returns a copy of the roster ordered by ID.
func (fs *FixtureStore) ListEmployees(_ context.Context) ([]schema.Employee, error) {
	out := slices.Clone(fs.employees)
	slices.SortFunc(out, func(a, b schema.Employee) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return out, nil
}

// GetEmployee returns the employee with the given ID.
func (fs *FixtureStore) GetEmployee(_ context.Context, id string) (schema.Employee, error) {
	for _, e := range fs.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return schema.Employee{}, fmt.Errorf("%w: %s", contract.ErrEmployeeNotFound, id)
}

// SeedEmployees always fails because the fixture roster is read-only.
func (fs *FixtureStore) SeedEmployees(_ context.Context, _ []schema.Employee) error {
	return fmt.Errorf("cannot seed the %s backend: %w", schema.NoneBackend, contract.ErrReadOnlyRoster)
}

// ClearEmployees always fails because the fixture roster is read-only.
func (fs *FixtureStore) ClearEmployees(_ context.Context) error {
	return fmt.Errorf("cannot clear the %s backend: %w", schema.NoneBackend, contract.ErrReadOnlyRoster)
}

// GetStatus summarizes the fixture roster.
func (fs *FixtureStore) GetStatus(_ context.Context) (schema.RosterStatus, error) {
	return summarize(schema.NoneBackend, fs.employees), nil
}

// Close is a no-op.
func (fs *FixtureStore) Close() error {
	return nil
}

// summarize builds a status from an in-memory roster.
func summarize(backend schema.DatabaseBackend, employees []schema.Employee) schema.RosterStatus {
	status := schema.RosterStatus{
		Backend:        string(backend),
		Connected:      true,
		ReadOnly:       backend == schema.NoneBackend,
		TotalEmployees: len(employees),
		Departments:    make(map[string]int),
	}
	if len(employees) == 0 {
		return status
	}
	sum := 0.0
	for _, e := range employees {
		status.Departments[e.Department]++
		sum += e.BaselineRisk
		if e.LastAssessed > status.LastAssessed {
			status.LastAssessed = e.LastAssessed
		}
	}
	status.MeanBaselineRisk = sum / float64(len(employees))
	return status
}
