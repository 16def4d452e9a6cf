package rosterdb

import (
	"context"

	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
	"github.com/stretchr/testify/mock"
)

// MockRosterManager is a mock implementation of RosterManager for testing.
type MockRosterManager struct {
	mock.Mock
}

var _ contract.RosterManager = &MockRosterManager{} // Compile-time check

// GetRosterStore implements the RosterManager interface.
func (m *MockRosterManager) GetRosterStore() contract.RosterStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RosterStore)
	return store
}

// MockRosterStore is a mock implementation of RosterStore for testing.
type MockRosterStore struct {
	mock.Mock
}

var _ contract.RosterStore = &MockRosterStore{} // Compile-time check

// ListEmployees implements the RosterStore interface.
func (m *MockRosterStore) ListEmployees(ctx context.Context) ([]schema.Employee, error) {
	args := m.Called(ctx)
	employees, _ := args.Get(0).([]schema.Employee)
	return employees, args.Error(1)
}

// GetEmployee implements the RosterStore interface.
func (m *MockRosterStore) GetEmployee(ctx context.Context, id string) (schema.Employee, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(schema.Employee), args.Error(1)
}

// SeedEmployees implements the RosterStore interface.
func (m *MockRosterStore) SeedEmployees(ctx context.Context, employees []schema.Employee) error {
	args := m.Called(ctx, employees)
	return args.Error(0)
}

// ClearEmployees implements the RosterStore interface.
func (m *MockRosterStore) ClearEmployees(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// GetStatus implements the RosterStore interface.
func (m *MockRosterStore) GetStatus(ctx context.Context) (schema.RosterStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.RosterStatus), args.Error(1)
}

// Close implements the RosterStore interface.
func (m *MockRosterStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
