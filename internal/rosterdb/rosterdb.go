// Package rosterdb stores the employee roster that simulations read baselines from.
package rosterdb

import (
	"sync"

	"github.com/huangsam/attrition/internal/contract"
)

// RosterStoreManager holds the active RosterStore.
type RosterStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	roster       contract.RosterStore
}

var _ contract.RosterManager = &RosterStoreManager{} // Compile-time check

// GetRosterStore returns the active RosterStore. It falls back to the fixture
// roster when InitRoster has not run.
func (mgr *RosterStoreManager) GetRosterStore() contract.RosterStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.roster == nil {
		return NewFixtureStore()
	}
	return mgr.roster
}
