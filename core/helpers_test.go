package core

import (
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/internal/rosterdb"
	"github.com/huangsam/attrition/schema"
)

// testConfig returns a config over the neutral scenario with the given baseline.
func testConfig(baseline float64) *contract.Config {
	return &contract.Config{
		BaselineRisk: baseline,
		Inputs:       schema.DefaultScenarioInputs(),
		ResultLimit:  contract.DefaultResultLimit,
		Workers:      2,
		Precision:    1,
		Output:       schema.JSONOut,
		Thresholds:   schema.DefaultRiskThresholds(),
	}
}

// fixtureManager serves the built-in roster.
func fixtureManager() contract.RosterManager {
	return &rosterdb.RosterStoreManager{}
}
