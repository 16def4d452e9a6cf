package rosterdb

import (
	"fmt"
	"maps"
	"slices"

	"github.com/huangsam/attrition/schema"
)

// PrintRosterStatus prints roster status information.
func PrintRosterStatus(status schema.RosterStatus) {
	fmt.Printf("Roster Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	if status.ReadOnly {
		fmt.Println("Read Only: true (built-in roster)")
	}
	fmt.Printf("Total Employees: %d\n", status.TotalEmployees)
	if status.TotalEmployees > 0 {
		fmt.Printf("Last Assessed: %s\n", status.LastAssessed)
		fmt.Printf("Mean Baseline Risk: %.1f%%\n", status.MeanBaselineRisk)
		fmt.Println("Departments:")
		for _, dept := range slices.Sorted(maps.Keys(status.Departments)) {
			fmt.Printf("  %s: %d employees\n", dept, status.Departments[dept])
		}
	}
	if !status.ReadOnly {
		fmt.Printf("Schema Version: %d\n", status.SchemaVersion)
	}
}
