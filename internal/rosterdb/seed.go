package rosterdb

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/huangsam/attrition/internal/parquet"
	"github.com/huangsam/attrition/schema"
	"gopkg.in/yaml.v3"
)

// LoadSeedFile reads employees from a .json, .yaml, .yml or .parquet file.
// Every employee must have an ID and a baseline within [0, 100].
func LoadSeedFile(path string) ([]schema.Employee, error) {
	var employees []schema.Employee

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		rows, err := parquet.ReadEmployeesParquet(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
		}
		employees = parquet.ConvertEmployeeRows(rows)

	case ".json", ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
		}
		if ext == ".json" {
			err = json.Unmarshal(data, &employees)
		} else {
			err = yaml.Unmarshal(data, &employees)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
		}

	default:
		return nil, fmt.Errorf("unsupported seed file extension '%s'. Must be .json, .yaml, .yml, or .parquet", ext)
	}

	if err := validateEmployees(employees); err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, err)
	}
	return employees, nil
}

// validateEmployees rejects missing IDs, duplicate IDs and baselines outside [0, 100].
func validateEmployees(employees []schema.Employee) error {
	seen := make(map[string]struct{}, len(employees))
	for i, e := range employees {
		if strings.TrimSpace(e.ID) == "" {
			return fmt.Errorf("employee #%d has no id", i+1)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("duplicate employee id %s", e.ID)
		}
		seen[e.ID] = struct{}{}
		if e.BaselineRisk < 0 || e.BaselineRisk > 100 || math.IsNaN(e.BaselineRisk) {
			return fmt.Errorf("employee %s has baseline_risk %v outside [0, 100]", e.ID, e.BaselineRisk)
		}
	}
	return nil
}
