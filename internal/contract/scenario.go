package contract

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/huangsam/attrition/schema"
)

// ErrInvalidTravel is returned when a travel category is not recognized.
var ErrInvalidTravel = errors.New("invalid business travel")

// ParseTravel accepts a travel category in any case. Underscores are read as hyphens
// so that "non_travel" works from env vars.
func ParseTravel(s string) (schema.TravelFrequency, error) {
	travel := schema.TravelFrequency(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if travel == "" {
		return schema.TravelRarely, nil
	}
	if _, ok := schema.ValidTravelFrequencies[travel]; !ok {
		return "", fmt.Errorf("%w '%s'. must be never, rarely, frequently, non-travel", ErrInvalidTravel, s)
	}
	return travel, nil
}

// ClampBaseline bounds a baseline risk to [0, 100]. A non-nil warning describes any adjustment.
func ClampBaseline(v float64) (float64, error) {
	switch {
	case math.IsNaN(v):
		return schema.DefaultBaselineRisk, fmt.Errorf("baseline is not a number, using %v", schema.DefaultBaselineRisk)
	case v < 0:
		return 0, fmt.Errorf("baseline=%v is below 0, clamped to 0", v)
	case v > 100:
		return 100, fmt.Errorf("baseline=%v is above 100, clamped to 100", v)
	default:
		return v, nil
	}
}

// ClampScenario bounds every numeric field to its domain. Each adjustment is
// returned as a warning. An unknown travel category is an error.
func ClampScenario(in schema.ScenarioInputs) (schema.ScenarioInputs, []error, error) {
	travel, err := ParseTravel(string(in.BusinessTravel))
	if err != nil {
		return in, nil, err
	}

	out := in
	out.BusinessTravel = travel

	var warnings []error
	for _, field := range schema.AllFields {
		domain, ok := schema.FieldDomains[field]
		if !ok || field == schema.FieldOvertime || field == schema.FieldManagerChange {
			continue
		}
		v := out.NumericValue(field)
		clamped := clampToDomain(v, domain)
		if clamped != v {
			warnings = append(warnings, fmt.Errorf("%s=%v outside [%v, %v], clamped to %v",
				field, v, domain.Min, domain.Max, clamped))
			out = out.WithNumericValue(field, clamped)
		}
	}
	return out, warnings, nil
}

// clampToDomain maps NaN to the domain minimum and bounds v to the domain.
func clampToDomain(v float64, d schema.FieldDomain) float64 {
	switch {
	case math.IsNaN(v):
		return d.Min
	case v < d.Min:
		return d.Min
	case v > d.Max:
		return d.Max
	default:
		return v
	}
}

// ApplyScenario validates the scenario of a request and stores it in cfg.
// Clamped values are returned as warnings. The caller owns cfg, usually a clone.
func ApplyScenario(cfg *Config, baseline float64, employeeID string, in schema.ScenarioInputs, symmetric bool) ([]error, error) {
	inputs, warnings, err := ClampScenario(in)
	if err != nil {
		return nil, err
	}
	clamped, warn := ClampBaseline(baseline)
	if warn != nil {
		warnings = append(warnings, warn)
	}
	cfg.BaselineRisk = clamped
	cfg.EmployeeID = strings.TrimSpace(employeeID)
	cfg.Inputs = inputs
	cfg.Symmetric = symmetric
	return warnings, nil
}
