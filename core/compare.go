package core

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/attrition/core/algo"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
	"gopkg.in/yaml.v3"
)

// scenarioFile is the layout of a --scenario-file document.
type scenarioFile struct {
	Scenarios []scenarioEntry `yaml:"scenarios"`
}

// scenarioEntry decodes a named scenario on top of the neutral inputs, so omitted
// fields contribute nothing.
type scenarioEntry schema.NamedScenario

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *scenarioEntry) UnmarshalYAML(node *yaml.Node) error {
	type plain schema.NamedScenario
	p := plain{Inputs: schema.DefaultScenarioInputs()}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = scenarioEntry(p)
	return nil
}

// LoadScenarioFile reads and validates the named scenarios of a YAML file.
func LoadScenarioFile(path string) ([]schema.NamedScenario, error) {
	if path == "" {
		return nil, errors.New("--scenario-file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenarios(data)
}

// ParseScenarios decodes a scenario document. Names must be present and unique and
// every scenario is clamped to the field domains.
func ParseScenarios(data []byte) ([]schema.NamedScenario, error) {
	var doc scenarioFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	if len(doc.Scenarios) == 0 {
		return nil, errors.New("scenario file has no scenarios")
	}

	seen := make(map[string]struct{}, len(doc.Scenarios))
	scenarios := make([]schema.NamedScenario, 0, len(doc.Scenarios))
	for i, entry := range doc.Scenarios {
		if entry.Name == "" {
			return nil, fmt.Errorf("scenario #%d has no name", i+1)
		}
		if _, dup := seen[entry.Name]; dup {
			return nil, fmt.Errorf("duplicate scenario name '%s'", entry.Name)
		}
		seen[entry.Name] = struct{}{}

		inputs, warnings, err := contract.ClampScenario(entry.Inputs)
		if err != nil {
			return nil, fmt.Errorf("scenario '%s': %w", entry.Name, err)
		}
		for _, w := range warnings {
			contract.LogWarn(fmt.Sprintf("scenario '%s'", entry.Name), w)
		}
		scenarios = append(scenarios, schema.NamedScenario{Name: entry.Name, Inputs: inputs})
	}
	return scenarios, nil
}

// CompareScenarios simulates every scenario against the same baseline and ranks them
// from lowest to highest predicted risk.
func CompareScenarios(ctx context.Context, cfg *contract.Config, mgr contract.RosterManager, scenarios []schema.NamedScenario) (schema.ComparisonResult, error) {
	if len(scenarios) == 0 {
		return schema.ComparisonResult{}, errors.New("no scenarios to compare")
	}
	baseline, err := ResolveBaseline(ctx, cfg, mgr)
	if err != nil {
		return schema.ComparisonResult{}, err
	}

	model := newModel(cfg)
	thresholds := cfg.ActiveThresholds()
	results := make([]schema.SimulationResult, len(scenarios))
	for i, s := range scenarios {
		r := SimulateInputs(model, baseline, s.Inputs, cfg.Symmetric, thresholds)
		r.Scenario = s.Name
		r.EmployeeID = cfg.EmployeeID
		results[i] = r
	}

	ranked := schema.RankSimulations(algo.RankScenarios(results))
	return schema.ComparisonResult{
		BaselineRisk: baseline,
		EmployeeID:   cfg.EmployeeID,
		Scenarios:    ranked,
		Best:         ranked[0].Scenario,
		Worst:        ranked[len(ranked)-1].Scenario,
	}, nil
}
