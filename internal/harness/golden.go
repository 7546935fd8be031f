package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/varigen/internal/ir"
)

// VariantSnapshot captures the generated variants of a scenario.
// All fields use canonical JSON serialization for deterministic comparison.
type VariantSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Count        int          `json:"count"`
	Variants     []ir.Variant `json:"variants"`
}

// toCanonicalMap converts a VariantSnapshot to a map[string]any for canonical JSON serialization.
// This is required because ir.MarshalCanonical only handles primitives, slices and maps.
func (s *VariantSnapshot) toCanonicalMap() map[string]any {
	variants := make([]any, len(s.Variants))
	for i, v := range s.Variants {
		entries := make([]any, len(v.Entries))
		for j, e := range v.Entries {
			entries[j] = map[string]any{
				"field_id":       e.FieldID,
				"label":          e.Label,
				"value":          e.Value,
				"formatted_line": e.FormattedLine,
			}
		}
		lines := v.OutputLines
		if lines == nil {
			lines = []string{}
		}
		variants[i] = map[string]any{
			"index":   v.Index,
			"entries": entries,
			"lines":   lines,
		}
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"count":         s.Count,
		"variants":      variants,
	}
}

// MarshalSnapshot returns the canonical JSON snapshot of a result.
func MarshalSnapshot(name string, result *Result) ([]byte, error) {
	snapshot := VariantSnapshot{
		ScenarioName: name,
		Count:        len(result.Variants),
		Variants:     result.Variants,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the variants against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the variants don't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
