package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a deterministic generation check.
type Scenario struct {
	// Name uniquely identifies this scenario. Also the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// State is the path to an exported state blob.
	// Relative paths are resolved against the scenario file's directory.
	State string `yaml:"state"`

	// Schema selects a schema by id or name. Empty means the active one.
	Schema string `yaml:"schema,omitempty"`

	// Count is the number of variants to generate.
	Count int `yaml:"count"`

	// Draws lists the exact values the random source returns, in order.
	Draws []int64 `yaml:"draws,omitempty"`

	// Seed seeds the engine's PCG source when Draws is not given.
	Seed *uint64 `yaml:"seed,omitempty"`

	// Assertions validate the generated variants.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates the generated result.
type Assertion struct {
	// Type specifies the assertion type:
	// - "output_equals": Variant's output lines match Lines
	// - "variant_count": Result holds Count variants
	// - "value_in_list": Every value of Field is an item of List
	// - "value_range": Every number of Field lies in [Min, Max]
	// - "value_equals": Variant's value of Field equals Value
	Type string `yaml:"type"`

	// Variant is the 1-based variant index (output_equals, value_equals).
	// Zero means the first variant.
	Variant int `yaml:"variant,omitempty"`

	// Lines are the expected output lines (output_equals).
	Lines []string `yaml:"lines,omitempty"`

	// Count is the expected number of variants (variant_count).
	Count int `yaml:"count,omitempty"`

	// Field is a field id or label (value_in_list, value_range, value_equals).
	Field string `yaml:"field,omitempty"`

	// List is a list id or name (value_in_list).
	List string `yaml:"list,omitempty"`

	// Min and Max bound the drawn number (value_range).
	Min *int64 `yaml:"min,omitempty"`
	Max *int64 `yaml:"max,omitempty"`

	// Value is the expected raw value (value_equals).
	Value string `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputEquals = "output_equals"
	AssertVariantCount = "variant_count"
	AssertValueInList  = "value_in_list"
	AssertValueRange   = "value_range"
	AssertValueEquals  = "value_equals"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// The state path is resolved relative to the scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.State != "" && !filepath.IsAbs(scenario.State) {
		scenario.State = filepath.Join(filepath.Dir(path), scenario.State)
	}
	if _, err := os.Stat(scenario.State); os.IsNotExist(err) {
		return nil, fmt.Errorf("invalid scenario: state file not found: %s", scenario.State)
	}

	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML. State paths are left
// as written.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.State == "" {
		return fmt.Errorf("state is required")
	}
	if s.Count < 1 {
		return fmt.Errorf("count must be at least 1")
	}
	if len(s.Draws) > 0 && s.Seed != nil {
		return fmt.Errorf("draws and seed are mutually exclusive")
	}
	if len(s.Draws) == 0 && s.Seed == nil {
		return fmt.Errorf("one of draws or seed is required")
	}
	for i, d := range s.Draws {
		if d < 0 {
			return fmt.Errorf("draws[%d]: must be non-negative", i)
		}
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if a.Variant < 0 {
		return fmt.Errorf("assertions[%d]: variant must be positive", index)
	}

	switch a.Type {
	case AssertOutputEquals:
		if a.Lines == nil {
			return fmt.Errorf("assertions[%d]: lines is required for output_equals", index)
		}
	case AssertVariantCount:
		if a.Count < 1 {
			return fmt.Errorf("assertions[%d]: count must be at least 1 for variant_count", index)
		}
	case AssertValueInList:
		if a.Field == "" || a.List == "" {
			return fmt.Errorf("assertions[%d]: field and list are required for value_in_list", index)
		}
	case AssertValueRange:
		if a.Field == "" || a.Min == nil || a.Max == nil {
			return fmt.Errorf("assertions[%d]: field, min and max are required for value_range", index)
		}
		if *a.Min > *a.Max {
			return fmt.Errorf("assertions[%d]: min must not exceed max", index)
		}
	case AssertValueEquals:
		if a.Field == "" {
			return fmt.Errorf("assertions[%d]: field is required for value_equals", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
