package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SuiteOptions controls a multi-scenario run.
type SuiteOptions struct {
	// Filter is a glob matched against scenario file names without extension.
	Filter string

	// Update rewrites golden files instead of comparing against them.
	Update bool
}

// ScenarioOutcome is the result of one scenario file in a suite.
type ScenarioOutcome struct {
	Name          string   `json:"name"`
	Path          string   `json:"path"`
	Pass          bool     `json:"pass"`
	Errors        []string `json:"errors,omitempty"`
	GoldenUpdated bool     `json:"golden_updated,omitempty"`
}

// SuiteResult summarizes a multi-scenario run.
type SuiteResult struct {
	Scenarios []ScenarioOutcome `json:"scenarios"`
	Passed    int               `json:"passed"`
	Failed    int               `json:"failed"`
	Total     int               `json:"total"`
}

// FindScenarios finds all YAML scenario files under dir, in lexical order.
// Files under a "golden" directory are skipped.
func FindScenarios(dir string, filter string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "golden" && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// RunSuite runs every scenario file and tallies the outcomes.
func RunSuite(paths []string, opts SuiteOptions) *SuiteResult {
	result := &SuiteResult{
		Scenarios: make([]ScenarioOutcome, 0, len(paths)),
		Total:     len(paths),
	}
	for _, path := range paths {
		outcome := RunFile(path, opts)
		if outcome.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Scenarios = append(result.Scenarios, outcome)
	}
	return result
}

// RunFile loads and runs one scenario file. When a golden file exists next
// to it (see GoldenPath), the variants must also match it byte for byte.
func RunFile(path string, opts SuiteOptions) ScenarioOutcome {
	outcome := ScenarioOutcome{Name: filepath.Base(path), Path: path}

	scenario, err := LoadScenario(path)
	if err != nil {
		outcome.Errors = []string{fmt.Sprintf("failed to load scenario: %v", err)}
		return outcome
	}
	outcome.Name = scenario.Name

	result, err := Run(scenario)
	if err != nil {
		outcome.Errors = []string{fmt.Sprintf("execution failed: %v", err)}
		return outcome
	}
	outcome.Pass = result.Pass
	outcome.Errors = result.Errors

	goldenPath := GoldenPath(path)
	if opts.Update {
		if err := WriteGolden(goldenPath, scenario.Name, result); err != nil {
			outcome.Pass = false
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("failed to update golden file: %v", err))
			return outcome
		}
		outcome.GoldenUpdated = true
		return outcome
	}

	if _, err := os.Stat(goldenPath); os.IsNotExist(err) {
		return outcome
	}
	match, err := CompareGolden(goldenPath, scenario.Name, result)
	if err != nil {
		outcome.Pass = false
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("golden comparison failed: %v", err))
		return outcome
	}
	if !match {
		outcome.Pass = false
		outcome.Errors = append(outcome.Errors, "variants do not match golden file")
	}
	return outcome
}

// GoldenPath returns the golden file for a scenario file:
// <dir>/golden/<name>.golden.
func GoldenPath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// WriteGolden writes the canonical snapshot of result to goldenPath.
func WriteGolden(goldenPath, name string, result *Result) error {
	data, err := MarshalSnapshot(name, result)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(goldenPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// CompareGolden reports whether result's snapshot matches goldenPath.
func CompareGolden(goldenPath, name string, result *Result) (bool, error) {
	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}
	current, err := MarshalSnapshot(name, result)
	if err != nil {
		return false, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return bytes.Equal(golden, current), nil
}
