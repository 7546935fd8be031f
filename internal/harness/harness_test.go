package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestdata(t *testing.T, name string) *Scenario {
	t.Helper()
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return scenario
}

func TestRun_KnownDraws(t *testing.T) {
	result, err := Run(loadTestdata(t, "known_draws"))
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 8, result.Draws)
	require.Len(t, result.Variants, 2)
	assert.Equal(t, []string{"Number: 3", "City: Kyiv", "Country: UA", "2. Order 1 Berlin"}, result.Variants[1].OutputLines)
}

func TestRun_Seeded(t *testing.T) {
	result, err := Run(loadTestdata(t, "seeded"))
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Len(t, result.Variants, 25)
	assert.Zero(t, result.Draws, "draws are only counted for explicit sequences")
}

func TestRun_SchemaByName(t *testing.T) {
	result, err := Run(loadTestdata(t, "alt_schema"))
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	for _, v := range result.Variants {
		assert.Equal(t, []string{"Назва поля: 5"}, v.OutputLines)
	}
}

func TestRun_Deterministic(t *testing.T) {
	scenario := loadTestdata(t, "seeded")

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first.Variants, second.Variants)
}

func TestRun_FailingAssertion(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "failing", "wrong_output.yaml"))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Assertion failed: output_equals")
	assert.Contains(t, result.Errors[0], `"Number: 1"`)
}

func TestRun_DrawSequenceExhausted(t *testing.T) {
	scenario := loadTestdata(t, "known_draws")
	scenario.Draws = scenario.Draws[:5]

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "draw sequence")
	assert.Contains(t, result.Errors[0], "all 5 draws consumed")
}

func TestRun_DrawOutOfRange(t *testing.T) {
	scenario := loadTestdata(t, "known_draws")
	scenario.Draws = []int64{5, 0, 0, 0, 0, 0, 0, 0}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "outside [0, 3)")
}

func TestRun_UnusedDraws(t *testing.T) {
	scenario := loadTestdata(t, "known_draws")
	scenario.Draws = append(scenario.Draws, 0, 0)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors, "draw sequence: 2 of 10 draws left unused")
}

func TestRun_UnknownSchema(t *testing.T) {
	scenario := loadTestdata(t, "seeded")
	scenario.Schema = "nope"

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `schema "nope" not found`)
}

func TestRun_MalformedState(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	require.NoError(t, os.WriteFile(statePath, []byte(`{"lists": "x"}`), 0644))

	scenario := loadTestdata(t, "seeded")
	scenario.State = statePath

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode state")
}

func TestResult_AddError(t *testing.T) {
	r := NewResult()
	assert.True(t, r.Pass)

	r.AddError("first")
	r.AddError("second")

	assert.False(t, r.Pass)
	assert.Equal(t, []string{"first", "second"}, r.Errors)
}
