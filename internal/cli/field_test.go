package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/varigen/internal/ir"
)

func TestFieldAdd_Defaults(t *testing.T) {
	env := newTestEnv(t)

	field := env.addField(t)

	assert.Equal(t, ir.FieldNumber, field.Type)
	require.NotNil(t, field.Min)
	require.NotNil(t, field.Max)
	assert.Equal(t, 1.0, *field.Min)
	assert.Equal(t, 10.0, *field.Max)
	assert.Equal(t, ir.DefaultFormat, field.Format)
	assert.True(t, field.Configured)
}

func TestFieldAdd_WithFlags(t *testing.T) {
	env := newTestEnv(t)
	listID := env.importCities(t)

	field := env.addField(t, "--type", "number_string", "--label", "Order",
		"--min", "2", "--max", "4", "--list", listID, "--template", "{index}) {value}")

	assert.Equal(t, ir.FieldNumberString, field.Type)
	assert.Equal(t, "Order", field.Label)
	assert.Equal(t, 2.0, *field.Min)
	assert.Equal(t, 4.0, *field.Max)
	assert.Equal(t, listID, field.ListID)
	assert.Equal(t, "{index}) {value}", field.Format)
}

func TestFieldAdd_BadFlagValues(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "field", "add", "--type", "date")
	assert.ErrorContains(t, err, "must be one of")

	_, _, err = env.run(t, "field", "add", "--min", "abc")
	assert.ErrorContains(t, err, "not a number")
}

func TestFieldAdd_UnknownList(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run(t, "field", "add", "--type", "string", "--list", "missing")

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E003]")

	fields := decodeData[[]FieldView](t, env.mustRun(t, "field", "ls", "--format", "json"))
	assert.Empty(t, fields, "the rejected field is not saved")
}

func TestFieldSet_TypeChangeKeepsSharedAttributes(t *testing.T) {
	env := newTestEnv(t)
	listID := env.importCities(t)
	field := env.addField(t, "--min", "3", "--max", "7")

	out := env.mustRun(t, "field", "set", field.ID, "--type", "number_string", "--list", listID, "--format", "json")
	updated := decodeData[FieldView](t, out)
	assert.Equal(t, 3.0, *updated.Min)
	assert.Equal(t, 7.0, *updated.Max)

	out = env.mustRun(t, "field", "set", field.ID, "--type", "string", "--format", "json")
	updated = decodeData[FieldView](t, out)
	assert.Equal(t, listID, updated.ListID)
	assert.Nil(t, updated.Min)
}

func TestFieldSet_ClearBound(t *testing.T) {
	env := newTestEnv(t)
	field := env.addField(t)

	out := env.mustRun(t, "field", "set", field.ID, "--max", "", "--format", "json")

	updated := decodeData[FieldView](t, out)
	assert.Nil(t, updated.Max)
	assert.False(t, updated.Configured)
	assert.Equal(t, "invalid range", updated.Reason)
}

func TestFieldSet_NothingToChange(t *testing.T) {
	env := newTestEnv(t)
	field := env.addField(t)

	stdout, _, err := env.run(t, "field", "set", field.ID)

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "nothing to change")
}

func TestFieldSet_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "field", "set", "nope", "--label", "x")

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestFieldSet_SubParentMustComeBefore(t *testing.T) {
	env := newTestEnv(t)
	listID := env.importCities(t)
	sub := env.addField(t, "--type", "sub")
	city := env.addField(t, "--type", "string", "--list", listID)

	stdout, _, err := env.run(t, "field", "set", sub.ID, "--sub", city.ID)

	require.Error(t, err)
	assert.Contains(t, stdout, "is not a string or number_string field placed before")
}

func TestFieldAdd_SubPromptsForParent(t *testing.T) {
	env := newTestEnv(t)
	listID := env.importCities(t)
	city := env.addField(t, "--type", "string", "--list", listID, "--label", "City")
	env.prompter.selects = []int{0}

	sub := env.addField(t, "--type", "sub", "--label", "Country")

	assert.Equal(t, city.ID, sub.SubFieldID)
	assert.Equal(t, []string{"Поле для підпункту"}, env.prompter.asked)
}

func TestFieldAdd_SubWithoutTerminal(t *testing.T) {
	env := newTestEnv(t)
	listID := env.importCities(t)
	env.addField(t, "--type", "string", "--list", listID)

	sub := env.addField(t, "--type", "sub")

	assert.Empty(t, sub.SubFieldID)
	assert.Equal(t, "no parent field selected", sub.Reason)
}

func TestFieldRm_ClearsSubReferences(t *testing.T) {
	env := newTestEnv(t)
	listID := env.importCities(t)
	city := env.addField(t, "--type", "string", "--list", listID)
	sub := env.addField(t, "--type", "sub", "--sub", city.ID)
	require.Equal(t, city.ID, sub.SubFieldID)

	env.mustRun(t, "field", "rm", city.ID)

	fields := decodeData[[]FieldView](t, env.mustRun(t, "field", "ls", "--format", "json"))
	require.Len(t, fields, 1)
	assert.Empty(t, fields[0].SubFieldID)
}

func TestFieldParents(t *testing.T) {
	env := newTestEnv(t)
	listID := env.importCities(t)
	env.addField(t)
	city := env.addField(t, "--type", "string", "--list", listID)
	sub := env.addField(t, "--type", "sub", "--sub", city.ID)

	parents := decodeData[[]FieldView](t, env.mustRun(t, "field", "parents", sub.ID, "--format", "json"))

	require.Len(t, parents, 1)
	assert.Equal(t, city.ID, parents[0].ID)
}

func TestFieldLs_Text(t *testing.T) {
	env := newTestEnv(t)
	env.addField(t, "--label", "Room")
	env.addField(t, "--type", "string")

	out := env.mustRun(t, "field", "ls")

	assert.Contains(t, out, "Schema: Схема 1")
	assert.Contains(t, out, "Room  [1..10]")
	assert.Contains(t, out, "(Назва поля)")
	assert.Contains(t, out, "(no list selected)")
}
