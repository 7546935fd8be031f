package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/varigen/internal/ir"
	"github.com/roach88/varigen/internal/testutil"
)

func TestConfigured(t *testing.T) {
	tests := []struct {
		name  string
		field ir.Field
		want  bool
	}{
		{"number valid", testutil.NumberField("f", "", 1, 10), true},
		{"number inverted", testutil.NumberField("f", "", 10, 1), false},
		{"string with list", testutil.StringField("f", "", "L"), true},
		{"string dangling list still counts", testutil.StringField("f", "", "deleted"), true},
		{"string without list", testutil.StringField("f", "", ""), false},
		{"number_string complete", testutil.NumberStringField("f", "", 1, 2, "L"), true},
		{"number_string no list", testutil.NumberStringField("f", "", 1, 2, ""), false},
		{"number_string bad range", testutil.NumberStringField("f", "", 3, 2, "L"), false},
		{"sub with parent", testutil.SubField("f", "", "p"), true},
		{"sub without parent", testutil.SubField("f", "", ""), false},
		{"no spec", ir.Field{ID: "f"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Configured(tt.field))
		})
	}
}

func TestReady(t *testing.T) {
	assert.False(t, Ready(nil), "no fields")
	assert.False(t, Ready([]ir.Field{testutil.StringField("a", "", "")}), "nothing configured")
	assert.True(t, Ready([]ir.Field{
		testutil.StringField("a", "", ""),
		testutil.NumberField("b", "", 1, 2),
	}), "one configured field is enough")
}

func TestReadiness_Report(t *testing.T) {
	fields := []ir.Field{
		testutil.NumberField("a", "Age", 5, 1),
		testutil.StringField("b", "", "L"),
		testutil.SubField("c", "Sub", ""),
	}

	report := Readiness(fields)

	require.Len(t, report, 3)
	assert.Equal(t, FieldReadiness{FieldID: "a", Label: "Age", Type: ir.FieldNumber, Reason: ReasonInvalidRange}, report[0])
	assert.Equal(t, FieldReadiness{FieldID: "b", Label: ir.DefaultLabel, Type: ir.FieldString, Configured: true}, report[1])
	assert.Equal(t, ReasonNoParent, report[2].Reason)
}
