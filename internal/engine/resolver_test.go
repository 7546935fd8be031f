package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/varigen/internal/ir"
	"github.com/roach88/varigen/internal/testutil"
)

func resolveOne(t *testing.T, field ir.Field, lists []ir.List, src Source) ir.Resolved {
	t.Helper()
	return Resolve(field, []ir.Field{field}, map[string]ir.Resolved{}, ir.IndexLists(lists), 1, src)
}

func TestResolve_NumberSingleValueRange(t *testing.T) {
	field := testutil.NumberField("f1", "Count", 5, 5)
	src := NewSource(1)

	for i := 0; i < 100; i++ {
		got := resolveOne(t, field, nil, src)
		assert.Equal(t, "5", got.RawValue)
	}
}

func TestResolve_NumberInvalidRangeYieldsSentinel(t *testing.T) {
	field := testutil.NumberField("f1", "Count", 10, 1)

	got := resolveOne(t, field, nil, testutil.NewSequenceSource())

	assert.Equal(t, ir.InvalidRangeValue, got.RawValue)
	assert.Equal(t, ir.InvalidRangeValue, got.Value)
	assert.Equal(t, "Count: [Некоректний діапазон]", got.FormattedLine)
}

func TestResolve_NumberUnsetBound(t *testing.T) {
	field := ir.Field{ID: "f1", Spec: ir.NumberSpec{Min: ir.NewBound(1)}}

	got := resolveOne(t, field, nil, testutil.NewSequenceSource())
	assert.Equal(t, ir.InvalidRangeValue, got.RawValue)
}

func TestResolve_StringSingleItemList(t *testing.T) {
	lists := []ir.List{testutil.List("L", "letters", testutil.Item("A", ""))}
	field := testutil.StringField("f1", "Letter", "L")

	src := NewSource(3)
	for i := 0; i < 50; i++ {
		assert.Equal(t, "A", resolveOne(t, field, lists, src).RawValue)
	}
}

func TestResolve_StringAlwaysFromList(t *testing.T) {
	lists := []ir.List{testutil.List("L", "letters",
		testutil.Item("A", ""), testutil.Item("B", ""), testutil.Item("C", ""))}
	field := testutil.StringField("f1", "Letter", "L")
	allowed := []string{"A", "B", "C"}

	src := NewSource(9)
	for i := 0; i < 200; i++ {
		assert.Contains(t, allowed, resolveOne(t, field, lists, src).RawValue)
	}
}

func TestResolve_StringMissingOrEmptyList(t *testing.T) {
	lists := []ir.List{{ID: "empty", Name: "empty"}}

	tests := []struct {
		name   string
		listID string
	}{
		{"missing list", "nope"},
		{"empty list", "empty"},
		{"no list selected", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := testutil.StringField("f1", "Letter", tt.listID)
			got := resolveOne(t, field, lists, testutil.NewSequenceSource())
			assert.Equal(t, "", got.RawValue)
			assert.Equal(t, "Letter: ", got.FormattedLine)
		})
	}
}

func TestResolve_NumberStringDrawsIntegerThenItem(t *testing.T) {
	lists := []ir.List{testutil.List("L", "things", testutil.Item("apple", ""), testutil.Item("pear", ""))}
	field := testutil.NumberStringField("f1", "Order", 10, 20, "L")
	src := testutil.NewSequenceSource(2, 1)

	got := resolveOne(t, field, lists, src)

	assert.Equal(t, "12 pear", got.RawValue)
	assert.Equal(t, []int64{11, 2}, src.Bounds())
}

func TestResolve_NumberStringAllOrNothing(t *testing.T) {
	lists := []ir.List{
		testutil.List("L", "things", testutil.Item("apple", "")),
		{ID: "empty", Name: "empty"},
	}

	tests := []struct {
		name  string
		field ir.Field
	}{
		{"inverted range", testutil.NumberStringField("f1", "Order", 5, 1, "L")},
		{"missing list", testutil.NumberStringField("f1", "Order", 1, 5, "nope")},
		{"empty list", testutil.NumberStringField("f1", "Order", 1, 5, "empty")},
		{"no list selected", testutil.NumberStringField("f1", "Order", 1, 5, "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testutil.NewSequenceSource()
			got := resolveOne(t, tt.field, lists, src)
			assert.Equal(t, "", got.RawValue, "never a partial result or sentinel")
			assert.Equal(t, 0, src.Consumed())
		})
	}
}

func TestResolve_SubJoinsOnParentValue(t *testing.T) {
	lists := []ir.List{testutil.List("L", "cities",
		testutil.Item("Kyiv", "UA"),
		testutil.Item("Berlin", ""),
	)}
	parent := testutil.StringField("p", "City", "L")
	sub := testutil.SubField("s", "Country", "p")
	fields := []ir.Field{parent, sub}
	index := ir.IndexLists(lists)

	tests := []struct {
		name        string
		parentValue string
		want        string
	}{
		{"match with sub", "Kyiv", "UA"},
		{"match without sub", "Berlin", ""},
		{"value not in list", "Paris", ""},
		{"empty parent value", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := map[string]ir.Resolved{"p": {FieldID: "p", RawValue: tt.parentValue}}
			src := testutil.NewSequenceSource()

			got := Resolve(sub, fields, resolved, index, 1, src)

			assert.Equal(t, tt.want, got.RawValue)
			assert.Equal(t, 0, src.Consumed(), "sub resolution never draws")
		})
	}
}

func TestResolve_SubIsDeterministic(t *testing.T) {
	lists := []ir.List{testutil.List("L", "cities", testutil.Item("Kyiv", "UA"))}
	fields := []ir.Field{testutil.StringField("p", "City", "L"), testutil.SubField("s", "Country", "p")}
	resolved := map[string]ir.Resolved{"p": {FieldID: "p", RawValue: "Kyiv"}}
	index := ir.IndexLists(lists)

	first := Resolve(fields[1], fields, resolved, index, 1, nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Resolve(fields[1], fields, resolved, index, 1, nil))
	}
}

func TestResolve_SubUnresolvableParents(t *testing.T) {
	lists := []ir.List{testutil.List("L", "cities", testutil.Item("Kyiv", "UA"))}
	index := ir.IndexLists(lists)

	t.Run("missing parent field", func(t *testing.T) {
		sub := testutil.SubField("s", "Country", "gone")
		got := Resolve(sub, []ir.Field{sub}, map[string]ir.Resolved{}, index, 1, nil)
		assert.Equal(t, "", got.RawValue)
	})

	t.Run("no parent selected", func(t *testing.T) {
		sub := testutil.SubField("s", "Country", "")
		got := Resolve(sub, []ir.Field{sub}, map[string]ir.Resolved{}, index, 1, nil)
		assert.Equal(t, "", got.RawValue)
	})

	t.Run("parent without list", func(t *testing.T) {
		parent := testutil.NumberField("p", "N", 1, 1)
		sub := testutil.SubField("s", "Sub", "p")
		resolved := map[string]ir.Resolved{"p": {FieldID: "p", RawValue: "1"}}
		got := Resolve(sub, []ir.Field{parent, sub}, resolved, index, 1, nil)
		assert.Equal(t, "", got.RawValue)
	})

	t.Run("parent list deleted", func(t *testing.T) {
		parent := testutil.StringField("p", "City", "deleted")
		sub := testutil.SubField("s", "Sub", "p")
		resolved := map[string]ir.Resolved{"p": {FieldID: "p", RawValue: "Kyiv"}}
		got := Resolve(sub, []ir.Field{parent, sub}, resolved, index, 1, nil)
		assert.Equal(t, "", got.RawValue)
	})
}

func TestResolve_LabelAndFormatFallbacks(t *testing.T) {
	field := ir.Field{
		ID:     "f1",
		Label:  "   ",
		Format: "  ",
		Spec:   ir.NumberSpec{Min: ir.NewBound(3), Max: ir.NewBound(3)},
	}

	got := resolveOne(t, field, nil, NewSource(1))

	assert.Equal(t, ir.DefaultLabel, got.Label)
	assert.Equal(t, "Назва поля: 3", got.FormattedLine)
}

func TestResolve_TrimsLabel(t *testing.T) {
	field := testutil.NumberField("f1", "  Age  ", 7, 7)

	got := resolveOne(t, field, nil, NewSource(1))

	assert.Equal(t, "Age", got.Label)
	assert.Equal(t, "Age: 7", got.FormattedLine)
}

func TestResolve_IndexPlaceholder(t *testing.T) {
	field := testutil.NumberField("f1", "N", 1, 1)
	field.Format = "{index}. {label} = {value}"

	got := Resolve(field, []ir.Field{field}, map[string]ir.Resolved{}, nil, 4, NewSource(1))

	assert.Equal(t, "4. N = 1", got.FormattedLine)
}

func TestResolve_NilSpecResolvesEmpty(t *testing.T) {
	field := ir.Field{ID: "f1", Label: "Broken"}

	got := resolveOne(t, field, nil, testutil.NewSequenceSource())

	require.Equal(t, "", got.RawValue)
	assert.Equal(t, "Broken: ", got.FormattedLine)
}
