package engine

import (
	"strconv"

	"github.com/roach88/varigen/internal/ir"
)

// Resolve computes the value and output line of one field within one variant.
//
// fields is the full ordered field set of the schema, used to find a sub
// field's parent. resolved holds the values produced earlier in the same
// variant, keyed by field id. index is the 1-based variant number.
//
// Resolution never fails: configuration gaps are encoded in the value (see
// package doc). The only side effect is drawing from src.
func Resolve(field ir.Field, fields []ir.Field, resolved map[string]ir.Resolved, lists ir.Lists, index int, src Source) ir.Resolved {
	label := field.DisplayLabel()
	raw := resolveRaw(field, fields, resolved, lists, src)

	line := ApplyTemplate(field.Format, label+": "+raw, label, raw, index)

	return ir.Resolved{
		FieldID:       field.ID,
		Label:         label,
		Value:         raw,
		RawValue:      raw,
		FormattedLine: line,
	}
}

func resolveRaw(field ir.Field, fields []ir.Field, resolved map[string]ir.Resolved, lists ir.Lists, src Source) string {
	switch spec := field.Spec.(type) {
	case ir.NumberSpec:
		n, ok := RandomInt(src, spec.Min, spec.Max)
		if !ok {
			return ir.InvalidRangeValue
		}
		return strconv.FormatInt(n, 10)

	case ir.StringSpec:
		list, _ := lists.Get(spec.ListID)
		item, ok := RandomItem(src, list)
		if !ok {
			return ""
		}
		return item.Value

	case ir.NumberStringSpec:
		// Both parts or nothing: no draw happens unless both are usable.
		list, ok := lists.Get(spec.ListID)
		if !ok || len(list.Items) == 0 || !ValidRange(spec.Min, spec.Max) {
			return ""
		}
		n, _ := RandomInt(src, spec.Min, spec.Max)
		item, _ := RandomItem(src, list)
		return strconv.FormatInt(n, 10) + " " + item.Value

	case ir.SubSpec:
		return resolveSub(spec.ParentID, fields, resolved, lists)
	}

	return ""
}

// resolveSub joins on the parent's already resolved value. No draws.
func resolveSub(parentID string, fields []ir.Field, resolved map[string]ir.Resolved, lists ir.Lists) string {
	if parentID == "" {
		return ""
	}
	parent, ok := findField(fields, parentID)
	if !ok {
		return ""
	}
	// Missing entry: parent comes later in the order (or is the field itself).
	prev, ok := resolved[parent.ID]
	if !ok || prev.RawValue == "" {
		return ""
	}
	listID, ok := parent.ListRef()
	if !ok {
		return ""
	}
	list, ok := lists.Get(listID)
	if !ok {
		return ""
	}
	return FindSub(list, prev.RawValue)
}

func findField(fields []ir.Field, id string) (ir.Field, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}
	}
	return ir.Field{}, false
}
