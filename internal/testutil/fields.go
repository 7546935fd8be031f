package testutil

import "github.com/roach88/varigen/internal/ir"

// NumberField builds a number field with the default format.
func NumberField(id, label string, min, max float64) ir.Field {
	return ir.Field{
		ID:     id,
		Label:  label,
		Format: ir.DefaultFormat,
		Spec:   ir.NumberSpec{Min: ir.NewBound(min), Max: ir.NewBound(max)},
	}
}

// StringField builds a string field bound to a list.
func StringField(id, label, listID string) ir.Field {
	return ir.Field{
		ID:     id,
		Label:  label,
		Format: ir.DefaultFormat,
		Spec:   ir.StringSpec{ListID: listID},
	}
}

// NumberStringField builds a number_string field.
func NumberStringField(id, label string, min, max float64, listID string) ir.Field {
	return ir.Field{
		ID:     id,
		Label:  label,
		Format: ir.DefaultFormat,
		Spec: ir.NumberStringSpec{
			Min:    ir.NewBound(min),
			Max:    ir.NewBound(max),
			ListID: listID,
		},
	}
}

// SubField builds a sub field pointing at parentID.
func SubField(id, label, parentID string) ir.Field {
	return ir.Field{
		ID:     id,
		Label:  label,
		Format: ir.DefaultFormat,
		Spec:   ir.SubSpec{ParentID: parentID},
	}
}

// List builds a list from "value" or "value;sub" pairs given as [2]string.
// An empty sub is stored as nil.
func List(id, name string, items ...[2]string) ir.List {
	list := ir.List{ID: id, Name: name, Items: make([]ir.ListItem, 0, len(items))}
	for _, it := range items {
		list.Items = append(list.Items, ir.NewListItem(it[0], it[1]))
	}
	return list
}

// Item is shorthand for a [2]string list entry.
func Item(value, sub string) [2]string {
	return [2]string{value, sub}
}
