package state

import (
	"fmt"

	"github.com/roach88/varigen/internal/ir"
)

// Defaults for a newly added field.
const (
	defaultNewMin = 1
	defaultNewMax = 10
)

// FieldPatch carries the attributes to change on a field. Nil members are
// left untouched.
//
// Attributes shared between the old and new type survive a type change:
// min/max between number and number_string, listId between string and
// number_string.
type FieldPatch struct {
	Label      *string
	Format     *string
	Type       *ir.FieldType
	Min        *ir.Bound
	Max        *ir.Bound
	ListID     *string
	SubFieldID *string
}

// fieldAttrs is the flattened form of a FieldSpec.
type fieldAttrs struct {
	min, max ir.Bound
	listID   string
	parentID string
}

func flatten(spec ir.FieldSpec) fieldAttrs {
	var a fieldAttrs
	switch s := spec.(type) {
	case ir.NumberSpec:
		a.min, a.max = s.Min, s.Max
	case ir.StringSpec:
		a.listID = s.ListID
	case ir.NumberStringSpec:
		a.min, a.max, a.listID = s.Min, s.Max, s.ListID
	case ir.SubSpec:
		a.parentID = s.ParentID
	}
	return a
}

// buildSpec creates the spec for t from flattened attributes.
// Unknown types build a number spec.
func buildSpec(t ir.FieldType, a fieldAttrs) ir.FieldSpec {
	switch t {
	case ir.FieldString:
		return ir.StringSpec{ListID: a.listID}
	case ir.FieldNumberString:
		return ir.NumberStringSpec{Min: a.min, Max: a.max, ListID: a.listID}
	case ir.FieldSub:
		return ir.SubSpec{ParentID: a.parentID}
	default:
		return ir.NumberSpec{Min: a.min, Max: a.max}
	}
}

// AddField appends a number field with range 1..10 to the active schema.
func (s *State) AddField() ir.Field {
	schema := s.Active()
	f := ir.Field{
		ID:     s.newID(),
		Format: ir.DefaultFormat,
		Spec: ir.NumberSpec{
			Min: ir.NewBound(defaultNewMin),
			Max: ir.NewBound(defaultNewMax),
		},
	}
	schema.Fields = append(schema.Fields, f)
	return f
}

// Field returns the active schema's field with the given id.
func (s *State) Field(id string) (ir.Field, bool) {
	schema := s.Active()
	i := schema.FieldIndex(id)
	if i < 0 {
		return ir.Field{}, false
	}
	return schema.Fields[i], true
}

// UpdateField applies patch to a field of the active schema and returns
// the updated field.
func (s *State) UpdateField(id string, patch FieldPatch) (ir.Field, error) {
	schema := s.Active()
	i := schema.FieldIndex(id)
	if i < 0 {
		return ir.Field{}, fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	f := schema.Fields[i]

	t := f.Type()
	if patch.Type != nil {
		if !ir.ValidFieldTypes[*patch.Type] {
			return ir.Field{}, fmt.Errorf("%w: %q", ErrInvalidType, *patch.Type)
		}
		t = *patch.Type
	}

	attrs := flatten(f.Spec)
	if patch.Min != nil {
		attrs.min = *patch.Min
	}
	if patch.Max != nil {
		attrs.max = *patch.Max
	}
	if patch.ListID != nil {
		attrs.listID = *patch.ListID
	}
	if patch.SubFieldID != nil {
		attrs.parentID = *patch.SubFieldID
	}
	f.Spec = buildSpec(t, attrs)

	if patch.Label != nil {
		f.Label = *patch.Label
	}
	if patch.Format != nil {
		f.Format = *patch.Format
	}

	schema.Fields[i] = f
	return f, nil
}

// RemoveField deletes a field from the active schema and clears every sub
// reference to it.
func (s *State) RemoveField(id string) error {
	schema := s.Active()
	i := schema.FieldIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	schema.Fields = append(schema.Fields[:i], schema.Fields[i+1:]...)

	for j := range schema.Fields {
		if sub, ok := schema.Fields[j].Spec.(ir.SubSpec); ok && sub.ParentID == id {
			schema.Fields[j].Spec = ir.SubSpec{}
		}
	}
	return nil
}

// SubCandidates returns the fields a sub field may join on: the string and
// number_string fields placed before it in the active schema.
// Unknown ids yield no candidates.
func (s *State) SubCandidates(fieldID string) []ir.Field {
	schema := s.Active()
	i := schema.FieldIndex(fieldID)
	if i < 0 {
		return nil
	}
	var out []ir.Field
	for _, f := range schema.Fields[:i] {
		switch f.Type() {
		case ir.FieldString, ir.FieldNumberString:
			out = append(out, f)
		}
	}
	return out
}
