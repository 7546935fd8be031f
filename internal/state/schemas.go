package state

import (
	"fmt"
	"strings"

	"github.com/roach88/varigen/internal/ir"
)

// AddSchema appends an empty schema and makes it active.
func (s *State) AddSchema(name string) (ir.Schema, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ir.Schema{}, ErrEmptyName
	}
	schema := ir.Schema{ID: s.newID(), Name: name, Fields: []ir.Field{}}
	s.Instances = append(s.Instances, schema)
	s.ActiveInstanceID = schema.ID
	return schema, nil
}

// CloneSchema copies the active schema under fresh ids and makes the copy
// active. Sub references inside the copy are remapped to the copied
// fields; references that point outside the schema are cleared.
func (s *State) CloneSchema() ir.Schema {
	src := s.Active()

	remap := make(map[string]string, len(src.Fields))
	fields := make([]ir.Field, len(src.Fields))
	for i, f := range src.Fields {
		id := s.newID()
		remap[f.ID] = id
		f.ID = id
		fields[i] = f
	}
	for i := range fields {
		if sub, ok := fields[i].Spec.(ir.SubSpec); ok {
			fields[i].Spec = ir.SubSpec{ParentID: remap[sub.ParentID]}
		}
	}

	clone := ir.Schema{
		ID:     s.newID(),
		Name:   src.Name + CloneSuffix,
		Fields: fields,
	}
	s.Instances = append(s.Instances, clone)
	s.ActiveInstanceID = clone.ID
	return clone
}

// RenameSchema renames the active schema. The name is trimmed.
func (s *State) RenameSchema(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	s.Active().Name = name
	return nil
}

// DeleteSchema removes the active schema and activates the first remaining
// one. The last schema cannot be deleted.
func (s *State) DeleteSchema() error {
	if len(s.Instances) <= 1 {
		return ErrLastSchema
	}
	i := s.schemaIndex(s.Active().ID)
	s.Instances = append(s.Instances[:i], s.Instances[i+1:]...)
	s.ActiveInstanceID = ""
	s.EnsureInstances()
	return nil
}

// SelectSchema makes the schema with the given id active.
func (s *State) SelectSchema(id string) error {
	if s.schemaIndex(id) < 0 {
		return fmt.Errorf("%w: %s", ErrSchemaNotFound, id)
	}
	s.ActiveInstanceID = id
	return nil
}
