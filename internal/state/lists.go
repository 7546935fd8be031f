package state

import (
	"github.com/roach88/varigen/internal/ir"
)

// AddList appends a list, assigning an id when it has none, and returns
// the stored copy.
func (s *State) AddList(list ir.List) ir.List {
	if list.ID == "" {
		list.ID = s.newID()
	}
	items := make([]ir.ListItem, len(list.Items))
	copy(items, list.Items)
	list.Items = items

	s.Lists = append(s.Lists, list)
	return list
}

// List returns the list with the given id.
func (s *State) List(id string) (*ir.List, bool) {
	for i := range s.Lists {
		if s.Lists[i].ID == id {
			return &s.Lists[i], true
		}
	}
	return nil, false
}

// RemoveList deletes a list and clears every field reference to it in
// every schema.
func (s *State) RemoveList(id string) error {
	kept := s.Lists[:0]
	found := false
	for _, l := range s.Lists {
		if l.ID == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return ErrListNotFound
	}
	s.Lists = kept

	for i := range s.Instances {
		fields := s.Instances[i].Fields
		for j := range fields {
			fields[j] = clearListRef(fields[j], id)
		}
	}
	return nil
}

func clearListRef(f ir.Field, listID string) ir.Field {
	switch spec := f.Spec.(type) {
	case ir.StringSpec:
		if spec.ListID == listID {
			spec.ListID = ""
			f.Spec = spec
		}
	case ir.NumberStringSpec:
		if spec.ListID == listID {
			spec.ListID = ""
			f.Spec = spec
		}
	}
	return f
}

// ListSnapshot returns a copy of the lists slice for the engine.
func (s *State) ListSnapshot() []ir.List {
	out := make([]ir.List, len(s.Lists))
	copy(out, s.Lists)
	return out
}
