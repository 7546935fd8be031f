package state

import (
	"math"

	"github.com/roach88/varigen/internal/ir"
)

const (
	// DefaultSchemaName names the schema created when none exist.
	DefaultSchemaName = "Схема 1"

	// CloneSuffix is appended to the name of a cloned schema.
	CloneSuffix = " (копія)"

	// MinVariantCount and MaxVariantCount bound the interactive variant count.
	MinVariantCount = 1
	MaxVariantCount = 50
)

// State is the whole persisted application state.
//
// Thread-safety: State is NOT safe for concurrent use. Callers serialize
// access (the CLI handles one command per process).
type State struct {
	Lists            []ir.List
	Instances        []ir.Schema
	ActiveInstanceID string
	SingleLine       bool
	VariantCount     int

	ids IDGenerator
}

// New returns an empty state holding one default schema.
// A nil ids generator falls back to UUIDv7Generator.
func New(ids IDGenerator) *State {
	s := &State{VariantCount: MinVariantCount}
	s.SetIDGenerator(ids)
	s.EnsureInstances()
	return s
}

// SetIDGenerator replaces the id generator used for new records.
func (s *State) SetIDGenerator(ids IDGenerator) {
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	s.ids = ids
}

func (s *State) newID() string {
	if s.ids == nil {
		s.ids = UUIDv7Generator{}
	}
	return s.ids.Generate()
}

// EnsureInstances creates the default schema when none exist and points
// ActiveInstanceID at the first schema when it names none.
func (s *State) EnsureInstances() {
	if len(s.Instances) == 0 {
		s.Instances = []ir.Schema{{
			ID:     s.newID(),
			Name:   DefaultSchemaName,
			Fields: []ir.Field{},
		}}
	}
	if s.schemaIndex(s.ActiveInstanceID) < 0 {
		s.ActiveInstanceID = s.Instances[0].ID
	}
}

func (s *State) schemaIndex(id string) int {
	for i := range s.Instances {
		if s.Instances[i].ID == id {
			return i
		}
	}
	return -1
}

// Active returns the active schema, repairing the state first if needed.
// The pointer is invalidated by schema additions and removals.
func (s *State) Active() *ir.Schema {
	s.EnsureInstances()
	return &s.Instances[s.schemaIndex(s.ActiveInstanceID)]
}

// Schema returns the schema with the given id.
func (s *State) Schema(id string) (*ir.Schema, bool) {
	i := s.schemaIndex(id)
	if i < 0 {
		return nil, false
	}
	return &s.Instances[i], true
}

// Fields returns a copy of the active schema's fields.
func (s *State) Fields() []ir.Field {
	fields := s.Active().Fields
	out := make([]ir.Field, len(fields))
	copy(out, fields)
	return out
}

// SetVariantCount clamps n to [MinVariantCount, MaxVariantCount], stores
// and returns it. Fractions round up and non-numbers become the minimum.
func (s *State) SetVariantCount(n float64) int {
	count := clampCount(n)
	s.VariantCount = count
	return count
}

func clampCount(n float64) int {
	switch {
	case math.IsNaN(n) || n < MinVariantCount:
		return MinVariantCount
	case n > MaxVariantCount:
		return MaxVariantCount
	}
	c := int(n)
	if float64(c) < n {
		c++
	}
	return c
}

// SetSingleLine toggles single-line rendering.
func (s *State) SetSingleLine(v bool) {
	s.SingleLine = v
}

// Reset discards all lists and schemas and restores the defaults.
func (s *State) Reset() {
	s.Lists = nil
	s.Instances = nil
	s.ActiveInstanceID = ""
	s.SingleLine = false
	s.VariantCount = MinVariantCount
	s.EnsureInstances()
}
