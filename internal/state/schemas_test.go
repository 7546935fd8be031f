package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/varigen/internal/ir"
	"github.com/roach88/varigen/internal/testutil"
)

func TestAddSchema(t *testing.T) {
	s := New(NewSequentialGenerator("id"))

	schema, err := s.AddSchema("  Orders  ")
	require.NoError(t, err)

	assert.Equal(t, "id-2", schema.ID)
	assert.Equal(t, "Orders", schema.Name)
	assert.Equal(t, "id-2", s.ActiveInstanceID)
	assert.Len(t, s.Instances, 2)
}

func TestAddSchema_EmptyName(t *testing.T) {
	s := New(NewSequentialGenerator("id"))

	_, err := s.AddSchema("   ")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Len(t, s.Instances, 1)
}

func TestCloneSchema_RemapsSubReferences(t *testing.T) {
	s := New(NewSequentialGenerator("id"))
	s.Active().Fields = []ir.Field{
		testutil.StringField("city", "City", "cities"),
		testutil.SubField("country", "Country", "city"),
		testutil.SubField("orphan", "Orphan", "ghost"),
	}

	clone := s.CloneSchema()

	assert.Equal(t, "id-5", clone.ID)
	assert.Equal(t, DefaultSchemaName+" (копія)", clone.Name)
	assert.Equal(t, clone.ID, s.ActiveInstanceID)

	require.Len(t, clone.Fields, 3)
	assert.Equal(t, "id-2", clone.Fields[0].ID)
	assert.Equal(t, ir.StringSpec{ListID: "cities"}, clone.Fields[0].Spec)
	assert.Equal(t, "id-3", clone.Fields[1].ID)
	assert.Equal(t, ir.SubSpec{ParentID: "id-2"}, clone.Fields[1].Spec)
	assert.Equal(t, ir.SubSpec{}, clone.Fields[2].Spec)

	original, ok := s.Schema("id-1")
	require.True(t, ok)
	assert.Equal(t, "city", original.Fields[0].ID, "original untouched")
	assert.Equal(t, ir.SubSpec{ParentID: "city"}, original.Fields[1].Spec)
}

func TestRenameSchema(t *testing.T) {
	s := New(NewSequentialGenerator("id"))

	require.NoError(t, s.RenameSchema(" Renamed "))
	assert.Equal(t, "Renamed", s.Active().Name)
	assert.ErrorIs(t, s.RenameSchema(""), ErrEmptyName)
	assert.Equal(t, "Renamed", s.Active().Name)
}

func TestDeleteSchema(t *testing.T) {
	s := New(NewSequentialGenerator("id"))
	assert.ErrorIs(t, s.DeleteSchema(), ErrLastSchema)

	_, err := s.AddSchema("Second")
	require.NoError(t, err)
	_, err = s.AddSchema("Third")
	require.NoError(t, err)

	require.NoError(t, s.DeleteSchema())

	assert.Len(t, s.Instances, 2)
	assert.Equal(t, "id-1", s.ActiveInstanceID, "first remaining schema becomes active")
	_, ok := s.Schema("id-3")
	assert.False(t, ok)
}

func TestSelectSchema_Unknown(t *testing.T) {
	s := New(NewSequentialGenerator("id"))

	err := s.SelectSchema("nope")
	assert.ErrorIs(t, err, ErrSchemaNotFound)
	assert.Equal(t, "id-1", s.ActiveInstanceID)
}
