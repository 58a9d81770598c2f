package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r := NewNativeMapRepository()
	if r == nil {
		t.Error("Tag Repository is nil")
	}
}

func TestReplaceGlobal(t *testing.T) {
	r := NewNativeMapRepository()
	reverse := ReplaceGlobals(r)
	if R() == nil {
		t.Error("Global tag repository is nil")
	}
	reverse()
	if R() != nil {
		t.Error("Global tag repository is not nil after reverse")
	}
}

func TestCreate(t *testing.T) {
	r := NewNativeMapRepository()
	id, err := r.Create(TagConfig{Name: "Jacket Temp", OpcNodeID: "ns=2;s=JacketTemp", Unit: "°C", Type: TypeCPP})
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	tag, found, err := r.Get(id)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Jacket Temp", tag.Name)

	_, err = r.Create(TagConfig{ID: id, Name: "Other", OpcNodeID: "ns=2;s=Other", Type: TypeCPP})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = r.Create(TagConfig{Name: "Invalid"})
	assert.ErrorIs(t, err, ErrInvalidTag)
}

func TestSeededRepository(t *testing.T) {
	r := NewSeededRepository()
	tags, err := r.GetAll()
	require.NoError(t, err)
	require.Len(t, tags, 8)
	for i, tag := range tags {
		assert.Equal(t, DefaultTags()[i].ID, tag.ID)
	}

	// the sequence continues after the seeded ids
	id, err := r.Create(TagConfig{Name: "Jacket Temp", OpcNodeID: "ns=2;s=JacketTemp", Type: TypeCPP})
	require.NoError(t, err)
	assert.Equal(t, "9", id)

	all, _ := r.GetAll()
	assert.Equal(t, "9", all[len(all)-1].ID)
}

func TestGetAllByType(t *testing.T) {
	r := NewSeededRepository()
	cqa, err := r.GetAllByType(TypeCQA)
	require.NoError(t, err)
	require.Len(t, cqa, 3)
	assert.Equal(t, "Particle Diameter", cqa[0].Name)

	none, err := NewNativeMapRepository().GetAllByType(TypeCMA)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateDelete(t *testing.T) {
	r := NewSeededRepository()
	tag, _, _ := r.Get("3")
	tag.OpcNodeID = "ns=3;s=ReactTemp"
	require.NoError(t, r.Update(tag))

	got, _, _ := r.Get("3")
	assert.Equal(t, "ns=3;s=ReactTemp", got.OpcNodeID)

	assert.ErrorIs(t, r.Update(TagConfig{ID: "42", Name: "A", OpcNodeID: "ns=2;s=A", Type: TypeCMA}), ErrNotFound)

	require.NoError(t, r.Delete("3"))
	_, found, _ := r.Get("3")
	assert.False(t, found)
	assert.ErrorIs(t, r.Delete("3"), ErrNotFound)
}
