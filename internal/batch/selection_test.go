package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionToggle(t *testing.T) {
	s := NewSelection()

	v, err := s.Toggle("B1", SetTrain)
	require.NoError(t, err)
	assert.Equal(t, []string{"B1"}, v.Training)
	assert.Empty(t, v.Validation)

	// moving a batch to the other set removes it from the first one
	v, err = s.Toggle("B1", SetValidation)
	require.NoError(t, err)
	assert.Empty(t, v.Training)
	assert.Equal(t, []string{"B1"}, v.Validation)

	// toggling twice removes it
	v, err = s.Toggle("B1", SetValidation)
	require.NoError(t, err)
	assert.Empty(t, v.Validation)

	_, err = s.Toggle("B1", "test")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSelectionSetsAreExclusive(t *testing.T) {
	s := NewSelection()
	ids := []string{"B1", "B2", "B3", "B4"}
	for i, id := range ids {
		_, _ = s.Toggle(id, SetTrain)
		if i%2 == 0 {
			_, _ = s.Toggle(id, SetValidation)
		}
	}
	v := s.View()
	assert.Equal(t, []string{"B2", "B4"}, v.Training)
	assert.Equal(t, []string{"B1", "B3"}, v.Validation)
	for _, id := range v.Training {
		assert.NotContains(t, v.Validation, id)
	}
}

func TestSelectionViewIsACopy(t *testing.T) {
	s := NewSelection()
	_, _ = s.Toggle("B1", SetTrain)
	v := s.View()
	v.Training[0] = "changed"
	assert.Equal(t, []string{"B1"}, s.View().Training)
}

func TestSelectionClear(t *testing.T) {
	s := NewSelection()
	reverse := ReplaceGlobalSelection(s)
	defer reverse()
	assert.Equal(t, s, S())

	_, _ = s.Toggle("B1", SetTrain)
	_, _ = s.Toggle("B2", SetValidation)
	s.Clear()
	assert.Empty(t, s.View().Training)
	assert.Empty(t, s.View().Validation)
}
