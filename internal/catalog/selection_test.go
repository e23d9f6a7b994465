package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_CapAndToggle(t *testing.T) {
	var s Selection
	assert.False(t, s.CanCompare())

	s = s.Toggle(1)
	assert.False(t, s.CanCompare())
	s = s.Toggle(2)
	assert.True(t, s.CanCompare())
	s = s.Toggle(3)
	s = s.Toggle(4)

	assert.Equal(t, []int{1, 2, 3}, s.IDs())
	assert.False(t, s.Contains(4))
	assert.False(t, s.CanSelect(4))
	assert.True(t, s.CanSelect(2))
}

func TestSelection_ToggleRemoves(t *testing.T) {
	s := NewSelection(1, 2, 3)
	s = s.Toggle(2)
	assert.Equal(t, []int{1, 3}, s.IDs())

	s = s.Toggle(4)
	assert.Equal(t, []int{1, 3, 4}, s.IDs())
}

func TestSelection_Immutable(t *testing.T) {
	a := NewSelection(1, 2)
	b := a.Toggle(3)
	c := b.Toggle(1)

	assert.Equal(t, []int{1, 2}, a.IDs())
	assert.Equal(t, []int{1, 2, 3}, b.IDs())
	assert.Equal(t, []int{2, 3}, c.IDs())

	ids := b.IDs()
	ids[0] = 99
	assert.Equal(t, []int{1, 2, 3}, b.IDs())
}

func TestNewSelection_ReplaysToggles(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, NewSelection(1, 2, 3, 4).IDs())
	assert.Equal(t, []int{2}, NewSelection(1, 2, 1).IDs())
	assert.Equal(t, 0, NewSelection().Len())
}
