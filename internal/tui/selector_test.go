package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorRadio(t *testing.T) {
	s := NewSelector("Source", []string{"RPI", "SAA"}, false)
	assert.Equal(t, []string{"None", "RPI", "SAA"}, s.Options)
	assert.Equal(t, "", s.Value())

	s.MoveDown()
	assert.Equal(t, "RPI", s.Value())
	s.MoveUp()
	s.MoveUp()
	assert.Equal(t, "SAA", s.Value(), "moving up from None wraps to the last option")
}

func TestSelectorDropdown(t *testing.T) {
	s := NewSelector("Source", []string{"RPI", "SAA"}, true)

	s.Open = true
	s.MoveDown()
	assert.Equal(t, "", s.Value(), "browsing does not select")
	s.Choose()
	assert.Equal(t, "RPI", s.Value())
	assert.False(t, s.Open)

	s.Open = true
	s.MoveDown()
	s.Close()
	assert.Equal(t, "RPI", s.Value())
	assert.Equal(t, s.Selected, s.Cursor)
}
