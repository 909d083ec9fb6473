package ui

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorPick(t *testing.T) {
	s := NewSelector("Priority?", []string{"High", "Medium", "Low"}, 7, false)
	assert.Equal(t, 0, s.selected)

	idx, ok := s.pick('2')
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = s.pick('l')
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = s.pick('9')
	assert.False(t, ok)
	_, ok = s.pick('z')
	assert.False(t, ok)
}

func TestSelectorReadKey(t *testing.T) {
	s := NewSelector("Delete?", []string{"Yes", "No"}, 1, false)

	tests := []struct {
		name   string
		input  string
		action keyAction
		picked int
	}{
		{"enter", "\r", keyAccept, 0},
		{"ctrl-c", "\x03", keyCancel, 0},
		{"arrow up", "\x1b[A", keyUp, 0},
		{"arrow down", "\x1b[B", keyDown, 0},
		{"vi down", "j", keyDown, 0},
		{"letter", "y", keyPick, 0},
		{"digit", "2", keyPick, 1},
		{"other", "x", keyNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, picked, err := s.readKey(bufio.NewReader(strings.NewReader(tt.input)))
			require.NoError(t, err)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.picked, picked)
		})
	}
}

func TestSelectorRunLine(t *testing.T) {
	s := NewSelector("Delete?", []string{"Yes", "No"}, 1, false)

	idx, err := s.runLine(strings.NewReader("y\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = s.runLine(strings.NewReader("\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = s.runLine(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrCancelled)
}
