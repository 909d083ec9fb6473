package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	s := newTestStore()
	mustCreate(t, s, "Past", "2025-01-01 09:00", "High")
	mustCreate(t, s, "Future", "2030-01-01 09:00", "Low")
	done := mustCreate(t, s, "Done", "2024-06-01 09:00", "Medium")
	_, err := s.ToggleCompleted(done.ID)
	require.NoError(t, err)

	tests := []struct {
		status string
		want   []string
	}{
		{"", []string{"Past", "Future", "Done"}},
		{"all", []string{"Past", "Future", "Done"}},
		{"pending", []string{"Past", "Future"}},
		{"Completed", []string{"Done"}},
		{" overdue ", []string{"Past"}},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got, err := Filter(s.List(), tt.status, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tasks(got))
		})
	}

	_, err = Filter(s.List(), "someday", testNow)
	assert.ErrorIs(t, err, ErrValidation)
}
