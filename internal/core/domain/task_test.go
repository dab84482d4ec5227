package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignmentTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		task    AlignmentTask
		wantErr error
	}{
		{
			name: "valid",
			task: AlignmentTask{
				ClusterID: 1,
				Entries:   []TaskEntry{{EntryID: 1}, {EntryID: 2}},
			},
		},
		{
			name:    "missing cluster id",
			task:    AlignmentTask{Entries: []TaskEntry{{EntryID: 1}}},
			wantErr: ErrInvalidTask,
		},
		{
			name:    "missing entries",
			task:    AlignmentTask{ClusterID: 1},
			wantErr: ErrInvalidTask,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAlignmentTask_PairCount(t *testing.T) {
	tests := []struct {
		entries int
		want    int
	}{
		{entries: 0, want: 0},
		{entries: 1, want: 0},
		{entries: 2, want: 1},
		{entries: 3, want: 3},
		{entries: 5, want: 10},
	}

	for _, tt := range tests {
		task := AlignmentTask{Entries: make([]TaskEntry, tt.entries)}
		assert.Equal(t, tt.want, task.PairCount(), "entries=%d", tt.entries)
	}
}
