package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metamorphic-search/structalign/internal/core/ports/driving"
)

// mockStatusReporter implements driving.StatusReporter for command tests.
type mockStatusReporter struct {
	status *driving.PipelineStatus
	err    error
}

func (m *mockStatusReporter) Status(_ context.Context) (*driving.PipelineStatus, error) {
	return m.status, m.err
}

func TestStatusCmd_Use(t *testing.T) {
	assert.Equal(t, "status", statusCmd.Use)
}

func TestStatusCmd_NotConfigured(t *testing.T) {
	original := statusReporter
	statusReporter = nil
	defer func() { statusReporter = original }()

	_, err := executeCommand(t, "status")
	assert.Error(t, err)
}

func TestStatusCmd_PrintsSummary(t *testing.T) {
	original := statusReporter
	statusReporter = &mockStatusReporter{
		status: &driving.PipelineStatus{
			Clusters:              3,
			RepresentativeEntries: 9,
			CompletedPairs:        4,
			PendingClusters:       []int64{100, 200},
		},
	}
	defer func() { statusReporter = original }()

	out, err := executeCommand(t, "status")
	assert.NoError(t, err)
	assert.Contains(t, out, "Clusters:               3")
	assert.Contains(t, out, "Representative entries: 9")
	assert.Contains(t, out, "Completed pairs:        4")
	assert.Contains(t, out, "cluster 100")
	assert.Contains(t, out, "cluster 200")
}

func TestStatusCmd_NothingPending(t *testing.T) {
	original := statusReporter
	statusReporter = &mockStatusReporter{status: &driving.PipelineStatus{}}
	defer func() { statusReporter = original }()

	out, err := executeCommand(t, "status")
	assert.NoError(t, err)
	assert.Contains(t, out, "Pending clusters:       none")
}

func TestStatusCmd_PropagatesError(t *testing.T) {
	original := statusReporter
	statusReporter = &mockStatusReporter{err: errors.New("database locked")}
	defer func() { statusReporter = original }()

	_, err := executeCommand(t, "status")
	assert.ErrorContains(t, err, "database locked")
}
