package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockScheduler implements SchedulerService for command tests.
type mockScheduler struct {
	startErr error
	stopped  bool
}

func (m *mockScheduler) Start(_ context.Context) error {
	return m.startErr
}

func (m *mockScheduler) Stop() error {
	m.stopped = true
	return nil
}

func TestScheduleCmd_Use(t *testing.T) {
	assert.Equal(t, "schedule", scheduleCmd.Use)
}

func TestScheduleCmd_NotConfigured(t *testing.T) {
	origSched, origWorker := schedService, queueWorker
	schedService, queueWorker = nil, nil
	defer func() { schedService, queueWorker = origSched, origWorker }()

	_, err := executeCommand(t, "schedule")
	assert.Error(t, err)
}

func TestScheduleCmd_StopsSchedulerOnExit(t *testing.T) {
	origSched, origWorker := schedService, queueWorker
	sched := &mockScheduler{}
	schedService, queueWorker = sched, &mockWorker{}
	defer func() { schedService, queueWorker = origSched, origWorker }()

	out, err := executeCommand(t, "schedule")
	assert.NoError(t, err)
	assert.True(t, sched.stopped)
	assert.Contains(t, out, "Scheduler stopped.")
}

func TestScheduleCmd_PropagatesStartError(t *testing.T) {
	origSched, origWorker := schedService, queueWorker
	sched := &mockScheduler{startErr: errors.New("store unavailable")}
	schedService, queueWorker = sched, &mockWorker{}
	defer func() { schedService, queueWorker = origSched, origWorker }()

	_, err := executeCommand(t, "schedule")
	assert.ErrorContains(t, err, "store unavailable")
	assert.True(t, sched.stopped)
}
