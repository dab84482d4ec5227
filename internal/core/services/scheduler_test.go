package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metamorphic-search/structalign/internal/core/domain"
	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
	"github.com/metamorphic-search/structalign/internal/core/ports/driving"
)

// --- Mock implementations for scheduler testing ---

// mockSchedulerStore implements driven.SchedulerStore for testing.
type mockSchedulerStore struct {
	mu      sync.RWMutex
	tasks   map[string]*domain.ScheduledTask
	results map[string][]domain.TaskRunResult
}

func newMockSchedulerStore() *mockSchedulerStore {
	return &mockSchedulerStore{
		tasks:   make(map[string]*domain.ScheduledTask),
		results: make(map[string][]domain.TaskRunResult),
	}
}

func (m *mockSchedulerStore) GetTask(_ context.Context, taskID string) (*domain.ScheduledTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	task, exists := m.tasks[taskID]
	if !exists {
		return nil, nil
	}
	taskCopy := *task
	return &taskCopy, nil
}

func (m *mockSchedulerStore) ListTasks(_ context.Context) ([]domain.ScheduledTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tasks := make([]domain.ScheduledTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (m *mockSchedulerStore) SaveTask(_ context.Context, task *domain.ScheduledTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task == nil {
		return domain.ErrInvalidInput
	}
	taskCopy := *task
	m.tasks[task.ID] = &taskCopy
	return nil
}

func (m *mockSchedulerStore) RecordResult(_ context.Context, result *domain.TaskRunResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if result == nil {
		return domain.ErrInvalidInput
	}
	m.results[result.TaskID] = append(m.results[result.TaskID], *result)
	return nil
}

func (m *mockSchedulerStore) GetTaskHistory(_ context.Context, taskID string, limit int) ([]domain.TaskRunResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	results := m.results[taskID]
	if len(results) > limit {
		results = results[len(results)-limit:]
	}
	return results, nil
}

func (m *mockSchedulerStore) PruneHistory(_ context.Context, _ int) error {
	return nil
}

// mockEnqueuer implements driving.WorkEnqueuer for testing.
type mockEnqueuer struct {
	mu            sync.Mutex
	enqueueCalled bool
	enqueueErr    error
	report        driving.EnqueueReport
}

func (m *mockEnqueuer) PendingClusters(_ context.Context) ([]int64, error) {
	return nil, nil
}

func (m *mockEnqueuer) Enqueue(_ context.Context) (*driving.EnqueueReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enqueueCalled = true
	if m.enqueueErr != nil {
		return nil, m.enqueueErr
	}
	report := m.report
	return &report, nil
}

func (m *mockEnqueuer) called() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enqueueCalled
}

// Ensure mocks implement interfaces
var _ driven.SchedulerStore = (*mockSchedulerStore)(nil)
var _ driving.WorkEnqueuer = (*mockEnqueuer)(nil)

// ==================== Scheduler Tests ====================

func TestNewScheduler(t *testing.T) {
	config := domain.DefaultSchedulerConfig()
	store := newMockSchedulerStore()
	enqueuer := &mockEnqueuer{}

	scheduler := NewScheduler(config, store, enqueuer)

	require.NotNil(t, scheduler)
	assert.Equal(t, config.Enabled, scheduler.config.Enabled)
}

func TestScheduler_StartStop(t *testing.T) {
	config := domain.DefaultSchedulerConfig()
	store := newMockSchedulerStore()
	enqueuer := &mockEnqueuer{}

	scheduler := NewScheduler(config, store, enqueuer)

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = scheduler.Start(ctx)
	}()

	// Give it time to start
	time.Sleep(50 * time.Millisecond)

	cancel()
	err := scheduler.Stop()
	require.NoError(t, err)

	wg.Wait()
}

func TestScheduler_RestartAfterContextCancel(t *testing.T) {
	config := domain.DefaultSchedulerConfig()
	store := newMockSchedulerStore()
	enqueuer := &mockEnqueuer{}

	scheduler := NewScheduler(config, store, enqueuer)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	err := scheduler.Start(cancelled)
	assert.ErrorIs(t, err, context.Canceled)

	// The first exit must not leave the scheduler stuck; a second
	// Start has to enter the loop again rather than return early.
	err = scheduler.Start(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), newMockSchedulerStore(), &mockEnqueuer{})

	err := scheduler.Stop()
	require.NoError(t, err)
}

func TestScheduler_InitialiseTasks(t *testing.T) {
	config := domain.DefaultSchedulerConfig()
	store := newMockSchedulerStore()
	scheduler := NewScheduler(config, store, &mockEnqueuer{})

	ctx := context.Background()
	err := scheduler.initialiseTasks(ctx)
	require.NoError(t, err)

	task, err := store.GetTask(ctx, domain.TaskIDAlignmentEnqueue)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "Alignment Enqueue", task.Name)
	assert.True(t, task.Enabled)
}

func TestScheduler_EnsureTask_UpdateInterval(t *testing.T) {
	store := newMockSchedulerStore()
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), store, &mockEnqueuer{})
	ctx := context.Background()

	taskCfg := domain.TaskConfig{
		Enabled:  true,
		Interval: 1 * time.Hour,
	}
	err := scheduler.ensureTask(ctx, "test-task", "Test Task", taskCfg)
	require.NoError(t, err)

	taskCfg.Interval = 2 * time.Hour
	err = scheduler.ensureTask(ctx, "test-task", "Test Task", taskCfg)
	require.NoError(t, err)

	task, err := store.GetTask(ctx, "test-task")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, task.Interval)
}

func TestScheduler_RunAlignmentEnqueue(t *testing.T) {
	enqueuer := &mockEnqueuer{report: driving.EnqueueReport{TasksPublished: 3}}
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), newMockSchedulerStore(), enqueuer)

	items, err := scheduler.runAlignmentEnqueue(context.Background())
	require.NoError(t, err)
	assert.True(t, enqueuer.called())
	assert.Equal(t, 3, items)
}

func TestScheduler_RunAlignmentEnqueue_NilEnqueuer(t *testing.T) {
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), newMockSchedulerStore(), nil)

	items, err := scheduler.runAlignmentEnqueue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, items)
}

func TestScheduler_CheckAndRunDueTasks(t *testing.T) {
	store := newMockSchedulerStore()
	enqueuer := &mockEnqueuer{}
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), store, enqueuer)
	ctx := context.Background()

	// Create a task that is due
	now := time.Now()
	dueTask := &domain.ScheduledTask{
		ID:       domain.TaskIDAlignmentEnqueue,
		Name:     "Alignment Enqueue",
		Interval: 1 * time.Hour,
		NextRun:  now.Add(-1 * time.Minute), // Already past due
		Enabled:  true,
	}
	err := store.SaveTask(ctx, dueTask)
	require.NoError(t, err)

	scheduler.checkAndRunDueTasks(ctx)
	scheduler.wg.Wait()

	assert.True(t, enqueuer.called())

	// The task state advanced and a result was recorded.
	task, err := store.GetTask(ctx, domain.TaskIDAlignmentEnqueue)
	require.NoError(t, err)
	assert.True(t, task.NextRun.After(now))

	history, err := store.GetTaskHistory(ctx, domain.TaskIDAlignmentEnqueue, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Success)
}

func TestScheduler_DisabledTaskNotRun(t *testing.T) {
	store := newMockSchedulerStore()
	enqueuer := &mockEnqueuer{}
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), store, enqueuer)
	ctx := context.Background()

	err := store.SaveTask(ctx, &domain.ScheduledTask{
		ID:      domain.TaskIDAlignmentEnqueue,
		NextRun: time.Now().Add(-1 * time.Minute),
		Enabled: false,
	})
	require.NoError(t, err)

	scheduler.checkAndRunDueTasks(ctx)
	scheduler.wg.Wait()

	assert.False(t, enqueuer.called())
}

func TestScheduler_RunTask_UnknownTaskID(t *testing.T) {
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), newMockSchedulerStore(), nil)
	ctx := context.Background()

	task := &domain.ScheduledTask{
		ID:      "unknown-task",
		Name:    "Unknown",
		Enabled: true,
	}

	// This should just log and return, not panic
	scheduler.runTask(ctx, task)
	scheduler.wg.Wait()
}
