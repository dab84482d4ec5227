package channel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metamorphic-search/structalign/internal/core/domain"
)

func TestQueue_PublishAndConsume(t *testing.T) {
	q := NewQueue(4)
	ctx := context.Background()

	task := domain.AlignmentTask{
		ID:        "t-1",
		ClusterID: 100,
		Entries:   []domain.TaskEntry{{EntryID: 1}, {EntryID: 2}},
	}
	require.NoError(t, q.Publish(ctx, task))
	require.NoError(t, q.Close())

	var got []domain.AlignmentTask
	for delivered := range q.Tasks(ctx) {
		got = append(got, delivered)
	}

	require.Len(t, got, 1)
	assert.Equal(t, task, got[0])
}

func TestQueue_PublishAfterClose(t *testing.T) {
	q := NewQueue(4)
	require.NoError(t, q.Close())

	err := q.Publish(context.Background(), domain.AlignmentTask{ID: "t-1", ClusterID: 1})
	assert.ErrorIs(t, err, domain.ErrQueueClosed)
}

func TestQueue_CloseTwice(t *testing.T) {
	q := NewQueue(4)
	require.NoError(t, q.Close())
	assert.NoError(t, q.Close())
}

func TestQueue_DeliversInOrder(t *testing.T) {
	q := NewQueue(8)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		require.NoError(t, q.Publish(ctx, domain.AlignmentTask{ClusterID: i}))
	}
	require.NoError(t, q.Close())

	var clusters []int64
	for task := range q.Tasks(ctx) {
		clusters = append(clusters, task.ClusterID)
	}
	assert.Equal(t, []int64{1, 2, 3}, clusters)
}

func TestQueue_CloseReleasesBlockedPublisher(t *testing.T) {
	q := NewQueue(1)
	ctx := context.Background()

	require.NoError(t, q.Publish(ctx, domain.AlignmentTask{ID: "t-1", ClusterID: 1}))

	// Second publish blocks on the full buffer.
	errCh := make(chan error, 1)
	go func() {
		errCh <- q.Publish(ctx, domain.AlignmentTask{ID: "t-2", ClusterID: 2})
	}()

	// Give the publisher time to park in its send.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, q.Close())

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, domain.ErrQueueClosed)
	case <-time.After(time.Second):
		t.Fatal("blocked publish did not return after close")
	}

	// The task published before close is still delivered.
	var got []domain.AlignmentTask
	for task := range q.Tasks(ctx) {
		got = append(got, task)
	}
	require.Len(t, got, 1)
	assert.Equal(t, "t-1", got[0].ID)
}

func TestQueue_ContextCancellationStopsDelivery(t *testing.T) {
	q := NewQueue(4)
	ctx, cancel := context.WithCancel(context.Background())

	tasks := q.Tasks(ctx)
	cancel()

	select {
	case _, ok := <-tasks:
		assert.False(t, ok, "channel should be closed after cancellation")
	case <-time.After(time.Second):
		t.Fatal("delivery channel did not close after cancellation")
	}
}
