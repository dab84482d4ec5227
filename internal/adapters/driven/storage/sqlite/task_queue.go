package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/metamorphic-search/structalign/internal/core/domain"
	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
	"github.com/metamorphic-search/structalign/internal/logger"
)

// defaultPollInterval is how long the delivery loop sleeps when the
// pending_tasks table is empty.
const defaultPollInterval = 2 * time.Second

// deliveryBatchSize caps how many rows one poll loads.
const deliveryBatchSize = 16

// taskQueue implements driven.TaskQueue over the pending_tasks table.
// Published descriptors survive process restarts, so the enqueue and
// worker commands can run as separate processes: one inserts rows, the
// other polls and delivers them. A row is deleted only after its task
// has been handed to the consumer; a crash mid-delivery redelivers,
// which the idempotent result store absorbs.
type taskQueue struct {
	store *Store
	poll  time.Duration

	mu     sync.Mutex
	closed bool
}

var _ driven.TaskQueue = (*taskQueue)(nil)

// TaskQueue returns a durable TaskQueue backed by this store.
func (s *Store) TaskQueue() driven.TaskQueue {
	return &taskQueue{store: s, poll: defaultPollInterval}
}

// Publish persists one task descriptor.
func (q *taskQueue) Publish(ctx context.Context, task domain.AlignmentTask) error {
	q.mu.Lock()
	closed := q.closed
	q.mu.Unlock()
	if closed {
		return domain.ErrQueueClosed
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("encoding task %s: %w", task.ID, err)
	}

	_, err = q.store.db.ExecContext(ctx, `
		INSERT INTO pending_tasks (task_id, cluster_id, payload) VALUES (?, ?, ?)
	`, task.ID, task.ClusterID, string(payload))
	if err != nil {
		return fmt.Errorf("publishing task %s: %w", task.ID, err)
	}
	return nil
}

// Tasks returns the delivery channel. Rows are polled in insertion
// order; when the table is empty the loop sleeps for the poll interval
// unless the queue has been closed, in which case the channel closes.
func (q *taskQueue) Tasks(ctx context.Context) <-chan domain.AlignmentTask {
	out := make(chan domain.AlignmentTask)
	go func() {
		defer close(out)
		for {
			delivered, err := q.deliverBatch(ctx, out)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				// Transient storage errors must not kill the worker.
				logger.Error("Task queue poll failed: %v", err)
			}
			if delivered > 0 {
				continue
			}

			q.mu.Lock()
			closed := q.closed
			q.mu.Unlock()
			if closed {
				return // closed and drained
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(q.poll):
			}
		}
	}()
	return out
}

// Close stops accepting new tasks. Already-published rows stay in the
// table and are still delivered; an open delivery loop drains them and
// then closes its channel.
func (q *taskQueue) Close() error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	return nil
}

// pendingRow is one loaded pending_tasks row.
type pendingRow struct {
	id      int64
	payload string
}

// deliverBatch loads up to deliveryBatchSize rows, hands each task to
// the consumer and deletes its row. Returns how many were delivered.
func (q *taskQueue) deliverBatch(ctx context.Context, out chan<- domain.AlignmentTask) (int, error) {
	pending, err := q.loadPending(ctx)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, row := range pending {
		var task domain.AlignmentTask
		if err := json.Unmarshal([]byte(row.payload), &task); err != nil {
			// A row that cannot decode would block the queue forever.
			logger.Warn("Discarding undecodable task row %d: %v", row.id, err)
			if err := q.deleteRow(ctx, row.id); err != nil {
				return delivered, err
			}
			continue
		}

		select {
		case <-ctx.Done():
			return delivered, ctx.Err()
		case out <- task:
		}

		if err := q.deleteRow(ctx, row.id); err != nil {
			return delivered, err
		}
		delivered++
	}
	return delivered, nil
}

// loadPending reads the oldest pending rows in insertion order.
func (q *taskQueue) loadPending(ctx context.Context) ([]pendingRow, error) {
	rows, err := q.store.db.QueryContext(ctx, `
		SELECT id, payload FROM pending_tasks ORDER BY id LIMIT ?
	`, deliveryBatchSize)
	if err != nil {
		return nil, fmt.Errorf("querying pending tasks: %w", err)
	}
	defer rows.Close()

	var pending []pendingRow //nolint:prealloc // size unknown from query
	for rows.Next() {
		var row pendingRow
		if err := rows.Scan(&row.id, &row.payload); err != nil {
			return nil, fmt.Errorf("scanning pending task: %w", err)
		}
		pending = append(pending, row)
	}
	return pending, rows.Err()
}

func (q *taskQueue) deleteRow(ctx context.Context, id int64) error {
	_, err := q.store.db.ExecContext(ctx, "DELETE FROM pending_tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting pending task %d: %w", id, err)
	}
	return nil
}
