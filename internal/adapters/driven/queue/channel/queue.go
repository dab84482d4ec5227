// Package channel provides an in-process task queue over a buffered
// channel. It backs the single-shot `run` command and tests; a broker
// adapter can replace it behind the same port for distributed workers.
package channel

import (
	"context"
	"sync"

	"github.com/metamorphic-search/structalign/internal/core/domain"
	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
)

// Ensure Queue implements the interface.
var _ driven.TaskQueue = (*Queue)(nil)

// DefaultCapacity is the default queue buffer size.
const DefaultCapacity = 64

// Queue is a bounded in-process task queue.
type Queue struct {
	mu         sync.Mutex
	tasks      chan domain.AlignmentTask
	done       chan struct{}
	closed     bool
	publishers sync.WaitGroup
}

// NewQueue creates a queue with the given capacity.
// A capacity below one falls back to DefaultCapacity.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Queue{
		tasks: make(chan domain.AlignmentTask, capacity),
		done:  make(chan struct{}),
	}
}

// Publish submits one task. Blocks while the buffer is full.
func (q *Queue) Publish(ctx context.Context, task domain.AlignmentTask) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return domain.ErrQueueClosed
	}
	q.publishers.Add(1)
	q.mu.Unlock()
	defer q.publishers.Done()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-q.done:
		return domain.ErrQueueClosed
	case q.tasks <- task:
		return nil
	}
}

// Tasks returns the delivery channel. The returned channel closes once
// the queue is closed and drained, or when ctx is cancelled.
func (q *Queue) Tasks(ctx context.Context) <-chan domain.AlignmentTask {
	out := make(chan domain.AlignmentTask)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case task, ok := <-q.tasks:
				if !ok {
					return
				}
				select {
				case <-ctx.Done():
					return
				case out <- task:
				}
			}
		}
	}()
	return out
}

// Close stops accepting new tasks. Already-published tasks are still
// delivered. Publishers blocked on a full buffer are released with
// ErrQueueClosed; the task channel itself is only closed once no
// publisher can still be sending on it.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.done)
	q.mu.Unlock()

	q.publishers.Wait()
	close(q.tasks)
	return nil
}
