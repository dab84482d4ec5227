package driven

import (
	"context"

	"github.com/metamorphic-search/structalign/internal/core/domain"
)

// TaskQueue moves task descriptors from the enqueuer to the worker.
// The transport itself is external to the core; this port only fixes
// the descriptor shape and delivery semantics.
type TaskQueue interface {
	// Publish submits one task for processing.
	// Returns domain.ErrQueueClosed after Close.
	Publish(ctx context.Context, task domain.AlignmentTask) error

	// Tasks returns the delivery channel. The channel is closed once
	// the queue is closed and drained, or when ctx is cancelled.
	Tasks(ctx context.Context) <-chan domain.AlignmentTask

	// Close stops accepting new tasks. Already-published tasks are
	// still delivered.
	Close() error
}
