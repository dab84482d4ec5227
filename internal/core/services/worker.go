package services

import (
	"context"

	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
	"github.com/metamorphic-search/structalign/internal/core/ports/driving"
	"github.com/metamorphic-search/structalign/internal/logger"
)

// Ensure QueueWorker implements the interface.
var _ driving.Worker = (*QueueWorker)(nil)

// QueueWorker consumes the task queue and processes each delivered
// task. Different clusters share no mutable state, so one failed task
// never stops the worker or affects siblings.
type QueueWorker struct {
	queue     driven.TaskQueue
	processor driving.TaskProcessor
}

// NewQueueWorker creates a worker over the given queue and processor.
func NewQueueWorker(queue driven.TaskQueue, processor driving.TaskProcessor) *QueueWorker {
	return &QueueWorker{
		queue:     queue,
		processor: processor,
	}
}

// Run blocks, processing tasks until the queue closes and drains or
// the context is cancelled.
func (w *QueueWorker) Run(ctx context.Context) error {
	tasks := w.queue.Tasks(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task, ok := <-tasks:
			if !ok {
				logger.Debug("Task queue drained, worker exiting.")
				return nil
			}
			if err := w.processor.Process(ctx, task); err != nil {
				logger.Error("Error processing cluster %d (task %s): %v", task.ClusterID, task.ID, err)
			}
		}
	}
}
