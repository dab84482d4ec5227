package driving

import (
	"context"

	"github.com/metamorphic-search/structalign/internal/core/domain"
)

// TaskProcessor executes one cluster's alignment task: every unordered
// pair of the task's entries against every active alignment type,
// merged per pair and stored idempotently.
type TaskProcessor interface {
	// Process runs one task to completion. Pair-level and
	// algorithm-level failures are logged and excluded; only an invalid
	// descriptor or a store transaction failure is returned.
	Process(ctx context.Context, task domain.AlignmentTask) error

	// Status returns progress for a cluster currently being processed,
	// or nil if none is active.
	Status(clusterID int64) *ProcessStatus
}

// ProcessStatus reports progress of one in-flight cluster task.
type ProcessStatus struct {
	// ClusterID identifies the cluster.
	ClusterID int64

	// PairsTotal is the number of unordered pairs in the task.
	PairsTotal int

	// AttemptsDone counts finished pair×algorithm invocations.
	AttemptsDone int

	// AttemptsFailed counts invocations that produced no result.
	AttemptsFailed int
}

// Worker consumes the task queue and processes tasks until the queue
// drains or the context is cancelled.
type Worker interface {
	// Run blocks, processing tasks as they arrive. A failed task is
	// logged and does not stop the worker.
	Run(ctx context.Context) error
}
