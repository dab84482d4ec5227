package driving

import "context"

// WorkEnqueuer resolves pending alignment work and publishes it.
type WorkEnqueuer interface {
	// PendingClusters returns the ids of clusters with at least one
	// unordered pair of representative entries lacking a stored result.
	// Clusters with fewer than two representatives are never pending.
	PendingClusters(ctx context.Context) ([]int64, error)

	// Enqueue publishes one task per pending cluster that still has at
	// least two representative entries. Zero publishable clusters is a
	// no-op, not an error.
	Enqueue(ctx context.Context) (*EnqueueReport, error)
}

// EnqueueReport summarises one enqueue pass.
type EnqueueReport struct {
	// TasksPublished is the number of cluster tasks published.
	TasksPublished int

	// EntriesPublished is the total representative entries across
	// published tasks.
	EntriesPublished int

	// ClustersSkipped counts pending clusters whose representative
	// count dropped below two between resolution and fetch.
	ClustersSkipped int
}
