package driving

import "context"

// StatusReporter summarises catalog and alignment progress.
type StatusReporter interface {
	// Status returns a snapshot of the pipeline's persisted state.
	Status(ctx context.Context) (*PipelineStatus, error)
}

// PipelineStatus is a point-in-time summary of alignment progress.
type PipelineStatus struct {
	// Clusters is the number of clusters with representative entries.
	Clusters int

	// RepresentativeEntries is the total representative entry count.
	RepresentativeEntries int

	// CompletedPairs is the number of pairs with a stored result.
	CompletedPairs int

	// PendingClusters are the clusters still owing pairwise work.
	PendingClusters []int64
}
