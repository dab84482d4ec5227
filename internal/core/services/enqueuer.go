package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/metamorphic-search/structalign/internal/core/domain"
	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
	"github.com/metamorphic-search/structalign/internal/core/ports/driving"
	"github.com/metamorphic-search/structalign/internal/logger"
)

// Ensure Enqueuer implements the interface.
var _ driving.WorkEnqueuer = (*Enqueuer)(nil)

// Enqueuer turns clusters with pending alignment work into task
// descriptors, one per cluster.
type Enqueuer struct {
	resolver *PendingResolver
	catalog  driven.CatalogStore
	queue    driven.TaskQueue
}

// NewEnqueuer creates a work enqueuer.
func NewEnqueuer(resolver *PendingResolver, catalog driven.CatalogStore, queue driven.TaskQueue) *Enqueuer {
	return &Enqueuer{
		resolver: resolver,
		catalog:  catalog,
		queue:    queue,
	}
}

// PendingClusters returns the clusters still owing pairwise work.
func (e *Enqueuer) PendingClusters(ctx context.Context) ([]int64, error) {
	return e.resolver.PendingClusters(ctx)
}

// Enqueue resolves pending clusters, fetches their representative
// entries, and publishes one task per cluster with at least two
// entries. A cluster whose entry count dropped below two since
// resolution (upstream mutation race) is skipped, not failed.
func (e *Enqueuer) Enqueue(ctx context.Context) (*driving.EnqueueReport, error) {
	pending, err := e.resolver.PendingClusters(ctx)
	if err != nil {
		return nil, err
	}

	report := &driving.EnqueueReport{}
	if len(pending) == 0 {
		logger.Warn("No clusters with pending alignments found. Nothing enqueued.")
		return report, nil
	}

	entries, err := e.catalog.FetchClusterEntries(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("fetching cluster entries: %w", err)
	}

	byCluster := make(map[int64][]domain.TaskEntry)
	for _, entry := range entries {
		byCluster[entry.ClusterID] = append(byCluster[entry.ClusterID], domain.TaskEntry{
			EntryID:      entry.EntryID,
			FilePath:     entry.FilePath,
			SubclusterID: entry.SubclusterID,
		})
	}

	clusterIDs := make([]int64, 0, len(byCluster))
	for id := range byCluster {
		clusterIDs = append(clusterIDs, id)
	}
	sort.Slice(clusterIDs, func(i, j int) bool { return clusterIDs[i] < clusterIDs[j] })

	for _, clusterID := range clusterIDs {
		taskEntries := byCluster[clusterID]
		if len(taskEntries) < 2 {
			report.ClustersSkipped++
			continue
		}

		task := domain.AlignmentTask{
			ID:        uuid.NewString(),
			ClusterID: clusterID,
			Entries:   taskEntries,
		}
		if err := e.queue.Publish(ctx, task); err != nil {
			return report, fmt.Errorf("publishing task for cluster %d: %w", clusterID, err)
		}

		report.TasksPublished++
		report.EntriesPublished += len(taskEntries)
		logger.Info("Enqueued %d entries for cluster %d (task %s).", len(taskEntries), clusterID, task.ID)
	}

	if report.TasksPublished == 0 {
		logger.Warn("No clusters with pending alignments found. Nothing enqueued.")
	}

	return report, nil
}
