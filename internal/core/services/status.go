package services

import (
	"context"
	"fmt"

	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
	"github.com/metamorphic-search/structalign/internal/core/ports/driving"
)

// Ensure StatusService implements the interface.
var _ driving.StatusReporter = (*StatusService)(nil)

// StatusService summarises persisted catalog and alignment state.
type StatusService struct {
	resolver   *PendingResolver
	catalog    driven.CatalogStore
	alignments driven.AlignmentStore
}

// NewStatusService creates a status reporter.
func NewStatusService(resolver *PendingResolver, catalog driven.CatalogStore, alignments driven.AlignmentStore) *StatusService {
	return &StatusService{
		resolver:   resolver,
		catalog:    catalog,
		alignments: alignments,
	}
}

// Status returns a snapshot of alignment progress.
func (s *StatusService) Status(ctx context.Context) (*driving.PipelineStatus, error) {
	entries, err := s.catalog.ListRepresentativeEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing representative entries: %w", err)
	}

	completed, err := s.alignments.CompletedPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing completed pairs: %w", err)
	}

	pending, err := s.resolver.PendingClusters(ctx)
	if err != nil {
		return nil, err
	}

	clusters := make(map[int64]struct{})
	for _, e := range entries {
		clusters[e.ClusterID] = struct{}{}
	}

	return &driving.PipelineStatus{
		Clusters:              len(clusters),
		RepresentativeEntries: len(entries),
		CompletedPairs:        len(completed),
		PendingClusters:       pending,
	}, nil
}
