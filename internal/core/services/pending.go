package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/metamorphic-search/structalign/internal/core/domain"
	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
)

// PendingResolver computes which clusters still owe pairwise alignment
// work, given the persisted catalog and result state.
type PendingResolver struct {
	catalog    driven.CatalogStore
	alignments driven.AlignmentStore
}

// NewPendingResolver creates a pending-work resolver.
func NewPendingResolver(catalog driven.CatalogStore, alignments driven.AlignmentStore) *PendingResolver {
	return &PendingResolver{
		catalog:    catalog,
		alignments: alignments,
	}
}

// PendingClusters returns the ids of clusters that have at least two
// representative entries and at least one unordered pair of them
// without a stored result. The result is sorted for stable output.
func (r *PendingResolver) PendingClusters(ctx context.Context) ([]int64, error) {
	entries, err := r.catalog.ListRepresentativeEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing representative entries: %w", err)
	}

	completed, err := r.alignments.CompletedPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing completed pairs: %w", err)
	}

	return resolvePending(entries, completed), nil
}

// resolvePending is the pure set-difference step: per cluster, all
// C(n,2) pairs of representative entries are tested against the
// completed-pair set. A cluster with fewer than two representatives
// can owe no work and is silently skipped.
func resolvePending(entries []domain.RepresentativeEntry, completed map[domain.PairKey]struct{}) []int64 {
	byCluster := make(map[int64][]int64)
	for _, e := range entries {
		byCluster[e.ClusterID] = append(byCluster[e.ClusterID], e.EntryID)
	}

	var pending []int64
	for clusterID, ids := range byCluster {
		if len(ids) < 2 {
			continue
		}
		if missingPair(ids, completed) {
			pending = append(pending, clusterID)
		}
	}

	sort.Slice(pending, func(i, j int) bool { return pending[i] < pending[j] })
	return pending
}

// missingPair reports whether any unordered pair of ids lacks a
// completed result.
func missingPair(ids []int64, completed map[domain.PairKey]struct{}) bool {
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if _, ok := completed[domain.NewPairKey(ids[i], ids[j])]; !ok {
				return true
			}
		}
	}
	return false
}
