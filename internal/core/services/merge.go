package services

import "github.com/metamorphic-search/structalign/internal/core/domain"

// pairOutcome is one (pair, algorithm, metrics) tuple produced by the
// executor for a cluster's batch.
type pairOutcome struct {
	entry1ID int64
	entry2ID int64
	typeID   domain.AlignmentTypeID
	metrics  domain.AlignmentMetrics
}

// mergeOutcomes collapses the pair×algorithm outcome stream into one
// merged record per pair, keyed by the canonical pair key. Each
// algorithm writes only the field subset it owns; a duplicate
// (pair, type) outcome is last-value-wins. Pairs with no outcomes
// produce no record - they are picked up again by the next
// pending-work pass.
func mergeOutcomes(clusterID int64, outcomes []pairOutcome) []domain.MergedRecord {
	merged := make(map[domain.PairKey]*domain.MergedRecord)
	var order []domain.PairKey

	for _, o := range outcomes {
		key := domain.NewPairKey(o.entry1ID, o.entry2ID)
		rec, ok := merged[key]
		if !ok {
			rec = &domain.MergedRecord{
				ClusterID: clusterID,
				Entry1ID:  o.entry1ID,
				Entry2ID:  o.entry2ID,
			}
			merged[key] = rec
			order = append(order, key)
		}
		rec.Apply(o.typeID, o.metrics)
	}

	records := make([]domain.MergedRecord, 0, len(order))
	for _, key := range order {
		records = append(records, *merged[key])
	}
	return records
}
