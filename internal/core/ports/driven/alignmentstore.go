package driven

import (
	"context"

	"github.com/metamorphic-search/structalign/internal/core/domain"
)

// AlignmentStore persists alignment groups and results. Groups and
// results are created lazily, never deleted, and a group's result is
// never overwritten.
type AlignmentStore interface {
	// CompletedPairs returns the canonical keys of every entry pair
	// that already has a stored result on a well-formed two-member
	// group. Groups with any other member count are ignored: they can
	// never satisfy a pairwise completeness test and are treated as
	// not-yet-complete.
	CompletedPairs(ctx context.Context) (map[domain.PairKey]struct{}, error)

	// StoreBatch persists merged records for one cluster as a single
	// transaction. Per record: both entries are resolved (missing →
	// skipped, counted), an exactly-two-member group is found or
	// created, and a result is inserted unless one already exists for
	// the group (skipped, counted). On any unexpected failure the whole
	// batch is rolled back and the error reported at cluster
	// granularity; a retry redoes the batch with no duplicates.
	StoreBatch(ctx context.Context, records []domain.MergedRecord) (domain.StoreStats, error)
}
