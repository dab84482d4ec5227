package driven

import (
	"context"

	"github.com/metamorphic-search/structalign/internal/core/domain"
)

// Aligner is one comparison capability: given two structure files it
// returns the algorithm's metric mapping, or domain.ErrNoAlignment as
// the explicit no-result signal. Any error is local to the pair and
// algorithm; it never aborts the batch.
//
// Implementations must be safe for concurrent use: the processor
// invokes one Aligner from many goroutines at once.
type Aligner interface {
	// Type returns the alignment type this capability implements.
	Type() domain.AlignmentTypeID

	// Align compares the structures at pathA and pathB.
	Align(ctx context.Context, pathA, pathB string) (domain.AlignmentMetrics, error)
}
