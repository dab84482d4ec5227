package driven

import (
	"context"

	"github.com/metamorphic-search/structalign/internal/core/domain"
)

// CatalogStore reads the clustering catalog. The catalog is owned and
// mutated by upstream pipeline stages; this core never writes it.
type CatalogStore interface {
	// ListRepresentativeEntries returns every representative subcluster
	// entry together with its cluster, across the whole catalog.
	ListRepresentativeEntries(ctx context.Context) ([]domain.RepresentativeEntry, error)

	// FetchClusterEntries returns the representative entries of the
	// given clusters, resolved down to their structure file paths.
	FetchClusterEntries(ctx context.Context, clusterIDs []int64) ([]domain.ClusterEntry, error)

	// GetEntry retrieves one subcluster entry by id.
	// Returns domain.ErrNotFound if it does not exist.
	GetEntry(ctx context.Context, id int64) (*domain.SubclusterEntry, error)
}
