package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metamorphic-search/structalign/internal/core/domain"
)

func setupAlignmentStore(t *testing.T) (*CatalogStore, *AlignmentStore) {
	t.Helper()

	catalog := NewCatalogStore()
	catalog.AddEntry(1, 10, 100, "/data/a.pdb", true)
	catalog.AddEntry(2, 11, 100, "/data/b.pdb", true)
	catalog.AddEntry(3, 12, 100, "/data/c.pdb", true)

	return catalog, NewAlignmentStore(catalog)
}

func floatPtr(v float64) *float64 { return &v }

func TestAlignmentStore_CompletedPairs(t *testing.T) {
	_, store := setupAlignmentStore(t)
	ctx := context.Background()

	store.AddGroup(true, 1, 2)
	store.AddGroup(false, 1, 3)    // group without result
	store.AddGroup(true, 1, 2, 3)  // malformed three-member group
	store.AddGroup(true, 2)        // malformed one-member group

	completed, err := store.CompletedPairs(ctx)
	require.NoError(t, err)

	assert.Len(t, completed, 1)
	assert.Contains(t, completed, domain.NewPairKey(1, 2))
}

func TestAlignmentStore_StoreBatch_Insert(t *testing.T) {
	_, store := setupAlignmentStore(t)
	ctx := context.Background()

	stats, err := store.StoreBatch(ctx, []domain.MergedRecord{
		{ClusterID: 100, Entry1ID: 1, Entry2ID: 2, CERMS: floatPtr(1.2)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Inserted)
	assert.Equal(t, 1, store.GroupCount())
	assert.Equal(t, 1, store.ResultCount())

	res, ok := store.Result(domain.NewPairKey(1, 2))
	require.True(t, ok)
	assert.Equal(t, 1.2, *res.CERMS)
	assert.Nil(t, res.TMRMS)
}

func TestAlignmentStore_StoreBatch_Idempotent(t *testing.T) {
	_, store := setupAlignmentStore(t)
	ctx := context.Background()

	records := []domain.MergedRecord{
		{ClusterID: 100, Entry1ID: 1, Entry2ID: 2, CERMS: floatPtr(1.2)},
	}

	_, err := store.StoreBatch(ctx, records)
	require.NoError(t, err)

	// Second pass with different values: no overwrite, no new rows.
	records[0].CERMS = floatPtr(9.9)
	stats, err := store.StoreBatch(ctx, records)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Inserted)
	assert.Equal(t, 1, stats.SkippedExisting)
	assert.Equal(t, 1, store.GroupCount())
	assert.Equal(t, 1, store.ResultCount())
	assert.Equal(t, 1, store.InsertCount())

	res, ok := store.Result(domain.NewPairKey(1, 2))
	require.True(t, ok)
	assert.Equal(t, 1.2, *res.CERMS, "existing result must not be overwritten")
}

func TestAlignmentStore_StoreBatch_ReusesGroupWithoutResult(t *testing.T) {
	_, store := setupAlignmentStore(t)
	ctx := context.Background()

	store.AddGroup(false, 1, 2)

	stats, err := store.StoreBatch(ctx, []domain.MergedRecord{
		{ClusterID: 100, Entry1ID: 2, Entry2ID: 1, CERMS: floatPtr(0.5)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Inserted)
	assert.Equal(t, 1, store.GroupCount(), "existing group must be reused, not duplicated")
}

func TestAlignmentStore_StoreBatch_MissingEntry(t *testing.T) {
	_, store := setupAlignmentStore(t)
	ctx := context.Background()

	stats, err := store.StoreBatch(ctx, []domain.MergedRecord{
		{ClusterID: 100, Entry1ID: 1, Entry2ID: 99, CERMS: floatPtr(1.0)},
		{ClusterID: 100, Entry1ID: 1, Entry2ID: 2, CERMS: floatPtr(2.0)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.SkippedMissing)
	assert.Equal(t, 1, stats.Inserted, "missing entry must not block sibling records")
}
