package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusService_Status(t *testing.T) {
	catalog, alignments := newTestStores(t)
	alignments.AddGroup(true, 1, 2)
	resolver := NewPendingResolver(catalog, alignments)
	service := NewStatusService(resolver, catalog, alignments)

	status, err := service.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, status.Clusters)
	assert.Equal(t, 4, status.RepresentativeEntries)
	assert.Equal(t, 1, status.CompletedPairs)
	assert.Equal(t, []int64{100}, status.PendingClusters)
}

func TestStatusService_EmptyCatalog(t *testing.T) {
	catalog, alignments := newTestStores(t)
	catalog.RemoveEntry(1)
	catalog.RemoveEntry(2)
	catalog.RemoveEntry(3)
	catalog.RemoveEntry(4)
	catalog.RemoveEntry(5)

	resolver := NewPendingResolver(catalog, alignments)
	service := NewStatusService(resolver, catalog, alignments)

	status, err := service.Status(context.Background())
	require.NoError(t, err)

	assert.Zero(t, status.Clusters)
	assert.Zero(t, status.RepresentativeEntries)
	assert.Empty(t, status.PendingClusters)
}
