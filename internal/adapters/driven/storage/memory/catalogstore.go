// Package memory provides in-memory implementations of the driven
// store ports, used for testing and single-shot runs without a
// database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/metamorphic-search/structalign/internal/core/domain"
	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// catalogRecord is one subcluster entry with its catalog context.
type catalogRecord struct {
	subclusterID   int64
	clusterID      int64
	filePath       string
	representative bool
}

// CatalogStore is an in-memory implementation of driven.CatalogStore.
type CatalogStore struct {
	mu      sync.RWMutex
	entries map[int64]catalogRecord
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		entries: make(map[int64]catalogRecord),
	}
}

// AddEntry registers a subcluster entry. Stands in for the upstream
// pipeline stages that own the catalog.
func (s *CatalogStore) AddEntry(entryID, subclusterID, clusterID int64, filePath string, representative bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entryID] = catalogRecord{
		subclusterID:   subclusterID,
		clusterID:      clusterID,
		filePath:       filePath,
		representative: representative,
	}
}

// RemoveEntry deletes an entry, simulating an upstream mutation.
func (s *CatalogStore) RemoveEntry(entryID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, entryID)
}

// ListRepresentativeEntries returns every representative entry.
func (s *CatalogStore) ListRepresentativeEntries(_ context.Context) ([]domain.RepresentativeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.RepresentativeEntry
	for id, rec := range s.entries {
		if !rec.representative {
			continue
		}
		out = append(out, domain.RepresentativeEntry{
			EntryID:      id,
			SubclusterID: rec.subclusterID,
			ClusterID:    rec.clusterID,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryID < out[j].EntryID })
	return out, nil
}

// FetchClusterEntries returns representative entries for the given
// clusters, with file paths.
func (s *CatalogStore) FetchClusterEntries(_ context.Context, clusterIDs []int64) ([]domain.ClusterEntry, error) {
	wanted := make(map[int64]struct{}, len(clusterIDs))
	for _, id := range clusterIDs {
		wanted[id] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.ClusterEntry
	for id, rec := range s.entries {
		if !rec.representative {
			continue
		}
		if _, ok := wanted[rec.clusterID]; !ok {
			continue
		}
		out = append(out, domain.ClusterEntry{
			EntryID:      id,
			FilePath:     rec.filePath,
			SubclusterID: rec.subclusterID,
			ClusterID:    rec.clusterID,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryID < out[j].EntryID })
	return out, nil
}

// GetEntry retrieves one subcluster entry by id.
func (s *CatalogStore) GetEntry(_ context.Context, id int64) (*domain.SubclusterEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.SubclusterEntry{
		ID:               id,
		SubclusterID:     rec.subclusterID,
		IsRepresentative: rec.representative,
	}, nil
}
