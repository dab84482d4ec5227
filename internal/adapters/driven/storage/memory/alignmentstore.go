package memory

import (
	"context"
	"sync"
	"time"

	"github.com/metamorphic-search/structalign/internal/core/domain"
	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
)

// Ensure AlignmentStore implements the interface.
var _ driven.AlignmentStore = (*AlignmentStore)(nil)

// AlignmentStore is an in-memory implementation of
// driven.AlignmentStore with the same idempotency discipline as the
// SQLite adapter. Entry resolution goes through the paired catalog
// store.
type AlignmentStore struct {
	catalog *CatalogStore

	mu           sync.Mutex
	nextGroupID  int64
	nextResultID int64
	groupEntries map[int64][]int64
	results      map[int64]domain.AlignmentResult

	batchCalls int
	inserted   int
}

// NewAlignmentStore creates a new in-memory alignment store resolving
// entries against the given catalog.
func NewAlignmentStore(catalog *CatalogStore) *AlignmentStore {
	return &AlignmentStore{
		catalog:      catalog,
		groupEntries: make(map[int64][]int64),
		results:      make(map[int64]domain.AlignmentResult),
	}
}

// AddGroup creates a group with arbitrary membership and, optionally,
// a stored result. Tests use it to seed completed pairs and malformed
// groups.
func (s *AlignmentStore) AddGroup(withResult bool, entryIDs ...int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextGroupID++
	groupID := s.nextGroupID
	s.groupEntries[groupID] = append([]int64(nil), entryIDs...)
	if withResult {
		s.nextResultID++
		s.results[groupID] = domain.AlignmentResult{
			ID:               s.nextResultID,
			AlignmentGroupID: groupID,
			CreatedAt:        time.Now(),
		}
	}
	return groupID
}

// CompletedPairs returns pairs backed by a result on a two-member group.
func (s *AlignmentStore) CompletedPairs(_ context.Context) (map[domain.PairKey]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := make(map[domain.PairKey]struct{})
	for groupID := range s.results {
		members := s.groupEntries[groupID]
		if len(members) != 2 {
			continue
		}
		completed[domain.NewPairKey(members[0], members[1])] = struct{}{}
	}
	return completed, nil
}

// StoreBatch persists merged records with the idempotent discipline:
// missing entries skip the record, existing results are never
// overwritten, groups are created once per pair.
func (s *AlignmentStore) StoreBatch(ctx context.Context, records []domain.MergedRecord) (domain.StoreStats, error) {
	s.mu.Lock()
	s.batchCalls++
	s.mu.Unlock()

	var stats domain.StoreStats
	for i := range records {
		rec := &records[i]

		if _, err := s.catalog.GetEntry(ctx, rec.Entry1ID); err != nil {
			stats.SkippedMissing++
			continue
		}
		if _, err := s.catalog.GetEntry(ctx, rec.Entry2ID); err != nil {
			stats.SkippedMissing++
			continue
		}

		s.mu.Lock()
		groupID, found := s.findGroup(rec.Key())
		if !found {
			s.nextGroupID++
			groupID = s.nextGroupID
			s.groupEntries[groupID] = []int64{rec.Entry1ID, rec.Entry2ID}
		}

		if _, exists := s.results[groupID]; exists {
			stats.SkippedExisting++
			s.mu.Unlock()
			continue
		}

		s.nextResultID++
		s.results[groupID] = domain.AlignmentResult{
			ID:               s.nextResultID,
			AlignmentGroupID: groupID,
			CERMS:            rec.CERMS,
			TMRMS:            rec.TMRMS,
			TMSeqID:          rec.TMSeqID,
			TMScoreChain1:    rec.TMScoreChain1,
			TMScoreChain2:    rec.TMScoreChain2,
			FCRMS:            rec.FCRMS,
			FCIdentity:       rec.FCIdentity,
			FCSimilarity:     rec.FCSimilarity,
			FCScore:          rec.FCScore,
			FCAlignLen:       rec.FCAlignLen,
			CreatedAt:        time.Now(),
		}
		stats.Inserted++
		s.inserted++
		s.mu.Unlock()
	}
	return stats, nil
}

// findGroup locates a group whose membership is exactly the pair.
// Caller holds the lock.
func (s *AlignmentStore) findGroup(key domain.PairKey) (int64, bool) {
	for groupID, members := range s.groupEntries {
		if len(members) != 2 {
			continue
		}
		if domain.NewPairKey(members[0], members[1]) == key {
			return groupID, true
		}
	}
	return 0, false
}

// GroupCount returns the number of alignment groups.
func (s *AlignmentStore) GroupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.groupEntries)
}

// ResultCount returns the number of stored results.
func (s *AlignmentStore) ResultCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// InsertCount returns the total results inserted across all batches.
func (s *AlignmentStore) InsertCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inserted
}

// BatchCalls returns how many times StoreBatch was invoked.
func (s *AlignmentStore) BatchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batchCalls
}

// Result returns the stored result for the given pair, if any.
func (s *AlignmentStore) Result(key domain.PairKey) (*domain.AlignmentResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groupID, found := s.findGroup(key)
	if !found {
		return nil, false
	}
	res, ok := s.results[groupID]
	if !ok {
		return nil, false
	}
	return &res, true
}
