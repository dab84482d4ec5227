package domain

import "time"

// AlignmentTypeID identifies one configured comparison algorithm.
// Each id owns a disjoint subset of the result's metric fields.
type AlignmentTypeID int

// Known alignment types. The ids match the alignment_types rows seeded
// by the store migrations.
const (
	// AlignmentTypeCE is combinatorial-extension alignment. It produces
	// a single root-mean-square metric.
	AlignmentTypeCE AlignmentTypeID = 1

	// AlignmentTypeTMAlign is TM-align. It produces RMSD, sequence
	// identity and per-chain TM-scores.
	AlignmentTypeTMAlign AlignmentTypeID = 2

	// AlignmentTypeFatcat is FATCAT flexible alignment. It produces
	// RMSD, identity, similarity, score and alignment length.
	AlignmentTypeFatcat AlignmentTypeID = 3
)

// IsValid returns true if the alignment type is recognised.
func (t AlignmentTypeID) IsValid() bool {
	switch t {
	case AlignmentTypeCE, AlignmentTypeTMAlign, AlignmentTypeFatcat:
		return true
	default:
		return false
	}
}

// String returns a short name for the alignment type.
func (t AlignmentTypeID) String() string {
	switch t {
	case AlignmentTypeCE:
		return "ce"
	case AlignmentTypeTMAlign:
		return "tm-align"
	case AlignmentTypeFatcat:
		return "fatcat"
	default:
		return "unknown"
	}
}

// Metric names reported by the comparison capabilities. Each alignment
// type reports only its own names; the merger dispatches them into the
// matching MergedRecord fields.
const (
	MetricCERMS         = "ce_rms"
	MetricTMRMS         = "tm_rms"
	MetricTMSeqID       = "tm_seq_id"
	MetricTMScoreChain1 = "tm_score_chain_1"
	MetricTMScoreChain2 = "tm_score_chain_2"
	MetricFCRMS         = "fc_rms"
	MetricFCIdentity    = "fc_identity"
	MetricFCSimilarity  = "fc_similarity"
	MetricFCScore       = "fc_score"
	MetricFCAlignLen    = "fc_align_len"
)

// AlignmentMetrics maps metric names to values, as returned by one
// comparison capability for one pair.
type AlignmentMetrics map[string]float64

// PairKey is the canonical identity of an unordered pair of subcluster
// entries: the smaller id first. Using an ordered tuple as the map key
// avoids depending on an unordered-set abstraction.
type PairKey struct {
	// Lo is the smaller entry id.
	Lo int64

	// Hi is the larger entry id.
	Hi int64
}

// NewPairKey builds the canonical key for two entry ids, in either order.
func NewPairKey(a, b int64) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{Lo: a, Hi: b}
}

// AlignmentGroup is the persisted record of one unordered pair of
// representative entries under comparison. A group has exactly two
// member entries, and two entries share at most one group.
type AlignmentGroup struct {
	// ID is the group's database identifier.
	ID int64

	// CreatedAt is when the group was first persisted.
	CreatedAt time.Time
}

// AlignmentGroupEntry is the membership edge between an AlignmentGroup
// and a SubclusterEntry. Exactly two exist per group.
type AlignmentGroupEntry struct {
	// ID is the edge's database identifier.
	ID int64

	// AlignmentGroupID is the owning group.
	AlignmentGroupID int64

	// SubclusterEntryID is the member entry.
	SubclusterEntryID int64
}

// AlignmentResult holds the union of metric fields across all
// algorithm types for one group. Each algorithm populates only its own
// fields; the rest stay nil. At most one result exists per group, and
// an existing result is never overwritten.
type AlignmentResult struct {
	// ID is the result's database identifier.
	ID int64

	// AlignmentGroupID is the owning group.
	AlignmentGroupID int64

	CERMS         *float64
	TMRMS         *float64
	TMSeqID       *float64
	TMScoreChain1 *float64
	TMScoreChain2 *float64
	FCRMS         *float64
	FCIdentity    *float64
	FCSimilarity  *float64
	FCScore       *float64
	FCAlignLen    *float64

	// CreatedAt is when the result was persisted.
	CreatedAt time.Time
}

// MergedRecord is the per-pair union of metric outputs across all
// algorithm types run for that pair in one batch, ready for storage.
type MergedRecord struct {
	// ClusterID is the cluster both entries belong to.
	ClusterID int64

	// Entry1ID and Entry2ID are the pair's member entries.
	Entry1ID int64
	Entry2ID int64

	CERMS         *float64
	TMRMS         *float64
	TMSeqID       *float64
	TMScoreChain1 *float64
	TMScoreChain2 *float64
	FCRMS         *float64
	FCIdentity    *float64
	FCSimilarity  *float64
	FCScore       *float64
	FCAlignLen    *float64
}

// Key returns the canonical pair key for the record.
func (m *MergedRecord) Key() PairKey {
	return NewPairKey(m.Entry1ID, m.Entry2ID)
}

// Apply writes one algorithm's metric subset into the record. Dispatch
// is strictly by type id: each type owns a disjoint field subset, other
// fields are untouched. Metric names the type does not own are ignored;
// names absent from the map leave their field nil. Re-applying the same
// type is last-value-wins.
func (m *MergedRecord) Apply(typeID AlignmentTypeID, metrics AlignmentMetrics) {
	switch typeID {
	case AlignmentTypeCE:
		m.CERMS = metricValue(metrics, MetricCERMS)
	case AlignmentTypeTMAlign:
		m.TMRMS = metricValue(metrics, MetricTMRMS)
		m.TMSeqID = metricValue(metrics, MetricTMSeqID)
		m.TMScoreChain1 = metricValue(metrics, MetricTMScoreChain1)
		m.TMScoreChain2 = metricValue(metrics, MetricTMScoreChain2)
	case AlignmentTypeFatcat:
		m.FCRMS = metricValue(metrics, MetricFCRMS)
		m.FCIdentity = metricValue(metrics, MetricFCIdentity)
		m.FCSimilarity = metricValue(metrics, MetricFCSimilarity)
		m.FCScore = metricValue(metrics, MetricFCScore)
		m.FCAlignLen = metricValue(metrics, MetricFCAlignLen)
	}
}

// metricValue extracts one named metric as a nullable field value.
func metricValue(metrics AlignmentMetrics, name string) *float64 {
	v, ok := metrics[name]
	if !ok {
		return nil
	}
	return &v
}

// StoreStats summarises one idempotent store batch.
type StoreStats struct {
	// Inserted counts newly persisted results.
	Inserted int

	// SkippedExisting counts records whose group already had a result.
	SkippedExisting int

	// SkippedMissing counts records referencing unresolvable entries.
	SkippedMissing int
}
