package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metamorphic-search/structalign/internal/core/domain"
)

func TestMergeOutcomes_MultipleTypesOnePair(t *testing.T) {
	outcomes := []pairOutcome{
		{
			entry1ID: 1, entry2ID: 2,
			typeID:  domain.AlignmentTypeCE,
			metrics: domain.AlignmentMetrics{domain.MetricCERMS: 1.2},
		},
		{
			entry1ID: 1, entry2ID: 2,
			typeID: domain.AlignmentTypeTMAlign,
			metrics: domain.AlignmentMetrics{
				domain.MetricTMRMS:         0.8,
				domain.MetricTMSeqID:       0.5,
				domain.MetricTMScoreChain1: 0.9,
				domain.MetricTMScoreChain2: 0.95,
			},
		},
	}

	records := mergeOutcomes(100, outcomes)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, int64(100), rec.ClusterID)
	assert.Equal(t, 1.2, *rec.CERMS)
	assert.Equal(t, 0.8, *rec.TMRMS)
	assert.Equal(t, 0.5, *rec.TMSeqID)
	assert.Equal(t, 0.9, *rec.TMScoreChain1)
	assert.Equal(t, 0.95, *rec.TMScoreChain2)
	assert.Nil(t, rec.FCRMS)
}

func TestMergeOutcomes_NoCrossPairContamination(t *testing.T) {
	outcomes := []pairOutcome{
		{
			entry1ID: 1, entry2ID: 2,
			typeID:  domain.AlignmentTypeCE,
			metrics: domain.AlignmentMetrics{domain.MetricCERMS: 1.2},
		},
		{
			entry1ID: 1, entry2ID: 3,
			typeID:  domain.AlignmentTypeTMAlign,
			metrics: domain.AlignmentMetrics{domain.MetricTMRMS: 3.3},
		},
	}

	records := mergeOutcomes(100, outcomes)
	require.Len(t, records, 2)

	byKey := make(map[domain.PairKey]domain.MergedRecord)
	for _, r := range records {
		byKey[r.Key()] = r
	}

	first := byKey[domain.NewPairKey(1, 2)]
	assert.Equal(t, 1.2, *first.CERMS)
	assert.Nil(t, first.TMRMS)

	second := byKey[domain.NewPairKey(1, 3)]
	assert.Equal(t, 3.3, *second.TMRMS)
	assert.Nil(t, second.CERMS)
}

func TestMergeOutcomes_OrderIndependentKey(t *testing.T) {
	// The same pair reported with swapped entry order merges into one
	// record.
	outcomes := []pairOutcome{
		{
			entry1ID: 2, entry2ID: 1,
			typeID:  domain.AlignmentTypeCE,
			metrics: domain.AlignmentMetrics{domain.MetricCERMS: 1.2},
		},
		{
			entry1ID: 1, entry2ID: 2,
			typeID:  domain.AlignmentTypeFatcat,
			metrics: domain.AlignmentMetrics{domain.MetricFCScore: 200},
		},
	}

	records := mergeOutcomes(100, outcomes)
	require.Len(t, records, 1)
	assert.Equal(t, 1.2, *records[0].CERMS)
	assert.Equal(t, float64(200), *records[0].FCScore)
}

func TestMergeOutcomes_DuplicateTypeLastValueWins(t *testing.T) {
	outcomes := []pairOutcome{
		{
			entry1ID: 1, entry2ID: 2,
			typeID:  domain.AlignmentTypeCE,
			metrics: domain.AlignmentMetrics{domain.MetricCERMS: 1.0},
		},
		{
			entry1ID: 1, entry2ID: 2,
			typeID:  domain.AlignmentTypeCE,
			metrics: domain.AlignmentMetrics{domain.MetricCERMS: 2.0},
		},
	}

	records := mergeOutcomes(100, outcomes)
	require.Len(t, records, 1)
	assert.Equal(t, 2.0, *records[0].CERMS)
}

func TestMergeOutcomes_Empty(t *testing.T) {
	assert.Empty(t, mergeOutcomes(100, nil))
}
