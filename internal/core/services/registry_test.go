package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metamorphic-search/structalign/internal/core/domain"
)

func TestAlignerRegistry_Get(t *testing.T) {
	ce := &mockAligner{typeID: domain.AlignmentTypeCE}
	tm := &mockAligner{typeID: domain.AlignmentTypeTMAlign}

	registry, err := NewAlignerRegistry(ce, tm)
	require.NoError(t, err)

	got, err := registry.Get(domain.AlignmentTypeCE)
	require.NoError(t, err)
	assert.Same(t, ce, got.(*mockAligner))

	_, err = registry.Get(domain.AlignmentTypeFatcat)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestAlignerRegistry_DuplicateType(t *testing.T) {
	_, err := NewAlignerRegistry(
		&mockAligner{typeID: domain.AlignmentTypeCE},
		&mockAligner{typeID: domain.AlignmentTypeCE},
	)
	assert.Error(t, err)
}

func TestAlignerRegistry_InvalidType(t *testing.T) {
	_, err := NewAlignerRegistry(&mockAligner{typeID: 99})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestAlignerRegistry_TypesSorted(t *testing.T) {
	registry, err := NewAlignerRegistry(
		&mockAligner{typeID: domain.AlignmentTypeFatcat},
		&mockAligner{typeID: domain.AlignmentTypeCE},
	)
	require.NoError(t, err)

	assert.Equal(t,
		[]domain.AlignmentTypeID{domain.AlignmentTypeCE, domain.AlignmentTypeFatcat},
		registry.Types())
}

func TestAlignerRegistry_Empty(t *testing.T) {
	registry, err := NewAlignerRegistry()
	require.NoError(t, err)
	assert.Empty(t, registry.Types())
}
