package services

import (
	"fmt"
	"sort"

	"github.com/metamorphic-search/structalign/internal/core/domain"
	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
)

// AlignerRegistry maps alignment type ids to their comparison
// capabilities. The mapping is fixed at construction: callers resolve
// aligners once at initialisation, never per invocation.
type AlignerRegistry struct {
	aligners map[domain.AlignmentTypeID]driven.Aligner
}

// NewAlignerRegistry creates a registry from the given aligners.
// Each aligner's type must be valid and registered at most once.
func NewAlignerRegistry(aligners ...driven.Aligner) (*AlignerRegistry, error) {
	m := make(map[domain.AlignmentTypeID]driven.Aligner, len(aligners))
	for _, a := range aligners {
		t := a.Type()
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: %d", domain.ErrUnsupportedType, t)
		}
		if _, dup := m[t]; dup {
			return nil, fmt.Errorf("duplicate aligner for type %s", t)
		}
		m[t] = a
	}
	return &AlignerRegistry{aligners: m}, nil
}

// Get returns the aligner for a type id.
func (r *AlignerRegistry) Get(t domain.AlignmentTypeID) (driven.Aligner, error) {
	a, ok := r.aligners[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, t)
	}
	return a, nil
}

// Types returns the registered type ids in ascending order.
func (r *AlignerRegistry) Types() []domain.AlignmentTypeID {
	types := make([]domain.AlignmentTypeID, 0, len(r.aligners))
	for t := range r.aligners {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
