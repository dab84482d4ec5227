package domain

// AlignmentConfig selects which alignment types are active for a run
// and bounds the processor's concurrency.
type AlignmentConfig struct {
	// Types are the active alignment type ids. Only these are invoked
	// per pair; inactive types simply leave their fields unset.
	Types []AlignmentTypeID

	// Workers bounds concurrent pair×type invocations within one task.
	Workers int

	// RatePerSecond throttles aligner invocations across a worker.
	// Zero disables throttling.
	RatePerSecond float64

	// Burst is the throttle's burst size.
	Burst int
}

// DefaultAlignmentConfig returns sensible defaults: all known types
// active, modest parallelism, no throttle.
func DefaultAlignmentConfig() AlignmentConfig {
	return AlignmentConfig{
		Types:   []AlignmentTypeID{AlignmentTypeCE, AlignmentTypeTMAlign, AlignmentTypeFatcat},
		Workers: 4,
	}
}

// IsActive returns true if the given type is selected for this run.
func (c *AlignmentConfig) IsActive(t AlignmentTypeID) bool {
	for _, id := range c.Types {
		if id == t {
			return true
		}
	}
	return false
}

// Validate checks the configuration is usable.
func (c *AlignmentConfig) Validate() error {
	if len(c.Types) == 0 || c.Workers < 1 {
		return ErrInvalidInput
	}
	for _, t := range c.Types {
		if !t.IsValid() {
			return ErrUnsupportedType
		}
	}
	return nil
}
