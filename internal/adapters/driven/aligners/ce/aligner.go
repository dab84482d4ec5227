// Package ce provides a pairwise structural aligner that shells out to
// a combinatorial-extension (CE) binary and parses its report.
package ce

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"github.com/metamorphic-search/structalign/internal/core/domain"
	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
)

// Ensure Aligner implements the interface.
var _ driven.Aligner = (*Aligner)(nil)

// Default configuration values.
const (
	DefaultBinary  = "runCE.sh"
	DefaultTimeout = 5 * time.Minute
)

// Config holds configuration for the CE adapter.
type Config struct {
	// Binary is the CE executable (default: runCE.sh).
	Binary string

	// Timeout bounds a single pairwise run (default: 5m).
	Timeout time.Duration
}

// Aligner runs CE for one pair of structure files.
type Aligner struct {
	binary  string
	timeout time.Duration
}

// New creates a new CE adapter.
func New(cfg Config) *Aligner {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Aligner{binary: cfg.Binary, timeout: cfg.Timeout}
}

// Type returns the alignment type this adapter produces metrics for.
func (a *Aligner) Type() domain.AlignmentTypeID {
	return domain.AlignmentTypeCE
}

// Align runs CE on the two structure files and returns its metric
// subset.
func (a *Aligner) Align(ctx context.Context, pathA, pathB string) (domain.AlignmentMetrics, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, a.binary, "-file1", pathA, "-file2", pathB).Output()
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", a.binary, err)
	}

	return parseOutput(string(out))
}

// rmsdRe matches CE's alignment summary line, e.g. "Rmsd = 2.35A".
var rmsdRe = regexp.MustCompile(`Rmsd\s*=\s*([0-9.]+)A`)

// parseOutput extracts the RMSD from a CE report. Returns
// domain.ErrNoAlignment when the report carries no alignment summary.
func parseOutput(out string) (domain.AlignmentMetrics, error) {
	m := rmsdRe.FindStringSubmatch(out)
	if m == nil {
		return nil, domain.ErrNoAlignment
	}

	rms, _ := strconv.ParseFloat(m[1], 64)
	return domain.AlignmentMetrics{domain.MetricCERMS: rms}, nil
}
