// Package fatcat provides a pairwise structural aligner that shells
// out to the FATCAT binary and parses its flexible-alignment report.
package fatcat

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
	DefaultBinary  = "FATCAT"
	DefaultTimeout = 5 * time.Minute
)

// Config holds configuration for the FATCAT adapter.
type Config struct {
	// Binary is the FATCAT executable (default: FATCAT).
	Binary string

	// Timeout bounds a single pairwise run (default: 5m).
	Timeout time.Duration
}

// Aligner runs FATCAT for one pair of structure files.
type Aligner struct {
	binary  string
	timeout time.Duration
}

// New creates a new FATCAT adapter.
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
	return domain.AlignmentTypeFatcat
}

// Align runs FATCAT on the two structure files and returns its metric
// subset.
func (a *Aligner) Align(ctx context.Context, pathA, pathB string) (domain.AlignmentMetrics, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, a.binary, "-p1", pathA, "-p2", pathB, "-q").Output()
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", a.binary, err)
	}

	return parseOutput(string(out))
}

// Report line formats, per FATCAT's standard output.
var (
	rmsdRe       = regexp.MustCompile(`opt-rmsd\s+([0-9.]+)`)
	identityRe   = regexp.MustCompile(`Identity\s+([0-9.]+)%`)
	similarityRe = regexp.MustCompile(`Similarity\s+([0-9.]+)%`)
	scoreRe      = regexp.MustCompile(`Score\s+([0-9.]+)`)
	alignLenRe   = regexp.MustCompile(`align-len\s+([0-9]+)`)
)

// parseOutput extracts RMSD, identity, similarity, score and alignment
// length from a FATCAT report. Returns domain.ErrNoAlignment when the
// report carries no optimised RMSD, which FATCAT always reports for a
// successful alignment.
func parseOutput(out string) (domain.AlignmentMetrics, error) {
	rmsd := rmsdRe.FindStringSubmatch(out)
	if rmsd == nil {
		return nil, domain.ErrNoAlignment
	}

	metrics := domain.AlignmentMetrics{
		domain.MetricFCRMS: mustFloat(rmsd[1]),
	}
	if m := identityRe.FindStringSubmatch(out); m != nil {
		metrics[domain.MetricFCIdentity] = mustFloat(m[1])
	}
	if m := similarityRe.FindStringSubmatch(out); m != nil {
		metrics[domain.MetricFCSimilarity] = mustFloat(m[1])
	}
	if m := scoreRe.FindStringSubmatch(out); m != nil {
		metrics[domain.MetricFCScore] = mustFloat(m[1])
	}
	if m := alignLenRe.FindStringSubmatch(out); m != nil {
		metrics[domain.MetricFCAlignLen] = mustFloat(m[1])
	}

	return metrics, nil
}

// mustFloat parses a string the extraction regexes already validated.
func mustFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
