// Package tmalign provides a pairwise structural aligner that shells
// out to the TM-align binary and parses its plain-text report.
package tmalign

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
	DefaultBinary  = "TMalign"
	DefaultTimeout = 5 * time.Minute
)

// Config holds configuration for the TM-align adapter.
type Config struct {
	// Binary is the TM-align executable (default: TMalign).
	Binary string

	// Timeout bounds a single pairwise run (default: 5m).
	Timeout time.Duration
}

// Aligner runs TM-align for one pair of structure files.
type Aligner struct {
	binary  string
	timeout time.Duration
}

// New creates a new TM-align adapter.
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
	return domain.AlignmentTypeTMAlign
}

// Align runs TM-align on the two structure files and returns its
// metric subset.
func (a *Aligner) Align(ctx context.Context, pathA, pathB string) (domain.AlignmentMetrics, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, a.binary, pathA, pathB).Output()
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", a.binary, err)
	}

	return parseOutput(string(out))
}

// Report line formats, per TM-align's standard output.
var (
	alignedRe = regexp.MustCompile(`Aligned length=\s*\d+,\s*RMSD=\s*([0-9.]+),\s*Seq_ID=[^=]*=\s*([0-9.]+)`)
	chain1Re  = regexp.MustCompile(`TM-score=\s*([0-9.]+)\s*\(if normalized by length of Chain_1`)
	chain2Re  = regexp.MustCompile(`TM-score=\s*([0-9.]+)\s*\(if normalized by length of Chain_2`)
)

// parseOutput extracts RMSD, sequence identity and per-chain TM-scores
// from a TM-align report. Returns domain.ErrNoAlignment when the
// report carries no alignment summary.
func parseOutput(out string) (domain.AlignmentMetrics, error) {
	aligned := alignedRe.FindStringSubmatch(out)
	if aligned == nil {
		return nil, domain.ErrNoAlignment
	}

	metrics := domain.AlignmentMetrics{
		domain.MetricTMRMS:   mustFloat(aligned[1]),
		domain.MetricTMSeqID: mustFloat(aligned[2]),
	}
	if m := chain1Re.FindStringSubmatch(out); m != nil {
		metrics[domain.MetricTMScoreChain1] = mustFloat(m[1])
	}
	if m := chain2Re.FindStringSubmatch(out); m != nil {
		metrics[domain.MetricTMScoreChain2] = mustFloat(m[1])
	}

	return metrics, nil
}

// mustFloat parses a string the extraction regexes already validated.
func mustFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
