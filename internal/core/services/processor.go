package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/metamorphic-search/structalign/internal/core/domain"
	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
	"github.com/metamorphic-search/structalign/internal/core/ports/driving"
	"github.com/metamorphic-search/structalign/internal/logger"
)

// Ensure Processor implements the interface.
var _ driving.TaskProcessor = (*Processor)(nil)

// Processor executes alignment tasks: for one cluster it runs every
// unordered pair of entries through every active aligner, merges the
// outcomes per pair, and hands the merged records to the store.
//
// Pair×algorithm invocations run concurrently under a bounded group.
// Each invocation reads only its two input files and appends its
// outcome under a lock; merging and storing happen strictly after all
// invocations finish.
type Processor struct {
	aligners []driven.Aligner
	store    driven.AlignmentStore
	workers  int
	limiter  *rate.Limiter

	// Status tracking
	mu     sync.RWMutex
	active map[int64]*driving.ProcessStatus
}

// NewProcessor creates a task processor. The active aligners are
// resolved from the registry once, here; a configured type with no
// registered aligner is a construction error, not a runtime surprise.
func NewProcessor(registry *AlignerRegistry, store driven.AlignmentStore, cfg domain.AlignmentConfig) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("alignment config: %w", err)
	}

	aligners := make([]driven.Aligner, 0, len(cfg.Types))
	for _, t := range cfg.Types {
		a, err := registry.Get(t)
		if err != nil {
			return nil, err
		}
		aligners = append(aligners, a)
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &Processor{
		aligners: aligners,
		store:    store,
		workers:  cfg.Workers,
		limiter:  limiter,
		active:   make(map[int64]*driving.ProcessStatus),
	}, nil
}

// Process runs one task to completion. Algorithm failures and explicit
// no-results are logged and excluded from the merge; they never abort
// sibling pairs. Only an invalid descriptor or a store failure is
// returned, both at cluster granularity.
func (p *Processor) Process(ctx context.Context, task domain.AlignmentTask) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("cluster %d: %w", task.ClusterID, err)
	}

	logger.Info("Processing cluster %d with %d entries.", task.ClusterID, len(task.Entries))

	p.setStatus(task.ClusterID, &driving.ProcessStatus{
		ClusterID:  task.ClusterID,
		PairsTotal: task.PairCount(),
	})
	defer p.clearStatus(task.ClusterID)

	outcomes, err := p.alignAll(ctx, task)
	if err != nil {
		return err
	}

	records := mergeOutcomes(task.ClusterID, outcomes)
	if len(records) == 0 {
		logger.Warn("No alignments were stored for cluster %d.", task.ClusterID)
		return nil
	}

	stats, err := p.store.StoreBatch(ctx, records)
	if err != nil {
		return fmt.Errorf("storing results for cluster %d: %w", task.ClusterID, err)
	}

	logger.Info("Stored %d new alignment results for cluster %d (%d already present, %d with missing entries).",
		stats.Inserted, task.ClusterID, stats.SkippedExisting, stats.SkippedMissing)
	return nil
}

// alignAll fans the task's pair×algorithm attempts out over the
// bounded worker group and collects the successful outcomes. Only
// context cancellation propagates as an error.
func (p *Processor) alignAll(ctx context.Context, task domain.AlignmentTask) ([]pairOutcome, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	var mu sync.Mutex
	var outcomes []pairOutcome

	for i := 0; i < len(task.Entries); i++ {
		for j := i + 1; j < len(task.Entries); j++ {
			e1, e2 := task.Entries[i], task.Entries[j]
			for _, aligner := range p.aligners {
				aligner := aligner
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					metrics, err := p.align(gctx, aligner, e1, e2)
					if err != nil {
						if gctx.Err() != nil {
							return gctx.Err()
						}
						logger.Warn("No result for pair (%d, %d) with type %s: %v",
							e1.EntryID, e2.EntryID, aligner.Type(), err)
						p.recordAttempt(task.ClusterID, false)
						return nil
					}

					mu.Lock()
					outcomes = append(outcomes, pairOutcome{
						entry1ID: e1.EntryID,
						entry2ID: e2.EntryID,
						typeID:   aligner.Type(),
						metrics:  metrics,
					})
					mu.Unlock()
					p.recordAttempt(task.ClusterID, true)
					return nil
				})
			}
		}
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aligning cluster %d: %w", task.ClusterID, err)
	}
	return outcomes, nil
}

// align runs one pair×algorithm invocation, throttled if a rate limit
// is configured.
func (p *Processor) align(ctx context.Context, aligner driven.Aligner, e1, e2 domain.TaskEntry) (domain.AlignmentMetrics, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return aligner.Align(ctx, e1.FilePath, e2.FilePath)
}

// Status returns progress for an in-flight cluster, or nil.
func (p *Processor) Status(clusterID int64) *driving.ProcessStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	status, ok := p.active[clusterID]
	if !ok {
		return nil
	}
	copied := *status
	return &copied
}

func (p *Processor) setStatus(clusterID int64, status *driving.ProcessStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active[clusterID] = status
}

func (p *Processor) clearStatus(clusterID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.active, clusterID)
}

func (p *Processor) recordAttempt(clusterID int64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	status, found := p.active[clusterID]
	if !found {
		return
	}
	status.AttemptsDone++
	if !ok {
		status.AttemptsFailed++
	}
}
