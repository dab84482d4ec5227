// Command structalign is the composition root: it wires the SQLite
// store, the aligner adapters, the task queue and the core services,
// then hands control to the CLI adapter.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/metamorphic-search/structalign/internal/adapters/driven/aligners/ce"
	"github.com/metamorphic-search/structalign/internal/adapters/driven/aligners/fatcat"
	"github.com/metamorphic-search/structalign/internal/adapters/driven/aligners/tmalign"
	configfile "github.com/metamorphic-search/structalign/internal/adapters/driven/config/file"
	"github.com/metamorphic-search/structalign/internal/adapters/driven/queue/channel"
	"github.com/metamorphic-search/structalign/internal/adapters/driven/storage/sqlite"
	"github.com/metamorphic-search/structalign/internal/adapters/driving/cli"
	"github.com/metamorphic-search/structalign/internal/core/domain"
	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
	"github.com/metamorphic-search/structalign/internal/core/services"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir, dataDir := cli.Paths(os.Args[1:])

	config, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("initialising config store: %w", err)
	}

	if dataDir == "" {
		dataDir = config.GetString("storage.data_dir")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("initialising storage: %w", err)
	}
	defer store.Close()

	alignConfig := loadAlignmentConfig(config)
	registry, err := buildRegistry(config, alignConfig)
	if err != nil {
		return fmt.Errorf("initialising aligners: %w", err)
	}

	catalog := store.CatalogStore()
	alignments := store.AlignmentStore()

	resolver := services.NewPendingResolver(catalog, alignments)
	processor, err := services.NewProcessor(registry, alignments, alignConfig)
	if err != nil {
		return fmt.Errorf("initialising processor: %w", err)
	}
	status := services.NewStatusService(resolver, catalog, alignments)

	// The durable queue backs enqueue, worker and schedule, so tasks
	// published in one process are consumed in another.
	queue := store.TaskQueue()
	enqueuer := services.NewEnqueuer(resolver, catalog, queue)
	worker := services.NewQueueWorker(queue, processor)
	scheduler := services.NewScheduler(loadSchedulerConfig(config), store.SchedulerStore(), enqueuer)

	// The single-shot run command keeps everything in-process.
	runQueue := channel.NewQueue(config.GetInt("queue.capacity"))
	runEnqueuer := services.NewEnqueuer(resolver, catalog, runQueue)
	runWorker := services.NewQueueWorker(runQueue, processor)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Enqueuer:    enqueuer,
		Worker:      worker,
		Status:      status,
		Scheduler:   scheduler,
		RunEnqueuer: runEnqueuer,
		RunWorker:   runWorker,
		RunQueue:    runQueue,
	})

	return cli.Execute()
}

// loadAlignmentConfig builds the run configuration from the config
// store, falling back to defaults for anything unset.
func loadAlignmentConfig(config driven.ConfigStore) domain.AlignmentConfig {
	cfg := domain.DefaultAlignmentConfig()

	if types := config.GetIntSlice("alignment.types"); len(types) > 0 {
		cfg.Types = cfg.Types[:0]
		for _, t := range types {
			cfg.Types = append(cfg.Types, domain.AlignmentTypeID(t))
		}
	}
	if workers := config.GetInt("alignment.workers"); workers > 0 {
		cfg.Workers = workers
	}
	if rate := config.GetFloat("alignment.rate_per_second"); rate > 0 {
		cfg.RatePerSecond = rate
	}
	if burst := config.GetInt("alignment.burst"); burst > 0 {
		cfg.Burst = burst
	}

	return cfg
}

// loadSchedulerConfig builds the scheduler configuration from the
// config store, falling back to defaults for anything unset.
func loadSchedulerConfig(config driven.ConfigStore) domain.SchedulerConfig {
	cfg := domain.DefaultSchedulerConfig()

	if _, ok := config.Get("scheduler.enabled"); ok {
		cfg.Enabled = config.GetBool("scheduler.enabled")
	}
	taskCfg := cfg.TaskConfigs[domain.TaskIDAlignmentEnqueue]
	if _, ok := config.Get("scheduler.enqueue.enabled"); ok {
		taskCfg.Enabled = config.GetBool("scheduler.enqueue.enabled")
	}
	if minutes := config.GetInt("scheduler.enqueue.interval_minutes"); minutes > 0 {
		taskCfg.Interval = time.Duration(minutes) * time.Minute
	}
	cfg.TaskConfigs[domain.TaskIDAlignmentEnqueue] = taskCfg

	return cfg
}

// buildRegistry constructs adapters for the active alignment types.
// Binaries and timeouts come from the config store when set.
func buildRegistry(config driven.ConfigStore, cfg domain.AlignmentConfig) (*services.AlignerRegistry, error) {
	var aligners []driven.Aligner
	for _, t := range cfg.Types {
		switch t {
		case domain.AlignmentTypeCE:
			aligners = append(aligners, ce.New(ce.Config{
				Binary:  config.GetString("aligners.ce.binary"),
				Timeout: alignerTimeout(config, "aligners.ce.timeout_seconds"),
			}))
		case domain.AlignmentTypeTMAlign:
			aligners = append(aligners, tmalign.New(tmalign.Config{
				Binary:  config.GetString("aligners.tmalign.binary"),
				Timeout: alignerTimeout(config, "aligners.tmalign.timeout_seconds"),
			}))
		case domain.AlignmentTypeFatcat:
			aligners = append(aligners, fatcat.New(fatcat.Config{
				Binary:  config.GetString("aligners.fatcat.binary"),
				Timeout: alignerTimeout(config, "aligners.fatcat.timeout_seconds"),
			}))
		}
	}

	return services.NewAlignerRegistry(aligners...)
}

// alignerTimeout reads an adapter timeout, zero meaning adapter default.
func alignerTimeout(config driven.ConfigStore, key string) time.Duration {
	seconds := config.GetInt(key)
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
