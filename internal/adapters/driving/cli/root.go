// Package cli provides the command-line driving adapter. Commands are
// thin: they parse flags, call the injected core services and print
// summaries. All wiring happens in the composition root.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/metamorphic-search/structalign/internal/core/ports/driven"
	"github.com/metamorphic-search/structalign/internal/core/ports/driving"
	"github.com/metamorphic-search/structalign/internal/logger"
)

// version is set by the composition root (build-time via ldflags).
var version = "dev"

// SchedulerService is the control surface the schedule command needs.
type SchedulerService interface {
	// Start blocks, running due tasks, until Stop or context cancel.
	Start(ctx context.Context) error

	// Stop shuts the scheduler down and waits for in-flight tasks.
	Stop() error
}

// Services injected before Execute. Commands nil-check what they use.
// The run command gets its own pipeline over an in-process queue; the
// other commands share the durable queue.
var (
	workEnqueuer   driving.WorkEnqueuer
	queueWorker    driving.Worker
	statusReporter driving.StatusReporter
	schedService   SchedulerService
	runEnqueuer    driving.WorkEnqueuer
	runWorker      driving.Worker
	runQueue       driven.TaskQueue
)

var (
	verbose   bool
	configDir string
	dataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "structalign",
	Short: "Pairwise structural alignment for clustered representatives",
	Long: `structalign resolves which representative entry pairs still lack a
structural comparison, enqueues one task per affected cluster, runs the
configured alignment algorithms over each pair and stores the merged
results idempotently.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "Config directory (default ~/.structalign)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "db", "", "Database directory (default ~/.structalign/data)")
}

// Paths pre-parses the --config and --db overrides from args. The
// composition root needs them before Execute, because stores are built
// ahead of command dispatch. Unknown flags are ignored here; cobra
// reports them properly during Execute.
func Paths(args []string) (config, db string) {
	fs := pflag.NewFlagSet("paths", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.StringVar(&config, "config", "", "")
	fs.StringVar(&db, "db", "", "")
	fs.BoolP("verbose", "v", false, "")
	_ = fs.Parse(args)
	return config, db
}

// Services bundles the core services the commands depend on.
// Enqueuer and Worker publish to and consume from the durable queue,
// so enqueue and worker interoperate across processes. The Run* trio
// is a second pipeline over an in-process queue for the single-shot
// run command.
type Services struct {
	Enqueuer    driving.WorkEnqueuer
	Worker      driving.Worker
	Status      driving.StatusReporter
	Scheduler   SchedulerService
	RunEnqueuer driving.WorkEnqueuer
	RunWorker   driving.Worker
	RunQueue    driven.TaskQueue
}

// SetServices injects the core services. Must be called before Execute.
func SetServices(s Services) {
	workEnqueuer = s.Enqueuer
	queueWorker = s.Worker
	statusReporter = s.Status
	schedService = s.Scheduler
	runEnqueuer = s.RunEnqueuer
	runWorker = s.RunWorker
	runQueue = s.RunQueue
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
