package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Enqueue pending work and process it to completion",
	Long: `Single-shot pipeline pass: resolves pending clusters, publishes their
tasks and processes them in-process until the queue drains.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	if runEnqueuer == nil || runWorker == nil || runQueue == nil {
		return errors.New("pipeline services not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The worker starts first so the enqueuer never blocks on a full
	// queue.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runWorker.Run(gctx)
	})

	report, err := runEnqueuer.Enqueue(gctx)
	if err != nil {
		runQueue.Close() //nolint:errcheck // shutting down anyway
		_ = g.Wait()
		return fmt.Errorf("enqueue failed: %w", err)
	}

	// Closing the queue lets the worker drain and exit.
	if err := runQueue.Close(); err != nil {
		return fmt.Errorf("closing queue: %w", err)
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("worker failed: %w", err)
	}

	if report.TasksPublished == 0 {
		cmd.Println("No pending clusters, nothing to do.")
		return nil
	}
	cmd.Printf("Processed %d task(s) covering %d representative entries.\n",
		report.TasksPublished, report.EntriesPublished)
	return nil
}
