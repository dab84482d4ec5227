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

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the recurring enqueue scheduler with an in-process worker",
	Long: `Starts the background scheduler, which periodically re-resolves pending
clusters and publishes their tasks, alongside a worker that processes
them. Runs until interrupted.`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	if schedService == nil || queueWorker == nil {
		return errors.New("scheduler services not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Println("Scheduler started.")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return queueWorker.Run(gctx)
	})
	g.Go(func() error {
		return schedService.Start(gctx)
	})

	err := g.Wait()
	if stopErr := schedService.Stop(); stopErr != nil {
		return fmt.Errorf("stopping scheduler: %w", stopErr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("scheduler failed: %w", err)
	}

	cmd.Println("Scheduler stopped.")
	return nil
}
