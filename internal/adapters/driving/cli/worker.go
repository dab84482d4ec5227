package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume and process published alignment tasks",
	Long: `Runs the alignment worker: tasks are consumed from the durable queue,
every unordered pair in a task is aligned with each configured
algorithm, and the merged results are stored. Tasks published by
separate enqueue runs are picked up as they arrive; stops on
interrupt.`,
	RunE: runWorkerCmd,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorkerCmd(cmd *cobra.Command, _ []string) error {
	if queueWorker == nil {
		return errors.New("worker service not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Println("Worker started, waiting for tasks.")
	if err := queueWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("worker failed: %w", err)
	}

	cmd.Println("Worker stopped.")
	return nil
}
