package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var enqueueCmd = &cobra.Command{
	Use:   "enqueue",
	Short: "Publish alignment tasks for clusters with pending pairs",
	Long: `Resolves which clusters still have representative entry pairs without
a stored comparison result and publishes one task per cluster to the
durable queue, where a running worker picks them up.`,
	RunE: runEnqueue,
}

func init() {
	rootCmd.AddCommand(enqueueCmd)
}

func runEnqueue(cmd *cobra.Command, _ []string) error {
	if workEnqueuer == nil {
		return errors.New("enqueuer service not configured")
	}

	report, err := workEnqueuer.Enqueue(context.Background())
	if err != nil {
		return fmt.Errorf("enqueue failed: %w", err)
	}

	if report.TasksPublished == 0 {
		cmd.Println("No pending clusters, nothing to enqueue.")
		return nil
	}

	cmd.Printf("Published %d task(s) covering %d representative entries.\n",
		report.TasksPublished, report.EntriesPublished)
	if report.ClustersSkipped > 0 {
		cmd.Printf("Skipped %d cluster(s) that shrank below two representatives.\n",
			report.ClustersSkipped)
	}
	return nil
}
