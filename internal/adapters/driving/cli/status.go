package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog and alignment progress",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if statusReporter == nil {
		return errors.New("status service not configured")
	}

	status, err := statusReporter.Status(context.Background())
	if err != nil {
		return fmt.Errorf("reading status: %w", err)
	}

	cmd.Printf("Clusters:               %d\n", status.Clusters)
	cmd.Printf("Representative entries: %d\n", status.RepresentativeEntries)
	cmd.Printf("Completed pairs:        %d\n", status.CompletedPairs)
	if len(status.PendingClusters) == 0 {
		cmd.Println("Pending clusters:       none")
		return nil
	}

	cmd.Printf("Pending clusters:       %d\n", len(status.PendingClusters))
	for _, id := range status.PendingClusters {
		cmd.Printf("  - cluster %d\n", id)
	}
	return nil
}
