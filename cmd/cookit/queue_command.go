package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cookit/internal/api"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect the analysis queue",
	}
	queueCmd.AddCommand(newQueueListCommand(ctx))
	return queueCmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var statusFilters []string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queued analysis jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listing, err := ctx.client().Queue(cmd.Context(), statusFilters...)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, listing)
			}

			out := cmd.OutOrStdout()
			if len(listing.Jobs) == 0 {
				fmt.Fprintln(out, "Queue is empty")
				return nil
			}
			fmt.Fprintln(out, renderQueueTable(listing.Jobs))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&statusFilters, "status", nil, "Filter by queue status (repeatable)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

func renderQueueTable(jobs []api.JobView) string {
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		detail := job.Error
		if detail == "" {
			detail = job.SourceURL
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", job.ID),
			job.VideoID,
			job.Platform,
			job.Status,
			job.CreatedAt.Local().Format(time.DateTime),
			truncate(detail, 60),
		})
	}
	return renderTable(
		[]string{"ID", "Video", "Platform", "Status", "Created", "Detail"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}

func truncate(value string, limit int) string {
	if limit <= 3 || len(value) <= limit {
		return value
	}
	return value[:limit-3] + "..."
}
