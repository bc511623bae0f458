package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cookit/internal/api"
)

const waitPollInterval = 2 * time.Second

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var wait bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "analyze <video-url>",
		Short: "Submit a cooking video for recipe extraction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := ctx.client()
			resp, err := client.Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("analysis rejected: %s", resp.Message)
			}

			if resp.Status == api.StatusCompleted {
				return printAnalyzeResult(cmd, api.StatusResponse(resp), jsonOut)
			}
			if !wait {
				if jsonOut {
					return writeJSON(cmd, resp)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Analysis scheduled for %s\n", resp.VideoID)
				fmt.Fprintf(out, "Poll with: cookit status %s\n", resp.VideoID)
				return nil
			}

			final, err := waitForResult(cmd.Context(), client, resp.VideoID)
			if err != nil {
				return err
			}
			return printAnalyzeResult(cmd, final, jsonOut)
		},
	}

	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Block until the analysis finishes")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

// waitForResult polls the status endpoint until the job reaches a
// terminal state or the context ends.
func waitForResult(ctx context.Context, client *api.Client, videoID string) (api.StatusResponse, error) {
	ticker := time.NewTicker(waitPollInterval)
	defer ticker.Stop()

	for {
		status, err := client.Status(ctx, videoID)
		if err != nil {
			return api.StatusResponse{}, err
		}
		switch status.Status {
		case api.StatusCompleted, api.StatusError:
			return status, nil
		}

		select {
		case <-ctx.Done():
			return api.StatusResponse{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func printAnalyzeResult(cmd *cobra.Command, result api.StatusResponse, jsonOut bool) error {
	if jsonOut {
		return writeJSON(cmd, result)
	}
	out := cmd.OutOrStdout()
	switch result.Status {
	case api.StatusCompleted:
		printRecipe(out, result.Recipe)
		return nil
	case api.StatusError:
		return fmt.Errorf("analysis failed: %s", result.Message)
	default:
		fmt.Fprintf(out, "Job %s is %s\n", result.VideoID, result.Status)
		return nil
	}
}
