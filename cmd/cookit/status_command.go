package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cookit/internal/api"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status <video-id|video-url>",
		Short: "Show the state of a submitted analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := resolveVideoID(args[0])
			if err != nil {
				return err
			}

			status, err := ctx.client().Status(cmd.Context(), videoID)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, status)
			}

			out := cmd.OutOrStdout()
			if !status.Success {
				return fmt.Errorf("no analysis found for %s", videoID)
			}
			switch status.Status {
			case api.StatusCompleted:
				printRecipe(out, status.Recipe)
			case api.StatusError:
				fmt.Fprintf(out, "Job %s failed: %s\n", videoID, status.Message)
			default:
				fmt.Fprintf(out, "Job %s is %s\n", videoID, status.Status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}
