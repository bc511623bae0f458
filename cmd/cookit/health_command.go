package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Show daemon, stage, and tool readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := ctx.client().Health(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, health)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Daemon", colorize) {
				fmt.Fprintln(out, line)
			}
			kind := statusError
			message := "not running"
			if health.Running {
				kind = statusOK
				message = "running"
			}
			fmt.Fprintln(out, renderStatusLine("daemon", kind, message, colorize))
			fmt.Fprintln(out, renderStatusLine("queue db", statusInfo, health.QueueDBPath, colorize))

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Stages", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, stageHealth := range health.Stages {
				kind := statusOK
				if !stageHealth.Ready {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(stageHealth.Name, kind, stageHealth.Detail, colorize))
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("External tools", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, dep := range health.Dependencies {
				kind := statusOK
				message := dep.Description
				if !dep.Available {
					message = dep.Detail
					if dep.Optional {
						kind = statusWarn
					} else {
						kind = statusError
					}
				}
				fmt.Fprintln(out, renderStatusLine(dep.Name, kind, message, colorize))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}
