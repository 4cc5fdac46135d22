package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GusBusDraws/aps-directional/internal/deps"
	"github.com/GusBusDraws/aps-directional/internal/services"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check the external binaries the CLI depends on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))

			rows := make([][]string, 0, len(statuses))
			var missing []string
			for _, status := range statuses {
				state := "ok"
				detail := status.Description
				if !status.Available {
					state = "missing"
					if status.Optional {
						state = "missing (optional)"
					} else {
						missing = append(missing, fmt.Sprintf("%s: %s", status.Name, status.Detail))
					}
					detail = status.Detail
				}
				rows = append(rows, []string{status.Name, status.Command, state, detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Dependency", "Command", "Status", "Notes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))

			if len(missing) > 0 {
				return services.Wrap(services.ErrConfiguration, "deps", "check",
					fmt.Sprintf("%d required binaries missing", len(missing)), nil)
			}
			return nil
		},
	}
}
