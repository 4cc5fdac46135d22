package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GusBusDraws/aps-directional/internal/history"
	"github.com/GusBusDraws/aps-directional/internal/logging"
	"github.com/GusBusDraws/aps-directional/internal/services"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent stitch and GIF renders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Render history is disabled in the configuration.")
				return nil
			}

			logger := ctx.loggerFor(cmd.Context())
			store, err := history.Open(cfg)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "history", "open store", "", err)
			}
			defer store.Close()
			logger.Debug("history store opened", logging.String("path", store.Path()))

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "history", "list", "", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No renders recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				status := string(rec.Status)
				if rec.Status == history.StatusFailed && rec.ErrorMessage != "" {
					status = fmt.Sprintf("failed: %s", rec.ErrorMessage)
				}
				rows = append(rows, []string{
					rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					string(rec.Kind),
					rec.SourceDir,
					rec.Output,
					strconv.Itoa(rec.FrameCount),
					strconv.Itoa(rec.FPS),
					status,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"When", "Kind", "Source", "Output", "Frames", "FPS", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records to show (0 for all)")
	return cmd
}
