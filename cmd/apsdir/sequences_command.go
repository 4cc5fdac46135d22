package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GusBusDraws/aps-directional/internal/config"
	"github.com/GusBusDraws/aps-directional/internal/logging"
	"github.com/GusBusDraws/aps-directional/internal/sequence"
	"github.com/GusBusDraws/aps-directional/internal/services"
)

func newSequencesCommand(ctx *commandContext) *cobra.Command {
	var extFlag string

	cmd := &cobra.Command{
		Use:   "sequences <directory>",
		Short: "List the numbered image sequences in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.loggerFor(cmd.Context())

			dir, err := config.ExpandPath(args[0])
			if err != nil {
				return services.Wrap(services.ErrValidation, "sequences", "resolve directory", "", err)
			}

			var exts []string
			if extFlag != "" {
				exts = []string{extFlag}
			}
			sequences, err := sequence.Scan(dir, exts)
			if err != nil {
				return services.Wrap(services.ErrValidation, "sequences", "scan", "", err)
			}
			logger.Debug("scanned directory",
				logging.String("dir", dir),
				logging.Int("sequences", len(sequences)))

			if len(sequences) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No numbered image sequences found in %s\n", dir)
				return nil
			}

			rows := make([][]string, 0, len(sequences))
			for _, seq := range sequences {
				rows = append(rows, []string{
					seq.Name(),
					filepath.Base(seq.Pattern()),
					strconv.Itoa(seq.Count()),
					seq.DescribeRange(),
					strconv.Itoa(len(seq.Gaps())),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Sequence", "Pattern", "Frames", "Range", "Gaps"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&extFlag, "ext", "", "Only list sequences with this file extension")
	return cmd
}
