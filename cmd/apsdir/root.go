package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/GusBusDraws/aps-directional/internal/services"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "apsdir",
		Short:         "Preview and stitch numbered image sequences",
		Long: "apsdir works with directories of zero-padded numbered images\n" +
			"(scan42_000.tif .. scan42_359.tif): preview them in an external GUI\n" +
			"viewer, stitch them into an MP4 with ffmpeg, or export a range of\n" +
			"frames as an animated GIF.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			annotateContext(cmd)
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newSequencesCommand(ctx))
	rootCmd.AddCommand(newViewCommand(ctx))
	rootCmd.AddCommand(newStitchCommand(ctx))
	rootCmd.AddCommand(newGIFCommand(ctx))
	rootCmd.AddCommand(newProbeCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// annotateContext threads a run id and the command name through the cobra
// context so every log line of one invocation correlates.
func annotateContext(cmd *cobra.Command) {
	cmdCtx := cmd.Context()
	cmdCtx = services.WithRunID(cmdCtx, uuid.NewString())
	cmdCtx = services.WithCommand(cmdCtx, cmd.Name())
	cmd.SetContext(cmdCtx)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
