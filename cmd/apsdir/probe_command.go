package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GusBusDraws/aps-directional/internal/config"
	"github.com/GusBusDraws/aps-directional/internal/media/ffprobe"
	"github.com/GusBusDraws/aps-directional/internal/services"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect a rendered video with ffprobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return services.Wrap(services.ErrValidation, "probe", "resolve path", "", err)
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.Tools.FFprobe, path)
			if err != nil {
				return services.Wrap(services.ErrExternalTool, "probe", "inspect", "", err)
			}

			rows := [][]string{
				{"Container", result.Format.FormatName},
				{"Duration", fmt.Sprintf("%.2fs", result.DurationSeconds())},
				{"Size", formatSize(result.SizeBytes())},
				{"Streams", fmt.Sprintf("%d", result.Format.NBStreams)},
			}
			if stream, ok := result.VideoStream(); ok {
				rows = append(rows,
					[]string{"Codec", stream.CodecName},
					[]string{"Resolution", fmt.Sprintf("%dx%d", stream.Width, stream.Height)},
					[]string{"Pixel format", stream.PixelFormat},
					[]string{"Frame rate", fmt.Sprintf("%.3g fps", stream.FrameRate())},
				)
				if frames := stream.FrameCount(); frames > 0 {
					rows = append(rows, []string{"Frames", fmt.Sprintf("%d", frames)})
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Field", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
