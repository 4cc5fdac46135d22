package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/GusBusDraws/aps-directional/internal/config"
	"github.com/GusBusDraws/aps-directional/internal/gifexport"
	"github.com/GusBusDraws/aps-directional/internal/history"
	"github.com/GusBusDraws/aps-directional/internal/logging"
	"github.com/GusBusDraws/aps-directional/internal/sequence"
	"github.com/GusBusDraws/aps-directional/internal/services"
)

func newGIFCommand(ctx *commandContext) *cobra.Command {
	var (
		prefix    string
		ext       string
		output    string
		fps       int
		start     int
		stop      int
		step      int
		count     int
		equalize  bool
		maxWidth  int
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "gif <directory>",
		Short: "Export frames of a numbered image sequence as an animated GIF",
		Long: "gif decodes a slice of the sequence and writes an animated GIF.\n" +
			"The slice is addressed by frame index (position in the sorted frame\n" +
			"list): --start/--stop bound it, and either --step or --frames thins\n" +
			"it. Synchrotron radiographs are often low contrast, so --equalize\n" +
			"applies histogram equalization before encoding.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dir, err := config.ExpandPath(args[0])
			if err != nil {
				return services.Wrap(services.ErrValidation, "gif", "resolve directory", "", err)
			}

			seq, err := sequence.Find(dir, prefix, ext)
			if err != nil {
				return services.Wrap(services.ErrValidation, "gif", "find sequence", "", err)
			}
			runCtx := services.WithSequence(cmd.Context(), seq.Name())
			logger := ctx.loggerFor(runCtx)

			if step > 0 && count > 0 {
				return services.Wrap(services.ErrValidation, "gif", "select frames",
					"--step and --frames are mutually exclusive", nil)
			}
			selected, err := seq.Select(sequence.Range{Start: start, Stop: stop, Step: step, Count: count})
			if err != nil {
				return services.Wrap(services.ErrValidation, "gif", "select frames", "", err)
			}

			if fps <= 0 {
				fps = cfg.GIF.FPS
			}
			eq := cfg.GIF.Equalize
			if cmd.Flags().Changed("equalize") {
				eq = equalize
			}
			width := cfg.GIF.MaxWidth
			if cmd.Flags().Changed("max-width") {
				width = maxWidth
			}
			if output == "" {
				output = filepath.Clean(dir) + ".gif"
			} else if output, err = config.ExpandPath(output); err != nil {
				return services.Wrap(services.ErrValidation, "gif", "resolve output", "", err)
			}

			logger.Info("gif export started",
				logging.Int("frames", len(selected)),
				logging.Int("fps", fps),
				logging.Bool("equalize", eq),
				logging.String("output", output))

			render := seq
			render.Frames = selected

			began := time.Now()
			frames, err := gifexport.LoadFrames(render.Paths())
			if err != nil {
				return services.Wrap(services.ErrValidation, "gif", "load frames", "", err)
			}

			written, err := gifexport.Write(output, frames, gifexport.Options{
				FPS:       fps,
				Equalize:  eq,
				MaxWidth:  width,
				Overwrite: overwrite,
			})
			elapsed := time.Since(began).Round(time.Millisecond)

			rec := history.Record{
				Kind:       history.KindGIF,
				SourceDir:  dir,
				Pattern:    seq.Pattern(),
				Output:     written,
				FPS:        fps,
				FrameCount: len(frames),
				Duration:   elapsed,
			}
			if err != nil {
				rec.Output = output
				rec.Status = history.StatusFailed
				rec.ErrorMessage = err.Error()
				ctx.recordHistory(runCtx, logger, rec)
				return services.Wrap(services.ErrValidation, "gif", "write", "", err)
			}
			rec.Status = history.StatusCompleted
			ctx.recordHistory(runCtx, logger, rec)

			logger.Info("gif export finished",
				logging.String("output", written),
				logging.Duration("elapsed", elapsed))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d frames at %d fps in %s)\n",
				written, len(frames), fps, elapsed)
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Select the sequence with this filename prefix")
	cmd.Flags().StringVar(&ext, "ext", "", "Select the sequence with this file extension")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output GIF path (default <directory>.gif)")
	cmd.Flags().IntVar(&fps, "fps", 0, "Playback frame rate (default from configuration)")
	cmd.Flags().IntVar(&start, "start", 0, "First frame index to include")
	cmd.Flags().IntVar(&stop, "stop", 0, "Frame index to stop before (default all frames)")
	cmd.Flags().IntVar(&step, "step", 0, "Keep every Nth frame")
	cmd.Flags().IntVar(&count, "frames", 0, "Spread roughly this many frames across the range")
	cmd.Flags().BoolVar(&equalize, "equalize", false, "Apply histogram equalization to each frame")
	cmd.Flags().IntVar(&maxWidth, "max-width", 0, "Downscale frames wider than this (0 keeps full size)")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "y", false, "Replace the output file if it exists")
	return cmd
}
