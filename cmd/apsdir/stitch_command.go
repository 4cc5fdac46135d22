package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/GusBusDraws/aps-directional/internal/config"
	"github.com/GusBusDraws/aps-directional/internal/history"
	"github.com/GusBusDraws/aps-directional/internal/logging"
	"github.com/GusBusDraws/aps-directional/internal/preflight"
	"github.com/GusBusDraws/aps-directional/internal/sequence"
	"github.com/GusBusDraws/aps-directional/internal/services"
	"github.com/GusBusDraws/aps-directional/internal/services/ffmpeg"
)

const progressLogInterval = 2 * time.Second

func newStitchCommand(ctx *commandContext) *cobra.Command {
	var (
		prefix      string
		ext         string
		output      string
		fps         int
		pixelFormat string
		evenCrop    bool
		startNumber int
		overwrite   bool
	)

	cmd := &cobra.Command{
		Use:   "stitch <directory>",
		Short: "Stitch a numbered image sequence into an MP4 with ffmpeg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dir, err := config.ExpandPath(args[0])
			if err != nil {
				return services.Wrap(services.ErrValidation, "stitch", "resolve directory", "", err)
			}

			seq, err := sequence.Find(dir, prefix, ext)
			if err != nil {
				return services.Wrap(services.ErrValidation, "stitch", "find sequence", "", err)
			}
			runCtx := services.WithSequence(cmd.Context(), seq.Name())
			logger := ctx.loggerFor(runCtx)

			start := seq.Start()
			if cmd.Flags().Changed("start-number") {
				start = startNumber
			}
			render := seq
			if start != seq.Start() {
				i := sort.SearchInts(seq.Frames, start)
				if i == len(seq.Frames) || seq.Frames[i] != start {
					return services.Wrap(services.ErrValidation, "stitch", "check frames",
						fmt.Sprintf("start number %d is not a frame of sequence %s (%s)",
							start, seq.Name(), seq.DescribeRange()), nil)
				}
				render.Frames = seq.Frames[i:]
			}

			// ffmpeg's %0Nd demuxer stops at the first missing frame and encodes
			// a silently truncated video, so gaps from the start number onward
			// are rejected up front.
			if gaps := render.Gaps(); len(gaps) > 0 {
				first := gaps[0]
				return services.Wrap(services.ErrValidation, "stitch", "check frames",
					fmt.Sprintf("sequence %s is missing frames %d..%d (%d gap(s) in total); pass --start-number to begin after the last gap",
						seq.Name(), first.From, first.To, len(gaps)), nil)
			}

			if fps <= 0 {
				fps = cfg.Render.FPS
			}
			if pixelFormat == "" {
				pixelFormat = cfg.Render.PixelFormat
			}
			crop := cfg.Render.EvenCrop
			if cmd.Flags().Changed("even-crop") {
				crop = evenCrop
			}
			if output == "" {
				output = filepath.Clean(dir) + ".mp4"
			} else if output, err = config.ExpandPath(output); err != nil {
				return services.Wrap(services.ErrValidation, "stitch", "resolve output", "", err)
			}

			if failed := preflight.Failed(preflight.ForRender(cfg, filepath.Dir(output))); len(failed) > 0 {
				return services.Wrap(services.ErrConfiguration, "stitch", "preflight", preflight.Summarize(failed), nil)
			}

			client, err := ffmpeg.New(cfg.Tools.FFmpeg, cfg.Tools.RenderTimeout)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "stitch", "ffmpeg client", "", err)
			}

			spec := ffmpeg.StitchSpec{
				InputPattern: seq.Pattern(),
				StartNumber:  start,
				FPS:          fps,
				PixelFormat:  pixelFormat,
				EvenCrop:     crop,
				Output:       output,
				Overwrite:    overwrite,
			}

			logger.Info("stitch started",
				logging.String("pattern", spec.InputPattern),
				logging.Int("frames", render.Count()),
				logging.Int("fps", fps),
				logging.String("output", output))

			began := time.Now()
			var lastLogged time.Time
			err = client.Stitch(runCtx, spec, func(update ffmpeg.ProgressUpdate) {
				if !update.Done && time.Since(lastLogged) < progressLogInterval {
					return
				}
				lastLogged = time.Now()
				logger.Info(update.Message(),
					logging.Int64("frame", update.Frame),
					logging.Float64("speed", update.Speed))
			})
			elapsed := time.Since(began).Round(time.Millisecond)

			rec := history.Record{
				Kind:       history.KindStitch,
				SourceDir:  dir,
				Pattern:    seq.Pattern(),
				Output:     output,
				FPS:        fps,
				FrameCount: render.Count(),
				Args:       strings.Join(spec.Args(), " "),
				Duration:   elapsed,
			}
			if err != nil {
				rec.Status = history.StatusFailed
				rec.ErrorMessage = err.Error()
				ctx.recordHistory(runCtx, logger, rec)
				return services.Wrap(services.ErrExternalTool, "stitch", "encode", "", err)
			}
			rec.Status = history.StatusCompleted
			ctx.recordHistory(runCtx, logger, rec)

			logger.Info("stitch finished",
				logging.String("output", output),
				logging.Duration("elapsed", elapsed))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d frames at %d fps in %s)\n",
				output, render.Count(), fps, elapsed)
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Select the sequence with this filename prefix")
	cmd.Flags().StringVar(&ext, "ext", "", "Select the sequence with this file extension")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output MP4 path (default <directory>.mp4)")
	cmd.Flags().IntVar(&fps, "fps", 0, "Frame rate of the output video (default from configuration)")
	cmd.Flags().StringVar(&pixelFormat, "pix-fmt", "", "Output pixel format (default from configuration)")
	cmd.Flags().BoolVar(&evenCrop, "even-crop", true, "Crop one pixel off odd dimensions so the encoder accepts them")
	cmd.Flags().IntVar(&startNumber, "start-number", 0, "First frame number (default detected from filenames)")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "y", false, "Replace the output file if it exists")
	return cmd
}
