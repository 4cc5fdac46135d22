package ffmpeg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// EvenCropFilter forces even output dimensions. yuv420p subsamples chroma
// 2x2, so ffmpeg refuses odd widths or heights outright.
const EvenCropFilter = "crop=trunc(iw/2)*2:trunc(ih/2)*2"

// StitchSpec describes a single image-sequence-to-MP4 render.
type StitchSpec struct {
	// InputPattern is the %0Nd frame pattern joined to its directory,
	// e.g. /data/scan42/scan42_%03d.tif.
	InputPattern string
	// StartNumber is the first frame number. ffmpeg defaults to 0 and gives
	// up after a small probe window, so sequences starting elsewhere must
	// set it explicitly.
	StartNumber int
	FPS         int
	PixelFormat string
	EvenCrop    bool
	Output      string
	Overwrite   bool
}

// Validate checks the spec before any process is started.
func (s StitchSpec) Validate() error {
	if strings.TrimSpace(s.InputPattern) == "" {
		return errors.New("input pattern required")
	}
	if !strings.Contains(s.InputPattern, "%0") {
		return fmt.Errorf("input pattern %q has no %%0Nd frame placeholder", s.InputPattern)
	}
	if s.FPS <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", s.FPS)
	}
	if strings.TrimSpace(s.PixelFormat) == "" {
		return errors.New("pixel format required")
	}
	if strings.TrimSpace(s.Output) == "" {
		return errors.New("output path required")
	}
	if s.StartNumber < 0 {
		return fmt.Errorf("start number must not be negative, got %d", s.StartNumber)
	}
	return nil
}

// Args renders the ffmpeg argument list for the spec.
func (s StitchSpec) Args() []string {
	args := []string{"-hide_banner", "-loglevel", "error", "-nostdin", "-progress", "pipe:1"}
	if s.Overwrite {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}
	args = append(args, "-framerate", strconv.Itoa(s.FPS))
	if s.StartNumber != 0 {
		args = append(args, "-start_number", strconv.Itoa(s.StartNumber))
	}
	args = append(args, "-i", s.InputPattern)
	if s.EvenCrop {
		args = append(args, "-vf", EvenCropFilter)
	}
	args = append(args, "-pix_fmt", s.PixelFormat, s.Output)
	return args
}
