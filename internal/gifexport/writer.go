package gifexport

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"strings"

	"github.com/GusBusDraws/aps-directional/internal/fileutil"
)

// Options controls GIF encoding.
type Options struct {
	FPS       int
	Equalize  bool
	MaxWidth  int
	Overwrite bool
}

// Write encodes frames as an animated GIF at path. A missing .gif extension
// is appended. Existing outputs are refused unless Overwrite is set. The
// final path written is returned.
func Write(path string, frames []image.Image, opts Options) (string, error) {
	if len(frames) == 0 {
		return "", fmt.Errorf("gif export: no frames to write")
	}
	if opts.FPS <= 0 {
		return "", fmt.Errorf("gif export: frame rate must be positive, got %d", opts.FPS)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gif") {
		path += ".gif"
	}
	if !opts.Overwrite && fileutil.Exists(path) {
		return "", fmt.Errorf("gif export: output %s already exists (pass overwrite to replace it)", path)
	}

	delay := delayForFPS(opts.FPS)
	anim := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(frames)),
		Delay: make([]int, 0, len(frames)),
	}
	for _, frame := range frames {
		if opts.Equalize {
			frame = equalize(frame)
		}
		frame = downscale(frame, opts.MaxWidth)
		anim.Image = append(anim.Image, palettize(frame))
		anim.Delay = append(anim.Delay, delay)
	}

	err := fileutil.AtomicWrite(path, func(w io.Writer) error {
		if err := gif.EncodeAll(w, anim); err != nil {
			return fmt.Errorf("encode gif: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("gif export: %w", err)
	}
	return path, nil
}

// delayForFPS converts frames per second into the GIF delay unit of
// hundredths of a second, clamped to the format's minimum of 1.
func delayForFPS(fps int) int {
	delay := (100 + fps/2) / fps
	if delay < 1 {
		delay = 1
	}
	return delay
}

func palettize(frame image.Image) *image.Paletted {
	bounds := frame.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, bounds.Dx(), bounds.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), frame, bounds.Min)
	return dst
}
