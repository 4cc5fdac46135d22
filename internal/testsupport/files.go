package testsupport

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// WriteFrameFiles creates placeholder files named <prefix><n>.<ext> with the
// given zero-padded width for every frame number. The content is not a real
// image; use WritePNGFrames when the test decodes pixels.
func WriteFrameFiles(t testing.TB, dir, prefix string, width int, ext string, frames ...int) {
	t.Helper()
	for _, n := range frames {
		name := fmt.Sprintf("%s%0*d.%s", prefix, width, n, ext)
		if err := os.WriteFile(filepath.Join(dir, name), []byte("frame"), 0o644); err != nil {
			t.Fatalf("write frame %s: %v", name, err)
		}
	}
}

// WritePNGFrames creates decodable grayscale PNG frames, shading each frame
// by its number so tests can tell them apart.
func WritePNGFrames(t testing.TB, dir, prefix string, width int, frames ...int) {
	t.Helper()
	for _, n := range frames {
		img := image.NewGray(image.Rect(0, 0, 8, 8))
		for i := range img.Pix {
			img.Pix[i] = uint8(n * 16 % 256)
		}
		name := fmt.Sprintf("%s%0*d.png", prefix, width, n)
		file, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("create frame %s: %v", name, err)
		}
		if err := png.Encode(file, img); err != nil {
			file.Close()
			t.Fatalf("encode frame %s: %v", name, err)
		}
		if err := file.Close(); err != nil {
			t.Fatalf("close frame %s: %v", name, err)
		}
	}
}
