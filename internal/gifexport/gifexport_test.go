package gifexport

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, width, height int, shade uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = shade
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestLoadFramesDecodesInOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "img_000.png"),
		filepath.Join(dir, "img_001.png"),
	}
	writeTestPNG(t, paths[0], 4, 4, 10)
	writeTestPNG(t, paths[1], 4, 4, 200)

	frames, err := LoadFrames(paths)
	if err != nil {
		t.Fatalf("LoadFrames returned error: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
}

func TestLoadFramesFailsOnMissingFile(t *testing.T) {
	if _, err := LoadFrames([]string{filepath.Join(t.TempDir(), "absent.png")}); err == nil {
		t.Fatal("expected error for missing frame")
	}
}

func TestWriteProducesAnimatedGIF(t *testing.T) {
	frames := []image.Image{
		image.NewGray(image.Rect(0, 0, 8, 8)),
		image.NewGray(image.Rect(0, 0, 8, 8)),
		image.NewGray(image.Rect(0, 0, 8, 8)),
	}
	target := filepath.Join(t.TempDir(), "anim")

	path, err := Write(target, frames, Options{FPS: 10})
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if filepath.Ext(path) != ".gif" {
		t.Fatalf("expected .gif extension appended, got %q", path)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()
	decoded, err := gif.DecodeAll(file)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(decoded.Image) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(decoded.Image))
	}
	for i, delay := range decoded.Delay {
		if delay != 10 {
			t.Fatalf("frame %d: expected delay 10, got %d", i, delay)
		}
	}
}

func TestWriteRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "anim.gif")
	if err := os.WriteFile(target, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}
	frames := []image.Image{image.NewGray(image.Rect(0, 0, 2, 2))}

	if _, err := Write(target, frames, Options{FPS: 10}); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
	if _, err := Write(target, frames, Options{FPS: 10, Overwrite: true}); err != nil {
		t.Fatalf("expected overwrite to proceed, got %v", err)
	}
}

func TestDelayForFPS(t *testing.T) {
	cases := map[int]int{1: 100, 10: 10, 30: 3, 100: 1}
	for fps, want := range cases {
		if got := delayForFPS(fps); got != want {
			t.Fatalf("delayForFPS(%d) = %d, want %d", fps, got, want)
		}
	}
}

func TestEqualizeStretchesNarrowRange(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 1))
	copy(img.Pix, []uint8{100, 101, 102, 103})

	out := equalize(img)
	min, max := out.Pix[0], out.Pix[0]
	for _, v := range out.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max-min < 128 {
		t.Fatalf("expected stretched contrast, got pix %v", out.Pix)
	}
}

func TestEqualizeFlatImageUnchanged(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 42
	}
	out := equalize(img)
	for _, v := range out.Pix {
		if v != 42 {
			t.Fatalf("expected flat image untouched, got %v", out.Pix)
		}
	}
}

func TestDownscalePreservesAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	out := downscale(src, 40)
	if got := out.Bounds(); got.Dx() != 40 || got.Dy() != 20 {
		t.Fatalf("unexpected bounds: %v", got)
	}

	small := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if downscale(small, 40) != small {
		t.Fatal("expected small image passed through")
	}
}

func TestWriteEqualizedColorFrame(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(60 + x), G: uint8(60 + y), B: 60, A: 255})
		}
	}
	target := filepath.Join(t.TempDir(), "eq.gif")
	if _, err := Write(target, []image.Image{img}, Options{FPS: 5, Equalize: true}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
}
