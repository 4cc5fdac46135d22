package gifexport

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// LoadFrames decodes the images at the given paths, in order.
func LoadFrames(paths []string) ([]image.Image, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames selected")
	}
	frames := make([]image.Image, 0, len(paths))
	for _, path := range paths {
		img, err := loadFrame(path)
		if err != nil {
			return nil, err
		}
		frames = append(frames, img)
	}
	return frames, nil
}

func loadFrame(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", path, err)
	}
	return img, nil
}
