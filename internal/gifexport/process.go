package gifexport

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// equalize applies global histogram equalization on the luminance of img,
// returning a grayscale frame. Synchrotron TIFF stacks often use a narrow
// slice of the dynamic range, which renders near-black without this.
func equalize(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	xdraw.Draw(gray, bounds, img, bounds.Min, xdraw.Src)

	var histogram [256]int
	for _, v := range gray.Pix {
		histogram[v]++
	}

	total := len(gray.Pix)
	if total == 0 {
		return gray
	}

	var lut [256]uint8
	cdf := 0
	cdfMin := -1
	cumulative := [256]int{}
	for v := 0; v < 256; v++ {
		cdf += histogram[v]
		cumulative[v] = cdf
		if cdfMin < 0 && histogram[v] > 0 {
			cdfMin = cdf
		}
	}
	if cdfMin < 0 || total == cdfMin {
		// Flat image, nothing to stretch.
		return gray
	}
	for v := 0; v < 256; v++ {
		scaled := float64(cumulative[v]-cdfMin) / float64(total-cdfMin)
		if scaled < 0 {
			scaled = 0
		}
		lut[v] = uint8(scaled*255 + 0.5)
	}

	for i, v := range gray.Pix {
		gray.Pix[i] = lut[v]
	}
	return gray
}

// downscale resizes img to maxWidth preserving aspect ratio. Frames at or
// below maxWidth pass through untouched.
func downscale(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	if maxWidth <= 0 || width <= maxWidth {
		return img
	}
	height := bounds.Dy() * maxWidth / width
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}
