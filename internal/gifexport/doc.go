// Package gifexport turns a selection of sequence frames into an animated
// GIF. Frames are decoded from disk (TIFF and BMP via golang.org/x/image),
// optionally contrast-equalized and downscaled, palettized with dithering,
// and written atomically at a fixed frame rate.
package gifexport
