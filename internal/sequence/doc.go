// Package sequence discovers numbered image sequences on disk. A sequence is
// a set of files in one directory sharing a prefix, a fixed-width zero-padded
// numeric suffix, and an extension, e.g. scan42_000.tif .. scan42_359.tif.
// The numeric width matters: ffmpeg enumerates frames through a %0Nd pattern
// and silently finds nothing when the width disagrees with the files.
package sequence
