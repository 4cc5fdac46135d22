// Package ffmpeg wraps the external ffmpeg binary for stitching numbered
// image sequences into MP4 files. It builds the documented invocation
// (-framerate, %0Nd input pattern, optional even-dimension crop, pixel
// format), holds a lock on the output while encoding, and parses ffmpeg's
// machine-readable progress stream.
package ffmpeg
