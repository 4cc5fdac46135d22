// Package ffprobe shells out to ffprobe and decodes its JSON description of
// a media container. It is used to verify stitched outputs.
package ffprobe
