package sequence

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the image extensions recognized during a scan.
var DefaultExtensions = []string{"tif", "tiff", "png", "jpg", "jpeg", "bmp"}

// Sequence describes one numbered image sequence in a directory.
type Sequence struct {
	Dir    string
	Prefix string
	Width  int
	Ext    string // lowercase, no leading dot
	Frames []int  // sorted frame numbers
}

// Gap is a run of missing frame numbers inside a sequence.
type Gap struct {
	From int
	To   int
}

// Name returns a short identifier for logs and history records.
func (s Sequence) Name() string {
	if s.Prefix != "" {
		return s.Prefix
	}
	return filepath.Base(s.Dir)
}

// Pattern renders the ffmpeg input pattern for the sequence, joined to its
// directory, e.g. /data/scan42/scan42_%03d.tif.
func (s Sequence) Pattern() string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s%%0%dd.%s", s.Prefix, s.Width, s.Ext))
}

// FramePath returns the path of the file holding frame n.
func (s Sequence) FramePath(n int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s%0*d.%s", s.Prefix, s.Width, n, s.Ext))
}

// Paths returns the file paths of all frames in order.
func (s Sequence) Paths() []string {
	paths := make([]string, 0, len(s.Frames))
	for _, n := range s.Frames {
		paths = append(paths, s.FramePath(n))
	}
	return paths
}

// Count returns the number of frames present.
func (s Sequence) Count() int {
	return len(s.Frames)
}

// Start returns the lowest frame number, or 0 for an empty sequence.
func (s Sequence) Start() int {
	if len(s.Frames) == 0 {
		return 0
	}
	return s.Frames[0]
}

// End returns the highest frame number, or 0 for an empty sequence.
func (s Sequence) End() int {
	if len(s.Frames) == 0 {
		return 0
	}
	return s.Frames[len(s.Frames)-1]
}

// Gaps returns the runs of missing frame numbers between Start and End.
func (s Sequence) Gaps() []Gap {
	if len(s.Frames) < 2 {
		return nil
	}
	var gaps []Gap
	for i := 1; i < len(s.Frames); i++ {
		prev, next := s.Frames[i-1], s.Frames[i]
		if next-prev > 1 {
			gaps = append(gaps, Gap{From: prev + 1, To: next - 1})
		}
	}
	return gaps
}

// IsContiguous reports whether the frame numbers form an unbroken run.
func (s Sequence) IsContiguous() bool {
	return len(s.Gaps()) == 0
}

// DescribeRange renders the frame span as e.g. "000..359".
func (s Sequence) DescribeRange() string {
	if len(s.Frames) == 0 {
		return "-"
	}
	return fmt.Sprintf("%0*d..%0*d", s.Width, s.Start(), s.Width, s.End())
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
