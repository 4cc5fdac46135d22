package sequence

import (
	"fmt"
	"math"
)

// Range selects a slice of a sequence by frame index (position in the sorted
// frame list, not frame number). Stop is exclusive; zero values fall back to
// the full span with step 1. When Count is set the step is derived so the
// selection spreads roughly Count frames across the span.
type Range struct {
	Start int
	Stop  int
	Step  int
	Count int
}

// Select resolves the range against the sequence and returns the chosen frame
// numbers in order.
func (s Sequence) Select(r Range) ([]int, error) {
	total := len(s.Frames)
	if total == 0 {
		return nil, fmt.Errorf("sequence %s has no frames", s.Name())
	}

	start := r.Start
	stop := r.Stop
	if stop <= 0 {
		stop = total
	}
	if start < 0 || start >= total {
		return nil, fmt.Errorf("start index %d out of range [0,%d)", start, total)
	}
	if stop > total {
		return nil, fmt.Errorf("stop index %d beyond frame count %d", stop, total)
	}
	if start >= stop {
		return nil, fmt.Errorf("start index %d must precede stop index %d", start, stop)
	}

	step := r.Step
	if r.Count > 0 {
		step = int(math.Round(float64(stop-start) / float64(r.Count)))
	}
	if step <= 0 {
		step = 1
	}

	selected := make([]int, 0, (stop-start+step-1)/step)
	for i := start; i < stop; i += step {
		selected = append(selected, s.Frames[i])
	}
	return selected, nil
}
