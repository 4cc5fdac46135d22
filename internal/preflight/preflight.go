// Package preflight runs the checks a render needs to pass before ffmpeg is
// started: external binaries resolvable, output directory writable, and
// enough free space on the output filesystem.
package preflight

import (
	"fmt"
	"strings"

	"github.com/GusBusDraws/aps-directional/internal/config"
	"github.com/GusBusDraws/aps-directional/internal/deps"
)

// Result is the outcome of a single check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// ForRender runs every check a stitch render depends on and returns the
// results in order. outputDir is the directory the MP4 will be written to.
func ForRender(cfg *config.Config, outputDir string) []Result {
	results := make([]Result, 0, 4)
	for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
		if status.Optional {
			continue
		}
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Command}
		if !status.Available {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}
	results = append(results, CheckWritable(outputDir))
	results = append(results, CheckFreeSpace(outputDir, cfg.Render.MinFreeMiB))
	return results
}

// Failed filters results down to the checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}

// Summarize renders failed checks as a single error detail line.
func Summarize(failed []Result) string {
	parts := make([]string, 0, len(failed))
	for _, result := range failed {
		if result.Detail != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", result.Name, result.Detail))
		} else {
			parts = append(parts, result.Name)
		}
	}
	return strings.Join(parts, "; ")
}
