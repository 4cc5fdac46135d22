// Package deps reports availability of the external binaries the CLI invokes.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/GusBusDraws/aps-directional/internal/config"
)

// Requirement defines an external dependency the CLI relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external binaries the configured commands need.
// The viewer is optional: stitch and gif work without it.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: cfg.Tools.FFmpeg, Description: "Stitches image sequences into MP4"},
		{Name: "FFprobe", Command: cfg.Tools.FFprobe, Description: "Inspects rendered outputs"},
		{Name: "Viewer", Command: cfg.Tools.Viewer, Description: "GUI preview of image directories", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}
