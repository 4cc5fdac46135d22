package deps_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/GusBusDraws/aps-directional/internal/config"
	"github.com/GusBusDraws/aps-directional/internal/deps"
)

func TestCheckBinariesResolvesFromPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake executable fixture assumes unix permissions")
	}
	binDir := t.TempDir()
	fake := filepath.Join(binDir, "fake-ffmpeg")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write fake binary: %v", err)
	}
	t.Setenv("PATH", binDir)

	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "FFmpeg", Command: "fake-ffmpeg"},
		{Name: "Viewer", Command: "missing-viewer", Optional: true},
		{Name: "Empty", Command: "  "},
	})

	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("expected fake-ffmpeg available: %+v", statuses[0])
	}
	if statuses[0].Command != fake {
		t.Fatalf("expected resolved path %q, got %q", fake, statuses[0].Command)
	}
	if statuses[1].Available {
		t.Fatalf("expected missing viewer unavailable: %+v", statuses[1])
	}
	if !statuses[1].Optional {
		t.Fatal("expected viewer marked optional")
	}
	if statuses[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %q", statuses[2].Detail)
	}
}

func TestRequirementsUseConfiguredCommands(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.FFmpeg = "/opt/ffmpeg"
	cfg.Tools.Viewer = "eog"

	reqs := deps.Requirements(&cfg)
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "/opt/ffmpeg" {
		t.Fatalf("unexpected ffmpeg command: %q", reqs[0].Command)
	}
	if !reqs[2].Optional {
		t.Fatal("expected viewer to be optional")
	}
}
