package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/GusBusDraws/aps-directional/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 1")
	err := services.Wrap(services.ErrExternalTool, "ffmpeg", "stitch", "encode failed", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
	want := "external tool error: ffmpeg: stitch: encode failed: exit status 1"
	if err.Error() != want {
		t.Fatalf("unexpected message: got %q want %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if err.Error() != "external tool error: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"generic", errors.New("boom"), 1},
		{"validation", fmt.Errorf("context: %w", services.ErrValidation), 2},
		{"not found", services.ErrNotFound, 2},
		{"external", services.Wrap(services.ErrExternalTool, "ffmpeg", "stitch", "", nil), 3},
		{"timeout", services.ErrTimeout, 3},
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "load", "", nil), 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.ExitCode(tc.err); got != tc.want {
				t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
