package ffmpeg

import (
	"strings"
	"testing"
	"time"
)

func TestProgressParserEmitsOnTerminator(t *testing.T) {
	parser := &progressParser{}

	lines := []string{
		"frame=120",
		"fps=25.00",
		"out_time_us=12000000",
		"out_time=00:00:12.000000",
		"speed=2.5x",
	}
	for _, line := range lines {
		if _, ok := parser.feed(line); ok {
			t.Fatalf("unexpected emit for %q", line)
		}
	}

	update, ok := parser.feed("progress=continue")
	if !ok {
		t.Fatal("expected emit on progress terminator")
	}
	if update.Frame != 120 {
		t.Fatalf("unexpected frame: %d", update.Frame)
	}
	if update.FPS != 25 {
		t.Fatalf("unexpected fps: %v", update.FPS)
	}
	if update.OutTime != 12*time.Second {
		t.Fatalf("unexpected out time: %v", update.OutTime)
	}
	if update.Speed != 2.5 {
		t.Fatalf("unexpected speed: %v", update.Speed)
	}
	if update.Done {
		t.Fatal("expected in-flight update")
	}

	final, ok := parser.feed("progress=end")
	if !ok {
		t.Fatal("expected emit on end")
	}
	if !final.Done {
		t.Fatal("expected done update")
	}
	if final.Frame != 0 {
		t.Fatalf("expected state reset between blocks, got frame %d", final.Frame)
	}
}

func TestProgressParserIgnoresNoise(t *testing.T) {
	parser := &progressParser{}
	for _, line := range []string{"", "   ", "not a pair", "frame=abc"} {
		if _, ok := parser.feed(line); ok {
			t.Fatalf("unexpected emit for %q", line)
		}
	}
}

func TestProgressMessage(t *testing.T) {
	update := ProgressUpdate{Stage: "encoding", Frame: 42, OutTime: 4200 * time.Millisecond, Speed: 1.5}
	msg := update.Message()
	if !strings.HasPrefix(msg, "Encoding frame 42") {
		t.Fatalf("unexpected message: %q", msg)
	}
	if !strings.Contains(msg, "@ 1.5x") {
		t.Fatalf("expected speed in message: %q", msg)
	}

	bare := ProgressUpdate{Frame: 1}
	if got := bare.Message(); got != "Encoding frame 1" {
		t.Fatalf("unexpected bare message: %q", got)
	}
}
