package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GusBusDraws/aps-directional/internal/services"
	"github.com/GusBusDraws/aps-directional/internal/testsupport"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[logging]
format = "json"
level = "error"
`, filepath.Join(base, "data"), filepath.Join(base, "logs"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSequencesCommandListsSequences(t *testing.T) {
	cfg := writeTestConfig(t)
	dir := t.TempDir()
	testsupport.WriteFrameFiles(t, dir, "scan42_", 3, "tif", 0, 1, 2)

	out, err := runCommand(t, "--config", cfg, "sequences", dir)
	if err != nil {
		t.Fatalf("sequences returned error: %v", err)
	}
	if !strings.Contains(out, "scan42_") {
		t.Errorf("expected sequence name in output, got:\n%s", out)
	}
	if !strings.Contains(out, "000..002") {
		t.Errorf("expected frame range in output, got:\n%s", out)
	}
}

func TestSequencesCommandEmptyDirectory(t *testing.T) {
	cfg := writeTestConfig(t)
	dir := t.TempDir()

	out, err := runCommand(t, "--config", cfg, "sequences", dir)
	if err != nil {
		t.Fatalf("sequences returned error: %v", err)
	}
	if !strings.Contains(out, "No numbered image sequences") {
		t.Errorf("expected empty-directory message, got:\n%s", out)
	}
}

func TestStitchCommandRejectsGaps(t *testing.T) {
	cfg := writeTestConfig(t)
	dir := t.TempDir()
	testsupport.WriteFrameFiles(t, dir, "scan_", 3, "tif", 0, 1, 3)

	_, err := runCommand(t, "--config", cfg, "stitch", dir)
	if err == nil {
		t.Fatal("expected error for sequence with gaps")
	}
	if !strings.Contains(err.Error(), "missing frames") {
		t.Errorf("expected gap detail in error, got: %v", err)
	}
	if code := services.ExitCode(err); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

// writeTestConfigMissingTools points ffmpeg and ffprobe at unresolvable
// names so preflight fails deterministically. A stitch that reaches
// preflight has already passed sequence validation.
func writeTestConfigMissingTools(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[tools]
ffmpeg = "apsdir-test-no-such-ffmpeg"
ffprobe = "apsdir-test-no-such-ffprobe"

[logging]
format = "json"
level = "error"
`, filepath.Join(base, "data"), filepath.Join(base, "logs"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}

func TestStitchCommandStartNumberSkipsEarlierGap(t *testing.T) {
	cfg := writeTestConfigMissingTools(t)
	dir := t.TempDir()
	testsupport.WriteFrameFiles(t, dir, "scan_", 3, "tif", 0, 1, 3, 4, 5)

	_, err := runCommand(t, "--config", cfg, "stitch", dir, "--start-number", "3")
	if err == nil {
		t.Fatal("expected preflight failure with unresolvable tools")
	}
	if strings.Contains(err.Error(), "missing frames") {
		t.Errorf("gap before the start number must not fail the render, got: %v", err)
	}
	if !strings.Contains(err.Error(), "preflight") {
		t.Errorf("expected preflight failure, got: %v", err)
	}
	if code := services.ExitCode(err); code != 4 {
		t.Errorf("expected exit code 4, got %d", code)
	}
}

func TestStitchCommandStartNumberBeforeGapStillFails(t *testing.T) {
	cfg := writeTestConfigMissingTools(t)
	dir := t.TempDir()
	testsupport.WriteFrameFiles(t, dir, "scan_", 3, "tif", 0, 1, 3, 4, 5)

	_, err := runCommand(t, "--config", cfg, "stitch", dir, "--start-number", "1")
	if err == nil {
		t.Fatal("expected error for gap after start number")
	}
	if !strings.Contains(err.Error(), "missing frames") {
		t.Errorf("expected gap detail in error, got: %v", err)
	}
	if code := services.ExitCode(err); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestStitchCommandStartNumberMustBeAFrame(t *testing.T) {
	cfg := writeTestConfigMissingTools(t)
	dir := t.TempDir()
	testsupport.WriteFrameFiles(t, dir, "scan_", 3, "tif", 0, 1, 3, 4, 5)

	_, err := runCommand(t, "--config", cfg, "stitch", dir, "--start-number", "2")
	if err == nil {
		t.Fatal("expected error for start number with no frame file")
	}
	if !strings.Contains(err.Error(), "not a frame") {
		t.Errorf("expected missing-frame detail in error, got: %v", err)
	}
	if code := services.ExitCode(err); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestStitchCommandRejectsMixedWidths(t *testing.T) {
	cfg := writeTestConfig(t)
	dir := t.TempDir()
	testsupport.WriteFrameFiles(t, dir, "scan_", 2, "tif", 1, 2)
	testsupport.WriteFrameFiles(t, dir, "scan_", 3, "tif", 3, 4)

	_, err := runCommand(t, "--config", cfg, "stitch", dir)
	if err == nil {
		t.Fatal("expected error for mixed numeric widths")
	}
	if !strings.Contains(err.Error(), "mixes numeric widths") {
		t.Errorf("expected width conflict detail in error, got: %v", err)
	}
	if code := services.ExitCode(err); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestGIFCommandWritesOutputAndHistory(t *testing.T) {
	cfg := writeTestConfig(t)
	dir := t.TempDir()
	testsupport.WritePNGFrames(t, dir, "scan_", 3, 0, 1, 2, 3, 4)
	output := filepath.Join(t.TempDir(), "out.gif")

	out, err := runCommand(t, "--config", cfg, "gif", dir, "--fps", "5", "-o", output)
	if err != nil {
		t.Fatalf("gif returned error: %v", err)
	}
	if !strings.Contains(out, "Wrote "+output) {
		t.Errorf("expected confirmation message, got:\n%s", out)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected output file: %v", err)
	}

	histOut, err := runCommand(t, "--config", cfg, "history")
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if !strings.Contains(histOut, "gif") || !strings.Contains(histOut, "completed") {
		t.Errorf("expected completed gif record in history, got:\n%s", histOut)
	}
}

func TestGIFCommandRefusesExistingOutput(t *testing.T) {
	cfg := writeTestConfig(t)
	dir := t.TempDir()
	testsupport.WritePNGFrames(t, dir, "scan_", 3, 0, 1, 2)
	output := filepath.Join(t.TempDir(), "out.gif")
	if err := os.WriteFile(output, []byte("existing"), 0o644); err != nil {
		t.Fatalf("write existing output: %v", err)
	}

	_, err := runCommand(t, "--config", cfg, "gif", dir, "-o", output)
	if err == nil {
		t.Fatal("expected error for existing output")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected overwrite refusal in error, got: %v", err)
	}
	if code := services.ExitCode(err); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestGIFCommandStepAndFramesExclusive(t *testing.T) {
	cfg := writeTestConfig(t)
	dir := t.TempDir()
	testsupport.WritePNGFrames(t, dir, "scan_", 3, 0, 1, 2)

	_, err := runCommand(t, "--config", cfg, "gif", dir, "--step", "2", "--frames", "2")
	if err == nil {
		t.Fatal("expected error for conflicting selection flags")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Errorf("expected target path in output, got:\n%s", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	if !strings.Contains(string(data), "[tools]") {
		t.Errorf("expected tools section in sample, got:\n%s", data)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when target exists")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--force"); err != nil {
		t.Fatalf("config init --force returned error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := runCommand(t, "--config", cfg, "config", "validate")
	if err != nil {
		t.Fatalf("config validate returned error: %v", err)
	}
	if !strings.Contains(out, "is valid") {
		t.Errorf("expected validation confirmation, got:\n%s", out)
	}
	if !strings.Contains(out, "render.fps") {
		t.Errorf("expected effective settings table, got:\n%s", out)
	}

	missing := filepath.Join(t.TempDir(), "nope.toml")
	out, err = runCommand(t, "--config", missing, "config", "validate")
	if err != nil {
		t.Fatalf("config validate with missing file returned error: %v", err)
	}
	if !strings.Contains(out, "defaults are in effect") {
		t.Errorf("expected defaults notice, got:\n%s", out)
	}
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[render]\nfps = -3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := runCommand(t, "--config", path, "config", "validate")
	if err == nil {
		t.Fatal("expected error for invalid fps")
	}
	if code := services.ExitCode(err); code != 4 {
		t.Errorf("expected exit code 4, got %d", code)
	}
}

func TestHistoryCommandEmpty(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := runCommand(t, "--config", cfg, "history")
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if !strings.Contains(out, "No renders recorded yet") {
		t.Errorf("expected empty history message, got:\n%s", out)
	}
}

func TestHistoryCommandDisabled(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("[paths]\ndata_dir = %q\nlog_dir = %q\n\n[history]\nenabled = false\n",
		filepath.Join(base, "data"), filepath.Join(base, "logs"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCommand(t, "--config", path, "history")
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if !strings.Contains(out, "disabled") {
		t.Errorf("expected disabled notice, got:\n%s", out)
	}
}
