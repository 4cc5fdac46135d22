package fileutil_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GusBusDraws/aps-directional/internal/fileutil"
)

func TestAtomicWriteWritesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	err := fileutil.AtomicWrite(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "payload")
		return err
	})
	if err != nil {
		t.Fatalf("AtomicWrite returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestAtomicWriteCleansUpOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.gif")
	wantErr := errors.New("encode failed")
	err := fileutil.AtomicWrite(path, func(io.Writer) error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected write error, got %v", err)
	}
	if fileutil.Exists(path) {
		t.Fatal("expected no output after failed write")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestExistsAndEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if fileutil.Exists(dir) {
		t.Fatal("expected dir to be absent")
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir returned error: %v", err)
	}
	if !fileutil.Exists(dir) {
		t.Fatal("expected dir to exist")
	}
}
