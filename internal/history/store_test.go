package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/GusBusDraws/aps-directional/internal/history"
	"github.com/GusBusDraws/aps-directional/internal/testsupport"
)

func openStore(t *testing.T, opts ...testsupport.ConfigOption) *history.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Record(ctx, history.Record{
		Kind:       history.KindStitch,
		SourceDir:  "/data/scan42",
		Pattern:    "/data/scan42/scan42_%03d.tif",
		Output:     "/data/scan42.mp4",
		FPS:        10,
		FrameCount: 360,
		Args:       "-framerate 10 -i scan42_%03d.tif",
		Status:     history.StatusCompleted,
		Duration:   90 * time.Second,
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if first <= 0 {
		t.Fatalf("expected positive id, got %d", first)
	}

	if _, err := store.Record(ctx, history.Record{
		Kind:         history.KindGIF,
		SourceDir:    "/data/scan42",
		Output:       "/data/scan42.gif",
		FPS:          10,
		Status:       history.StatusFailed,
		ErrorMessage: "output exists",
		CreatedAt:    time.Now().UTC().Add(time.Second),
	}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	records, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Kind != history.KindGIF {
		t.Fatalf("expected newest record first, got %+v", records[0])
	}
	if records[0].Status != history.StatusFailed || records[0].ErrorMessage != "output exists" {
		t.Fatalf("unexpected failed record: %+v", records[0])
	}
	if records[1].FrameCount != 360 {
		t.Fatalf("unexpected frame count: %+v", records[1])
	}
	if records[1].Duration != 90*time.Second {
		t.Fatalf("unexpected duration: %v", records[1].Duration)
	}
	if records[1].CreatedAt.IsZero() {
		t.Fatal("expected created timestamp set")
	}
}

func TestListLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		if _, err := store.Record(ctx, history.Record{
			Kind:      history.KindStitch,
			SourceDir: "/data",
			Output:    "/data/out.mp4",
			FPS:       10,
			Status:    history.StatusCompleted,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	records, err := store.List(ctx, 3)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
}

func TestRetentionPrunesOldRecords(t *testing.T) {
	store := openStore(t, testsupport.WithHistoryKeep(2))
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 4; i++ {
		if _, err := store.Record(ctx, history.Record{
			Kind:      history.KindStitch,
			SourceDir: "/data",
			Output:    "/data/out.mp4",
			FPS:       10,
			Status:    history.StatusCompleted,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected retention to keep 2 records, got %d", len(records))
	}
}

func TestRecordRequiresKindAndStatus(t *testing.T) {
	store := openStore(t)
	if _, err := store.Record(context.Background(), history.Record{}); err == nil {
		t.Fatal("expected error for empty record")
	}
}

func TestReopenKeepsData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := store.Record(context.Background(), history.Record{
		Kind:      history.KindStitch,
		SourceDir: "/data",
		Output:    "/data/out.mp4",
		FPS:       10,
		Status:    history.StatusCompleted,
	}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.Close()
	records, err := reopened.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after reopen, got %d", len(records))
	}
}
