package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"img2gif/internal/history"
	"img2gif/internal/testsupport"
)

func TestRecordAndGet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	entry := &history.Entry{
		CorrelationID: "corr-1",
		Format:        "gif",
		Inputs:        []string{"a.png", "b.jpg"},
		OutputName:    "a.gif",
		OutputPath:    "/tmp/a.gif",
		Frames:        2,
		Width:         640,
		Height:        480,
		FrameRate:     2.0 / 3.0,
		Duration:      3,
		OutputBytes:   1024,
		Settings:      "-loop 0",
	}
	if err := store.Record(ctx, entry); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if entry.ID == "" || entry.Status != history.StatusSucceeded {
		t.Fatalf("expected id and default status, got %+v", entry)
	}

	fetched, err := store.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected entry to be found")
	}
	if fetched.OutputName != "a.gif" || fetched.Frames != 2 || fetched.Dimensions() != "640x480" {
		t.Fatalf("unexpected entry %+v", fetched)
	}
	if len(fetched.Inputs) != 2 || fetched.Inputs[1] != "b.jpg" {
		t.Fatalf("inputs = %v", fetched.Inputs)
	}
	if fetched.FrameRate != 2.0/3.0 || fetched.CorrelationID != "corr-1" {
		t.Fatalf("unexpected rate or correlation id: %+v", fetched)
	}

	byPrefix, err := store.Get(ctx, entry.ID[:8])
	if err != nil || byPrefix == nil || byPrefix.ID != entry.ID {
		t.Fatalf("prefix lookup = %+v, %v", byPrefix, err)
	}
	missing, err := store.Get(ctx, "does-not-exist")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown id, got %+v, %v", missing, err)
	}
}

func TestRecordRequiresFormat(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	if err := store.Record(context.Background(), &history.Entry{}); err == nil {
		t.Fatal("expected error when format missing")
	}
	if err := store.Record(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil entry")
	}
}

func TestCountOnlySucceeded(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()

	statuses := []history.Status{
		history.StatusSucceeded,
		history.StatusFailed,
		history.StatusSucceeded,
		history.StatusSkipped,
	}
	for _, status := range statuses {
		if err := store.Record(ctx, &history.Entry{Format: "gif", Status: status}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats[history.StatusFailed] != 1 || stats[history.StatusSkipped] != 1 {
		t.Fatalf("unexpected stats %v", stats)
	}
}

func TestListNewestFirstWithFilters(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, status := range []history.Status{history.StatusSucceeded, history.StatusFailed, history.StatusSucceeded} {
		entry := &history.Entry{
			Format:     "gif",
			Status:     status,
			OutputName: []string{"one.gif", "two.gif", "three.gif"}[i],
			StartedAt:  base.Add(time.Duration(i) * 100 * time.Millisecond),
		}
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	all, err := store.List(ctx, history.ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 || all[0].OutputName != "three.gif" || all[2].OutputName != "one.gif" {
		t.Fatalf("unexpected order: %v", outputNames(all))
	}

	limited, err := store.List(ctx, history.ListOptions{Limit: 1})
	if err != nil || len(limited) != 1 || limited[0].OutputName != "three.gif" {
		t.Fatalf("limited list = %v, %v", outputNames(limited), err)
	}

	failed, err := store.List(ctx, history.ListOptions{Statuses: []history.Status{history.StatusFailed}})
	if err != nil || len(failed) != 1 || failed[0].OutputName != "two.gif" {
		t.Fatalf("filtered list = %v, %v", outputNames(failed), err)
	}
}

func TestPruneAndClear(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	if err := store.Record(ctx, &history.Entry{Format: "gif", StartedAt: old, FinishedAt: old}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Record(ctx, &history.Entry{Format: "gif"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	pruned, err := store.Prune(ctx, time.Now().Add(-24*time.Hour))
	if err != nil || pruned != 1 {
		t.Fatalf("Prune = %d, %v; want 1", pruned, err)
	}
	cleared, err := store.Clear(ctx)
	if err != nil || cleared != 1 {
		t.Fatalf("Clear = %d, %v; want 1", cleared, err)
	}
	if count, _ := store.Count(ctx); count != 0 {
		t.Fatalf("count after clear = %d", count)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Record(ctx, &history.Entry{Format: "gif"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenHistory(t, cfg)
	if count, err := reopened.Count(ctx); err != nil || count != 1 {
		t.Fatalf("count after reopen = %d, %v", count, err)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE conversions (id TEXT PRIMARY KEY); PRAGMA user_version = 99;`); err != nil {
		t.Fatalf("seed user_version: %v", err)
	}
	_ = db.Close()

	if _, err := history.OpenPath(dbPath); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if _, err := history.OpenPath(" "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func outputNames(entries []*history.Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.OutputName
	}
	return names
}
