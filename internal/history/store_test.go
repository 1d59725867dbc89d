package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"synco/internal/history"
)

func openTestStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "data", "history.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := history.NewRun("/a", "r:/b")
	first.ExitCode = 0
	first.FinishedAt = first.StartedAt.Add(2 * time.Second)
	if err := store.Record(ctx, first); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	second := history.NewRun("/a", "r:/b")
	second.StartedAt = first.StartedAt.Add(time.Minute)
	second.ExitCode = 3
	second.FinishedAt = second.StartedAt.Add(time.Second)
	if err := store.Record(ctx, second); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second.ID {
		t.Fatalf("expected newest run first, got %s", runs[0].ID)
	}
	if runs[0].ExitCode != 3 {
		t.Fatalf("unexpected exit code %d", runs[0].ExitCode)
	}
	if runs[1].Duration() != 2*time.Second {
		t.Fatalf("unexpected duration %s", runs[1].Duration())
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		run := history.NewRun("/a", "r:/b")
		run.StartedAt = base.Add(time.Duration(i) * time.Minute)
		run.FinishedAt = run.StartedAt.Add(time.Second)
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	runs, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
}

func TestSummaryCountsFailures(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, code := range []int{0, 1, 0, 127} {
		run := history.NewRun("/a", "r:/b")
		run.ExitCode = code
		run.FinishedAt = run.StartedAt.Add(time.Second)
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	stats, err := store.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if stats.Total != 4 || stats.Failed != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestOpenExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	_ = reopened.Close()
}
