package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"famtree/internal/catalog"
	"famtree/internal/identity"
	"famtree/internal/store"
	"famtree/internal/testsupport"
)

func mustOpen(t *testing.T) *store.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func entry(pointer, id, link string) catalog.Entry {
	return catalog.Entry{Pointer: pointer, ID: identity.ID(id), DisplayName: pointer, SurnameKey: "doe", LinkPath: link}
}

func run(id, sha string, offset time.Duration) store.Run {
	started := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC).Add(offset)
	return store.Run{
		ID:           id,
		StartedAt:    started,
		FinishedAt:   started.Add(time.Second),
		GEDCOMPath:   "/data/tree.ged",
		GEDCOMSHA256: sha,
		OutputDir:    "/srv/site",
		People:       2,
		Surnames:     1,
		Status:       store.StatusSucceeded,
	}
}

func TestRecordAndListRuns(t *testing.T) {
	s := mustOpen(t)
	ctx := context.Background()

	if err := s.RecordRun(ctx, run("r1", "abc", 0), []catalog.Entry{entry("@I1@", "id1", "ppl/doe/a_1.html")}); err != nil {
		t.Fatalf("RecordRun r1: %v", err)
	}
	failed := run("r2", "abc", time.Minute)
	failed.Status = store.StatusFailed
	failed.ErrorMessage = "disk full"
	if err := s.RecordRun(ctx, failed, []catalog.Entry{entry("@I1@", "id1", "ppl/doe/a_1.html")}); err != nil {
		t.Fatalf("RecordRun r2: %v", err)
	}

	runs, err := s.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "r2" || runs[1].ID != "r1" {
		t.Fatalf("unexpected runs %+v", runs)
	}
	if runs[0].ErrorMessage != "disk full" || runs[0].Status != store.StatusFailed {
		t.Fatalf("unexpected failed run %+v", runs[0])
	}
	if !runs[1].StartedAt.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start time %v", runs[1].StartedAt)
	}
	if limited, _ := s.Runs(ctx, 1); len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}

	entries, err := s.Entries(ctx, "r1")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 || entries[0].PersonID != "id1" || entries[0].LinkPath != "ppl/doe/a_1.html" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if failedEntries, _ := s.Entries(ctx, "r2"); len(failedEntries) != 0 {
		t.Fatalf("expected failed run to store no entries, got %+v", failedEntries)
	}

	if err := s.RecordRun(ctx, store.Run{}, nil); err == nil {
		t.Fatal("expected error for missing run id")
	}
}

func TestDrift(t *testing.T) {
	s := mustOpen(t)
	ctx := context.Background()

	report, err := s.Drift(ctx)
	if err != nil || report != nil {
		t.Fatalf("expected no report with empty history, got %+v, %v", report, err)
	}

	first := []catalog.Entry{
		entry("@I1@", "id1", "ppl/doe/a_1.html"),
		entry("@I2@", "id2", "ppl/doe/b_2.html"),
		entry("@I3@", "id3", "ppl/doe/c_3.html"),
	}
	second := []catalog.Entry{
		entry("@I1@", "id1", "ppl/doe/a_1.html"),
		entry("@I2@", "id2", "ppl/roe/b_2.html"),
		entry("@I4@", "id4", "ppl/doe/d_4.html"),
	}
	if err := s.RecordRun(ctx, run("r1", "same", 0), first); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordRun(ctx, run("r2", "same", time.Minute), second); err != nil {
		t.Fatal(err)
	}

	report, err = s.Drift(ctx)
	if err != nil {
		t.Fatalf("Drift: %v", err)
	}
	if report.Previous.ID != "r1" || report.Current.ID != "r2" || !report.SameInput() {
		t.Fatalf("unexpected report header %+v", report)
	}
	want := []store.Change{
		{Pointer: "@I2@", Kind: store.ChangeLinkPath, Before: "ppl/doe/b_2.html", After: "ppl/roe/b_2.html"},
		{Pointer: "@I3@", Kind: store.ChangeRemoved, Before: "ppl/doe/c_3.html"},
		{Pointer: "@I4@", Kind: store.ChangeAdded, After: "ppl/doe/d_4.html"},
	}
	if len(report.Changes) != len(want) {
		t.Fatalf("unexpected changes %+v", report.Changes)
	}
	for i := range want {
		if report.Changes[i] != want[i] {
			t.Fatalf("change %d = %+v, want %+v", i, report.Changes[i], want[i])
		}
	}
}

func TestCompareDetectsIDChange(t *testing.T) {
	before := []store.EntryRecord{{Pointer: "@I1@", PersonID: "aaa", LinkPath: "x"}}
	after := []store.EntryRecord{{Pointer: "@I1@", PersonID: "bbb", LinkPath: "y"}}
	changes := store.Compare(before, after)
	if len(changes) != 1 || changes[0].Kind != store.ChangeID {
		t.Fatalf("unexpected changes %+v", changes)
	}
}

func TestSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	s.Close()

	db, err := sql.Open("sqlite", cfg.HistoryDBPath())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := store.Open(cfg); !errors.Is(err, store.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
