package main

import (
	"os"
	"path/filepath"
	"testing"

	"camviewer/internal/repository/sqlite"
)

func TestReindex_AddsOnlyMissingSnapshots(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"snapshot_1.png", "snapshot_2.png", "notes.txt", "snapshot_x.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	db, err := sqlite.New(filepath.Join(dir, "index", "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	repo := sqlite.NewSnapshotRepository(db)

	added, skipped, err := reindex(dir, repo, 0)
	if err != nil {
		t.Fatalf("reindex failed: %v", err)
	}
	if added != 2 || skipped != 2 {
		t.Errorf("Expected 2 added and 2 skipped, got %d and %d", added, skipped)
	}

	s, err := repo.GetByFilename("snapshot_2.png")
	if err != nil || s == nil {
		t.Fatalf("snapshot_2.png not indexed: %v", err)
	}
	if s.Sequence != 2 || s.FileSize != 4 || s.SessionID != reindexSession {
		t.Errorf("Unexpected record: %+v", s)
	}

	added, skipped, err = reindex(dir, repo, 0)
	if err != nil || added != 0 || skipped != 4 {
		t.Errorf("Second run should add nothing, got added=%d skipped=%d err=%v", added, skipped, err)
	}
}
