package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"camviewer/internal/dto"
	"camviewer/internal/model"
)

// ========================================
// Test helpers
// ========================================

func newTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func insertSnapshot(t *testing.T, repo *SnapshotRepository, session, filename string, seq int, ts time.Time) int64 {
	t.Helper()

	id, err := repo.Insert(&model.Snapshot{
		SessionID:   session,
		Filename:    filename,
		CameraIndex: 0,
		Sequence:    seq,
		Timestamp:   ts,
		FilePath:    filepath.Join("snapshots", filename),
		FileSize:    2048,
		Detection:   true,
	})
	if err != nil {
		t.Fatalf("Failed to insert snapshot %s: %v", filename, err)
	}
	return id
}

// ========================================
// Database Tests
// ========================================

func TestDatabase_CreatesFileAndDirectory(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "snapshots.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file should exist")
	}
}

func TestDatabase_MigrationIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 2; i++ {
		db, err := New(dbPath)
		if err != nil {
			t.Fatalf("Open %d failed: %v", i, err)
		}
		db.Close()
	}
}

// ========================================
// Snapshot Repository Tests
// ========================================

func TestSnapshotRepository_InsertAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewSnapshotRepository(db)

	ts := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	id := insertSnapshot(t, repo, "session-a", "snapshot_1.png", 1, ts)

	byID, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID == nil {
		t.Fatal("Expected snapshot, got nil")
	}
	if byID.Filename != "snapshot_1.png" || byID.Sequence != 1 || byID.SessionID != "session-a" {
		t.Errorf("Unexpected snapshot: %+v", byID)
	}
	if !byID.Detection || byID.Grayscale || byID.Flipped {
		t.Errorf("Mode flags not round-tripped: %+v", byID)
	}
	if !byID.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, expected %v", byID.Timestamp, ts)
	}

	byName, err := repo.GetByFilename("snapshot_1.png")
	if err != nil || byName == nil || byName.ID != id {
		t.Errorf("GetByFilename = %+v, %v", byName, err)
	}
}

func TestSnapshotRepository_NotFound(t *testing.T) {
	repo := NewSnapshotRepository(newTestDB(t))

	s, err := repo.GetByFilename("missing.png")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s != nil {
		t.Errorf("Expected nil for missing snapshot, got %+v", s)
	}

	exists, err := repo.Exists("missing.png")
	if err != nil || exists {
		t.Errorf("Exists(missing) = %v, %v", exists, err)
	}
}

func TestSnapshotRepository_DuplicateFilename(t *testing.T) {
	repo := NewSnapshotRepository(newTestDB(t))
	insertSnapshot(t, repo, "a", "snapshot_1.png", 1, time.Now())

	_, err := repo.Insert(&model.Snapshot{Filename: "snapshot_1.png", Timestamp: time.Now(), FilePath: "x"})
	if err == nil {
		t.Error("Expected unique constraint error for duplicate filename")
	}
}

func TestSnapshotRepository_GetAllWithFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewSnapshotRepository(db)
	regions := NewRegionRepository(db)

	base := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	first := insertSnapshot(t, repo, "a", "a_1.png", 1, base)
	insertSnapshot(t, repo, "a", "a_2.png", 2, base.Add(time.Minute))
	insertSnapshot(t, repo, "b", "b_1.png", 1, base.Add(2*time.Minute))

	if err := regions.InsertBatch([]model.Region{
		{SnapshotID: first, Label: "Face", X: 50, Y: 60, Width: 100, Height: 100},
		{SnapshotID: first, Label: "Eye", X: 65, Y: 80, Width: 25, Height: 25},
	}); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	all, err := repo.GetAll(dto.AllSnapshots())
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 snapshots, got %d", len(all))
	}
	if all[0].Filename != "b_1.png" {
		t.Errorf("Expected newest first, got %s", all[0].Filename)
	}

	tests := []struct {
		name     string
		filter   *dto.SnapshotFilters
		expected int
	}{
		{"session", &dto.SnapshotFilters{SessionID: "a", CameraIndex: -1}, 2},
		{"label", &dto.SnapshotFilters{Label: "Eye", CameraIndex: -1}, 1},
		{"camera", &dto.SnapshotFilters{CameraIndex: 3}, 0},
		{"after", &dto.SnapshotFilters{CameraIndex: -1, DateAfter: base.Add(30 * time.Second)}, 2},
		{"page", &dto.SnapshotFilters{CameraIndex: -1, Limit: 2, Offset: 2}, 1},
	}
	for _, tt := range tests {
		got, err := repo.GetAll(tt.filter)
		if err != nil {
			t.Fatalf("%s: GetAll failed: %v", tt.name, err)
		}
		if len(got) != tt.expected {
			t.Errorf("%s: expected %d snapshots, got %d", tt.name, tt.expected, len(got))
		}
	}

	count, err := repo.GetTotalCount(&dto.SnapshotFilters{CameraIndex: -1, Limit: 1})
	if err != nil {
		t.Fatalf("GetTotalCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Total count should ignore pagination, got %d", count)
	}
}

func TestSnapshotRepository_DeleteCascadesRegions(t *testing.T) {
	db := newTestDB(t)
	repo := NewSnapshotRepository(db)
	regions := NewRegionRepository(db)

	id := insertSnapshot(t, repo, "a", "snapshot_1.png", 1, time.Now())
	if err := regions.InsertBatch([]model.Region{{SnapshotID: id, Label: "Face"}}); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	if err := repo.DeleteByFilename("snapshot_1.png"); err != nil {
		t.Fatalf("DeleteByFilename failed: %v", err)
	}

	left, err := regions.GetBySnapshotID(id)
	if err != nil {
		t.Fatalf("GetBySnapshotID failed: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("Regions should be deleted with their snapshot, got %d", len(left))
	}
}

// ========================================
// Region Repository Tests
// ========================================

func TestRegionRepository_LabelsAndOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewSnapshotRepository(db)
	regions := NewRegionRepository(db)

	id := insertSnapshot(t, repo, "a", "snapshot_1.png", 1, time.Now())
	batch := []model.Region{
		{SnapshotID: id, Label: "Face", X: 50, Y: 60, Width: 100, Height: 100},
		{SnapshotID: id, Label: "Eye", X: 65, Y: 80, Width: 25, Height: 25},
		{SnapshotID: id, Label: "Eye", X: 110, Y: 80, Width: 25, Height: 25},
	}
	if err := regions.InsertBatch(batch); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	got, err := regions.GetBySnapshotID(id)
	if err != nil {
		t.Fatalf("GetBySnapshotID failed: %v", err)
	}
	if len(got) != 3 || got[0].Label != "Face" || got[2].X != 110 {
		t.Errorf("Unexpected regions: %+v", got)
	}

	labels, err := regions.GetLabelsBySnapshotID(id)
	if err != nil {
		t.Fatalf("GetLabelsBySnapshotID failed: %v", err)
	}
	if len(labels) != 2 || labels[0] != "Eye" || labels[1] != "Face" {
		t.Errorf("Expected [Eye Face], got %v", labels)
	}

	if err := regions.DeleteBySnapshotID(id); err != nil {
		t.Fatalf("DeleteBySnapshotID failed: %v", err)
	}
	if got, _ := regions.GetBySnapshotID(id); len(got) != 0 {
		t.Errorf("Expected no regions after delete, got %d", len(got))
	}
}

func TestRegionRepository_EmptyBatch(t *testing.T) {
	regions := NewRegionRepository(newTestDB(t))
	if err := regions.InsertBatch(nil); err != nil {
		t.Errorf("Empty batch should be a no-op, got %v", err)
	}
}
