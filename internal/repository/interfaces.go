package repository

import (
	"camviewer/internal/dto"
	"camviewer/internal/model"
)

// SnapshotRepository defines the interface for snapshot data operations.
type SnapshotRepository interface {
	// Create operations
	Insert(s *model.Snapshot) (int64, error)

	// Read operations
	GetByID(id int64) (*model.Snapshot, error)
	GetByFilename(filename string) (*model.Snapshot, error)
	GetAll(filter *dto.SnapshotFilters) ([]model.Snapshot, error)
	GetTotalCount(filter *dto.SnapshotFilters) (int, error)
	Exists(filename string) (bool, error)

	// Delete operations
	Delete(id int64) error
	DeleteByFilename(filename string) error
}

// RegionRepository defines the interface for snapshot region operations.
type RegionRepository interface {
	// Create operations
	InsertBatch(regions []model.Region) error

	// Read operations
	GetBySnapshotID(snapshotID int64) ([]model.Region, error)
	GetLabelsBySnapshotID(snapshotID int64) ([]string, error)

	// Delete operations
	DeleteBySnapshotID(snapshotID int64) error
}
