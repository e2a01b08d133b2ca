package sqlite

import (
	"fmt"

	"camviewer/internal/model"
)

// RegionRepository implements repository.RegionRepository for SQLite.
type RegionRepository struct {
	db *DB
}

// NewRegionRepository creates a new SQLite region repository.
func NewRegionRepository(db *DB) *RegionRepository {
	return &RegionRepository{db: db}
}

// InsertBatch adds multiple regions in a single transaction.
func (r *RegionRepository) InsertBatch(regions []model.Region) error {
	if len(regions) == 0 {
		return nil
	}

	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO regions (snapshot_id, label, x, y, width, height)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, reg := range regions {
		if _, err := stmt.Exec(reg.SnapshotID, reg.Label, reg.X, reg.Y, reg.Width, reg.Height); err != nil {
			return fmt.Errorf("failed to insert region: %w", err)
		}
	}

	return tx.Commit()
}

// GetBySnapshotID retrieves all regions of a snapshot in insertion order.
func (r *RegionRepository) GetBySnapshotID(snapshotID int64) ([]model.Region, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, snapshot_id, label, x, y, width, height
		FROM regions WHERE snapshot_id = ? ORDER BY id
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query regions: %w", err)
	}
	defer rows.Close()

	var regions []model.Region
	for rows.Next() {
		var reg model.Region
		if err := rows.Scan(&reg.ID, &reg.SnapshotID, &reg.Label, &reg.X, &reg.Y, &reg.Width, &reg.Height); err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, reg)
	}

	return regions, rows.Err()
}

// GetLabelsBySnapshotID returns the distinct labels visible in a snapshot.
func (r *RegionRepository) GetLabelsBySnapshotID(snapshotID int64) ([]string, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`SELECT DISTINCT label FROM regions WHERE snapshot_id = ? ORDER BY label`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, label)
	}

	return labels, rows.Err()
}

// DeleteBySnapshotID removes all regions of a snapshot.
func (r *RegionRepository) DeleteBySnapshotID(snapshotID int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM regions WHERE snapshot_id = ?`, snapshotID); err != nil {
		return fmt.Errorf("failed to delete regions: %w", err)
	}
	return nil
}
