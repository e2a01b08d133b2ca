package sqlite

import (
	"database/sql"
	"fmt"

	"camviewer/internal/dto"
	"camviewer/internal/model"
)

const snapshotColumns = `id, session_id, filename, camera_index, sequence, timestamp, filepath, filesize, detection, grayscale, flipped`

// SnapshotRepository implements repository.SnapshotRepository for SQLite.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SQLite snapshot repository.
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Insert adds a new snapshot record to the database.
func (r *SnapshotRepository) Insert(s *model.Snapshot) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO snapshots (session_id, filename, camera_index, sequence, timestamp, filepath, filesize, detection, grayscale, flipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.SessionID, s.Filename, s.CameraIndex, s.Sequence, s.Timestamp, s.FilePath, s.FileSize, s.Detection, s.Grayscale, s.Flipped)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return result.LastInsertId()
}

// GetByID retrieves a snapshot by its ID.
func (r *SnapshotRepository) GetByID(id int64) (*model.Snapshot, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	row := r.db.Conn().QueryRow(`SELECT `+snapshotColumns+` FROM snapshots WHERE id = ?`, id)
	return scanSnapshotRow(row)
}

// GetByFilename retrieves a snapshot by its filename.
func (r *SnapshotRepository) GetByFilename(filename string) (*model.Snapshot, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	row := r.db.Conn().QueryRow(`SELECT `+snapshotColumns+` FROM snapshots WHERE filename = ?`, filename)
	return scanSnapshotRow(row)
}

// GetAll retrieves snapshots based on filter criteria, newest first.
func (r *SnapshotRepository) GetAll(filter *dto.SnapshotFilters) ([]model.Snapshot, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	where, args := buildWhere(filter)
	query := `SELECT DISTINCT s.id, s.session_id, s.filename, s.camera_index, s.sequence, s.timestamp,
		s.filepath, s.filesize, s.detection, s.grayscale, s.flipped
		FROM snapshots s
		LEFT JOIN regions g ON s.id = g.snapshot_id
		WHERE 1=1` + where + ` ORDER BY s.timestamp DESC, s.id DESC`

	if filter != nil && filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []model.Snapshot
	for rows.Next() {
		var s model.Snapshot
		if err := rows.Scan(&s.ID, &s.SessionID, &s.Filename, &s.CameraIndex, &s.Sequence, &s.Timestamp,
			&s.FilePath, &s.FileSize, &s.Detection, &s.Grayscale, &s.Flipped); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}

// GetTotalCount returns the number of snapshots matching the filter, ignoring pagination.
func (r *SnapshotRepository) GetTotalCount(filter *dto.SnapshotFilters) (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	where, args := buildWhere(filter)
	query := `SELECT COUNT(DISTINCT s.id) FROM snapshots s
		LEFT JOIN regions g ON s.id = g.snapshot_id
		WHERE 1=1` + where

	var count int
	if err := r.db.Conn().QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}

// Exists checks whether a snapshot with the given filename is indexed.
func (r *SnapshotRepository) Exists(filename string) (bool, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM snapshots WHERE filename = ?`, filename).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check snapshot: %w", err)
	}
	return count > 0, nil
}

// Delete removes a snapshot record and, through the foreign key, its regions.
func (r *SnapshotRepository) Delete(id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM snapshots WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// DeleteByFilename removes a snapshot record by filename.
func (r *SnapshotRepository) DeleteByFilename(filename string) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM snapshots WHERE filename = ?`, filename); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func buildWhere(filter *dto.SnapshotFilters) (string, []interface{}) {
	if filter == nil {
		return "", nil
	}

	where := ""
	args := []interface{}{}

	if filter.SessionID != "" {
		where += " AND s.session_id = ?"
		args = append(args, filter.SessionID)
	}

	if filter.CameraIndex >= 0 {
		where += " AND s.camera_index = ?"
		args = append(args, filter.CameraIndex)
	}

	if filter.Label != "" {
		where += " AND g.label = ?"
		args = append(args, filter.Label)
	}

	if !filter.DateAfter.IsZero() {
		where += " AND s.timestamp >= ?"
		args = append(args, filter.DateAfter)
	}

	if !filter.DateBefore.IsZero() {
		where += " AND s.timestamp <= ?"
		args = append(args, filter.DateBefore)
	}

	return where, args
}

func scanSnapshotRow(row *sql.Row) (*model.Snapshot, error) {
	var s model.Snapshot
	err := row.Scan(&s.ID, &s.SessionID, &s.Filename, &s.CameraIndex, &s.Sequence, &s.Timestamp,
		&s.FilePath, &s.FileSize, &s.Detection, &s.Grayscale, &s.Flipped)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return &s, nil
}
