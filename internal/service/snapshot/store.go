package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"camviewer/internal/detect"
	"camviewer/internal/logger"
	"camviewer/internal/model"
	"camviewer/internal/repository"
	"camviewer/internal/vision"
)

const (
	filePrefix = "snapshot_"
	fileExt    = ".png"
)

// Writer persists a frame as an image file.
type Writer interface {
	Write(path string, f vision.Frame) error
}

// Meta describes the session state a snapshot was taken in.
type Meta struct {
	CameraIndex int
	Detection   bool
	Grayscale   bool
	Flipped     bool
	Regions     []detect.Region
}

// Store saves display frames to the snapshot directory and indexes them.
type Store struct {
	dir        string
	sessionID  string
	writer     Writer
	logger     *logger.Logger
	snapshots  repository.SnapshotRepository
	regionRepo repository.RegionRepository
	now        func() time.Time
}

// NewStore creates a Store. The repositories may be nil, in which case
// snapshots are only written to disk.
func NewStore(dir, sessionID string, writer Writer, logger *logger.Logger,
	snapshots repository.SnapshotRepository, regions repository.RegionRepository) *Store {
	return &Store{
		dir:        dir,
		sessionID:  sessionID,
		writer:     writer,
		logger:     logger,
		snapshots:  snapshots,
		regionRepo: regions,
		now:        time.Now,
	}
}

// Filename returns the file name of the nth snapshot of a session.
func Filename(n int) string {
	return filePrefix + strconv.Itoa(n) + fileExt
}

// ParseFilename extracts the sequence number from a snapshot file name.
func ParseFilename(name string) (int, error) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileExt) {
		return 0, fmt.Errorf("invalid snapshot filename: %s", name)
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileExt))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid snapshot sequence in %s", name)
	}
	return n, nil
}

// Save writes f as the nth snapshot and returns its path. An existing file
// with the same name is overwritten. Index failures are logged, not returned:
// the file on disk is what the user asked for.
func (s *Store) Save(n int, f vision.Frame, meta Meta) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	filename := Filename(n)
	path := filepath.Join(s.dir, filename)

	if err := s.writer.Write(path, f); err != nil {
		return "", fmt.Errorf("failed to write snapshot %s: %w", filename, err)
	}

	if s.snapshots != nil {
		if err := s.index(n, filename, path, meta); err != nil {
			s.logger.Error("Error saving snapshot %s to database: %v", filename, err)
		}
	}

	return path, nil
}

// index records the snapshot, replacing the row of an overwritten file.
func (s *Store) index(n int, filename, path string, meta Meta) error {
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	if err := s.snapshots.DeleteByFilename(filename); err != nil {
		return err
	}

	id, err := s.snapshots.Insert(&model.Snapshot{
		SessionID:   s.sessionID,
		Filename:    filename,
		CameraIndex: meta.CameraIndex,
		Sequence:    n,
		Timestamp:   s.now(),
		FilePath:    path,
		FileSize:    size,
		Detection:   meta.Detection,
		Grayscale:   meta.Grayscale,
		Flipped:     meta.Flipped,
	})
	if err != nil {
		return err
	}

	if s.regionRepo == nil || len(meta.Regions) == 0 {
		return nil
	}

	rows := make([]model.Region, 0, len(meta.Regions))
	for _, r := range meta.Regions {
		rows = append(rows, model.Region{
			SnapshotID: id,
			Label:      r.Label,
			X:          r.Bounds.Min.X,
			Y:          r.Bounds.Min.Y,
			Width:      r.Bounds.Dx(),
			Height:     r.Bounds.Dy(),
		})
	}
	return s.regionRepo.InsertBatch(rows)
}
