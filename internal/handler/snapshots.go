package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"camviewer/internal/config"
	"camviewer/internal/dto"
	"camviewer/internal/logger"
	"camviewer/internal/repository"
	"camviewer/internal/service/snapshot"
)

const defaultPageSize = 24

// GetSnapshotsHandler returns a filtered, paginated list of indexed snapshots.
func GetSnapshotsHandler(cfg *config.Config, logger *logger.Logger,
	snapshotRepo repository.SnapshotRepository, regionRepo repository.RegionRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if snapshotRepo == nil {
			http.Error(w, "Snapshot index unavailable", http.StatusServiceUnavailable)
			return
		}

		q := r.URL.Query()
		page := atoiDefault(q.Get("page"), 1)
		limit := atoiDefault(q.Get("limit"), defaultPageSize)

		filter := &dto.SnapshotFilters{
			SessionID:   q.Get("session"),
			CameraIndex: cameraFilter(q.Get("camera")),
			Label:       q.Get("label"),
			DateAfter:   parseDate(q.Get("dateAfter")),
			DateBefore:  parseDate(q.Get("dateBefore")),
			Limit:       limit,
			Offset:      (page - 1) * limit,
		}

		snapshots, err := snapshotRepo.GetAll(filter)
		if err != nil {
			logger.Error("Error querying snapshots from database: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		totalCount, err := snapshotRepo.GetTotalCount(filter)
		if err != nil {
			logger.Error("Error counting snapshots: %v", err)
			totalCount = len(snapshots)
		}

		list := make([]dto.SnapshotInfo, 0, len(snapshots))
		for _, s := range snapshots {
			labels := []string{}
			if regionRepo != nil {
				if labels, err = regionRepo.GetLabelsBySnapshotID(s.ID); err != nil {
					logger.Error("Error getting labels for snapshot %d: %v", s.ID, err)
					labels = []string{}
				}
			}

			list = append(list, dto.SnapshotInfo{
				Name:        s.Filename,
				Session:     s.SessionID,
				CameraIndex: s.CameraIndex,
				Sequence:    s.Sequence,
				Taken:       s.Timestamp,
				Size:        s.FileSize,
				Labels:      labels,
			})
		}

		data := dto.SnapshotsData{
			Snapshots:   list,
			SnapshotDir: cfg.SnapshotDir,
			Length:      totalCount,
			TotalPages:  (totalCount + limit - 1) / limit,
			CurrentPage: page,
			Limit:       limit,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}

// ViewSnapshotHandler serves /snapshots/<file>. Only snapshot file names are
// accepted so the handler cannot leave the snapshot directory.
func ViewSnapshotHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/snapshots/")
		if _, err := snapshot.ParseFilename(name); err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(cfg.SnapshotDir, name))
	}
}

// DeleteSnapshotHandler removes a snapshot from disk and from the index.
func DeleteSnapshotHandler(cfg *config.Config, logger *logger.Logger,
	snapshotRepo repository.SnapshotRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete && r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		filename := r.URL.Query().Get("filename")
		if _, err := snapshot.ParseFilename(filename); err != nil {
			http.Error(w, "Valid snapshot filename required", http.StatusBadRequest)
			return
		}

		filePath := filepath.Join(cfg.SnapshotDir, filename)
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			logger.Error("Failed to delete file %s: %v", filePath, err)
		}

		if snapshotRepo != nil {
			if err := snapshotRepo.DeleteByFilename(filename); err != nil {
				logger.Error("Failed to delete from database: %v", err)
			}
		}

		logger.Info("Deleted snapshot: %s", filename)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "deleted", "filename": filename})
	}
}

// atoiDefault converts string to int or returns a default when conversion fails or value <= 0.
func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}

// cameraFilter parses a camera index; anything else matches every camera.
func cameraFilter(s string) int {
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return -1
}

// parseDate parses a date string in the format "2006-01-02" (HTML input format).
func parseDate(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}
	}
	return t
}
