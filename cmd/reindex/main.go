package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"camviewer/internal/config"
	"camviewer/internal/model"
	"camviewer/internal/repository"
	"camviewer/internal/repository/sqlite"
	"camviewer/internal/service/snapshot"
)

// Snapshots found on disk carry no session.
const reindexSession = "reindex"

func main() {
	cfg := config.Load()
	snapshotDir := flag.String("dir", cfg.SnapshotDir, "Directory containing snapshots")
	dbPath := flag.String("db", cfg.DatabasePath, "Database path")
	flag.Parse()

	fmt.Printf("Indexing snapshots from %s into %s\n", *snapshotDir, *dbPath)

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	added, skipped, err := reindex(*snapshotDir, sqlite.NewSnapshotRepository(db), cfg.CameraIndex)
	if err != nil {
		log.Fatalf("Failed to index snapshots: %v", err)
	}

	fmt.Printf("Indexed %d new snapshots\n", added)
	if skipped > 0 {
		fmt.Printf("Skipped %d files (already indexed, invalid name or errors)\n", skipped)
	}
}

// reindex adds every snapshot file in dir that the index does not know yet.
func reindex(dir string, repo repository.SnapshotRepository, cameraIndex int) (added, skipped int, err error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		n, err := snapshot.ParseFilename(file.Name())
		if err != nil {
			skipped++
			continue
		}

		exists, err := repo.Exists(file.Name())
		if err != nil {
			return added, skipped, err
		}
		if exists {
			skipped++
			continue
		}

		info, err := file.Info()
		if err != nil {
			log.Printf("Failed to get info for %s: %v", file.Name(), err)
			skipped++
			continue
		}

		if _, err := repo.Insert(&model.Snapshot{
			SessionID:   reindexSession,
			Filename:    file.Name(),
			CameraIndex: cameraIndex,
			Sequence:    n,
			Timestamp:   info.ModTime(),
			FilePath:    filepath.Join(dir, file.Name()),
			FileSize:    info.Size(),
		}); err != nil {
			return added, skipped, err
		}
		added++
	}

	return added, skipped, nil
}
