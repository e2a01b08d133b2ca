package routes

import (
	"net/http"

	"camviewer/internal/config"
	"camviewer/internal/handler"
	"camviewer/internal/logger"
	"camviewer/internal/repository"
	ws "camviewer/internal/service/websocket"
)

// Deps are the services the HTTP routes expose. The repositories may be nil
// when the snapshot index could not be opened.
type Deps struct {
	Hub       *ws.HubService
	Snapshots repository.SnapshotRepository
	Regions   repository.RegionRepository
}

// SetupRoutes registers the live view, snapshot and log endpoints.
func SetupRoutes(cfg *config.Config, l *logger.Logger, deps Deps) http.Handler {
	mux := http.NewServeMux()

	// Live view
	mux.HandleFunc("/api/view", handler.ViewWebsocketHandler(deps.Hub, l))

	// Snapshots
	mux.HandleFunc("/api/snapshots", handler.GetSnapshotsHandler(cfg, l, deps.Snapshots, deps.Regions))
	mux.HandleFunc("/api/snapshots/delete", handler.DeleteSnapshotHandler(cfg, l, deps.Snapshots))
	mux.HandleFunc("/snapshots/", handler.ViewSnapshotHandler(cfg))

	// Log endpoints
	for path, file := range map[string]string{
		"/logs/info":    logger.InfoFile,
		"/logs/warning": logger.WarningFile,
		"/logs/error":   logger.ErrorFile,
	} {
		mux.HandleFunc(path, handler.ShowLogsHandler(l, file))
		mux.HandleFunc(path+"/clear", handler.ClearLogsHandler(l, file))
	}

	return mux
}
