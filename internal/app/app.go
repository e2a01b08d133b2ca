package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"camviewer/internal/config"
	"camviewer/internal/detect"
	"camviewer/internal/logger"
	"camviewer/internal/repository"
	"camviewer/internal/repository/sqlite"
	"camviewer/internal/routes"
	"camviewer/internal/service/snapshot"
	ws "camviewer/internal/service/websocket"
	"camviewer/internal/session"
	"camviewer/internal/vision"
)

var (
	ErrInvalidIndex = errors.New("invalid camera index")
	ErrCascadeLoad  = errors.New("failed to load cascade")
	ErrCameraOpen   = errors.New("could not open camera")
)

const shutdownTimeout = 3 * time.Second

// Backend opens the devices a viewer session runs on.
type Backend interface {
	LoadCascade(path string) (vision.Classifier, error)
	OpenCamera(index int) (vision.Camera, error)
	NewSurface(name string) (vision.Surface, error)
	Imaging() vision.Imaging
}

type App struct {
	config  *config.Config
	logger  *logger.Logger
	backend Backend
}

func NewApp(cfg *config.Config, logger *logger.Logger, backend Backend) *App {
	return &App{
		config:  cfg,
		logger:  logger,
		backend: backend,
	}
}

// ParseCameraIndex returns the index given as the single positional argument,
// or def when there is none.
func ParseCameraIndex(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("%w: expected one argument, got %d", ErrInvalidIndex, len(args))
	}
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, args[0])
	}
	return index, nil
}

// Run opens everything a session needs on camera index, runs it and
// releases it all again. Cascades are loaded before the camera is opened
// and no window is created unless the camera opened.
func (a *App) Run(index int) (session.StopReason, error) {
	detector, err := a.loadDetector()
	if err != nil {
		return session.StopQuit, err
	}
	defer detector.Close()

	camera, err := a.backend.OpenCamera(index)
	if err != nil {
		return session.StopQuit, fmt.Errorf("%w index %d: %v", ErrCameraOpen, index, err)
	}
	defer camera.Close()

	camera.Set(vision.PropFPS, a.config.CameraFPS)

	surface, err := a.backend.NewSurface(a.config.WindowName)
	if err != nil {
		return session.StopQuit, fmt.Errorf("failed to create window: %w", err)
	}
	defer surface.Close()

	sessionID := uuid.NewString()
	imaging := a.backend.Imaging()

	snapshots, regions, closeIndex := a.openIndex()
	defer closeIndex()

	deps := session.Deps{
		Camera:    camera,
		Imaging:   imaging,
		Surface:   surface,
		Detector:  detector,
		Snapshots: snapshot.NewStore(a.config.SnapshotDir, sessionID, imaging, a.logger, snapshots, regions),
		Logger:    a.logger,
	}

	if a.config.ViewerPort > 0 {
		hub := ws.NewHubService(a.logger)
		mirror := ws.NewMirror(hub, imaging, index, a.logger)
		stop := a.startMirror(hub, mirror, snapshots, regions)
		defer stop()
		deps.Sink = mirror
	}

	s := session.New(session.Options{
		ID:               sessionID,
		CameraIndex:      index,
		KeyWait:          time.Duration(a.config.KeyWaitMs) * time.Millisecond,
		DetectionEnabled: a.config.DetectionEnabled,
	}, deps)

	reason := s.Run()
	a.logger.Info("Session %s ended: %s", sessionID, reason)
	return reason, nil
}

func (a *App) loadDetector() (*detect.Detector, error) {
	facePath := a.config.FaceCascadePath()
	faces, err := a.backend.LoadCascade(facePath)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCascadeLoad, facePath, err)
	}

	eyePath := a.config.EyeCascadePath()
	eyes, err := a.backend.LoadCascade(eyePath)
	if err != nil {
		faces.Close()
		return nil, fmt.Errorf("%w %s: %v", ErrCascadeLoad, eyePath, err)
	}

	return detect.New(faces, eyes, a.detectConfig()), nil
}

func (a *App) detectConfig() detect.Config {
	c := a.config
	return detect.Config{
		Face: vision.DetectParams{
			ScaleFactor:  c.FaceScale,
			MinNeighbors: c.FaceMinNeighbors,
			MinSize:      image.Pt(c.FaceMinSize, c.FaceMinSize),
		},
		Eye: vision.DetectParams{
			ScaleFactor:  c.EyeScale,
			MinNeighbors: c.EyeMinNeighbors,
			MinSize:      image.Pt(c.EyeMinSize, c.EyeMinSize),
		},
		EyeBandRatio: c.EyeBandRatio,
	}
}

// openIndex opens the snapshot database. Without it snapshots are still
// written, just not indexed.
func (a *App) openIndex() (repository.SnapshotRepository, repository.RegionRepository, func()) {
	if a.config.DatabasePath == "" {
		return nil, nil, func() {}
	}

	db, err := sqlite.New(a.config.DatabasePath)
	if err != nil {
		a.logger.Warning("Snapshot index disabled: %v", err)
		return nil, nil, func() {}
	}

	return sqlite.NewSnapshotRepository(db), sqlite.NewRegionRepository(db), func() {
		if err := db.Close(); err != nil {
			a.logger.Error("Failed to close snapshot index: %v", err)
		}
	}
}

// startMirror serves the live view and snapshot API until the returned stop
// function is called.
func (a *App) startMirror(hub *ws.HubService, mirror *ws.Mirror, snapshots repository.SnapshotRepository, regions repository.RegionRepository) func() {
	go hub.Run()

	server := &http.Server{
		Addr: fmt.Sprintf(":%d", a.config.ViewerPort),
		Handler: routes.SetupRoutes(a.config, a.logger, routes.Deps{
			Hub:       hub,
			Snapshots: snapshots,
			Regions:   regions,
		}),
	}

	go func() {
		a.logger.Info("Live view: http://localhost:%d/api/view", a.config.ViewerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Live view server failed: %v", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			a.logger.Warning("Live view server shutdown: %v", err)
		}
		hub.Close()
		if dropped := mirror.Dropped(); dropped > 0 {
			a.logger.Warning("Live view dropped %d frames for slow viewers", dropped)
		}
	}
}
