// Package session runs the interactive capture loop: read a frame, render
// the display frame for the current mode, show it, poll one key, dispatch it.
package session

import (
	"time"

	"github.com/google/uuid"

	"camviewer/internal/detect"
	"camviewer/internal/logger"
	"camviewer/internal/service/snapshot"
	"camviewer/internal/vision"
)

// StopReason says why Run returned.
type StopReason int

const (
	StopQuit StopReason = iota
	StopDisconnected
)

func (r StopReason) String() string {
	if r == StopQuit {
		return "quit"
	}
	return "disconnected"
}

// RegionDetector finds regions on a normalized frame.
type RegionDetector interface {
	Detect(gray vision.Frame) ([]detect.Region, error)
}

// SnapshotSaver persists the nth snapshot of the session.
type SnapshotSaver interface {
	Save(n int, f vision.Frame, meta snapshot.Meta) (string, error)
}

// FrameSink receives every display frame after it was shown.
type FrameSink interface {
	Publish(f vision.Frame)
}

// Options configure a Session.
type Options struct {
	ID               string // generated when empty
	CameraIndex      int
	KeyWait          time.Duration
	DetectionEnabled bool
}

// Deps are the collaborators a Session drives. Detector, Snapshots and Sink
// are optional.
type Deps struct {
	Camera    vision.Camera
	Imaging   vision.Imaging
	Surface   vision.Surface
	Detector  RegionDetector
	Snapshots SnapshotSaver
	Sink      FrameSink
	Logger    *logger.Logger
}

// Session is a single-threaded capture loop over one open camera. It does
// not own the camera or the surface; whoever opened them closes them.
type Session struct {
	opts      Options
	camera    vision.Camera
	imaging   vision.Imaging
	surface   vision.Surface
	detector  RegionDetector
	snapshots SnapshotSaver
	sink      FrameSink
	logger    *logger.Logger
	commands  map[rune]Command

	state State

	// display frame and regions of the iteration in progress
	display vision.Frame
	regions []detect.Region
}

// New creates a Session.
func New(opts Options, deps Deps) *Session {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}

	return &Session{
		opts:      opts,
		camera:    deps.Camera,
		imaging:   deps.Imaging,
		surface:   deps.Surface,
		detector:  deps.Detector,
		snapshots: deps.Snapshots,
		sink:      deps.Sink,
		logger:    deps.Logger,
		commands:  commandIndex(Commands()),
		state: State{
			DetectionEnabled: opts.DetectionEnabled && deps.Detector != nil,
		},
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.opts.ID
}

// State returns a copy of the current mode.
func (s *Session) State() State {
	return s.state
}

// Run loops until the user quits or the camera stops delivering frames.
func (s *Session) Run() StopReason {
	s.logger.Info("Session %s started on camera #%d", s.opts.ID, s.opts.CameraIndex)
	s.printHelp()
	s.printInfo()

	for {
		frame, err := s.camera.Read()
		if err != nil || frame == nil || frame.Empty() {
			if frame != nil {
				frame.Close()
			}
			if err == nil {
				err = vision.ErrEmptyFrame
			}
			s.logger.Warning("Camera #%d: %v, stopping session", s.opts.CameraIndex, err)
			return StopDisconnected
		}

		if s.step(frame) == ActionQuit {
			return StopQuit
		}
	}
}

// step renders, shows and handles input for one acquired frame.
func (s *Session) step(frame vision.Frame) Action {
	defer frame.Close()

	display, regions, err := s.render(frame)
	if err != nil {
		s.logger.Error("Failed to render frame: %v", err)
	}
	if display != nil {
		defer display.Close()

		if err := s.surface.Show(display); err != nil {
			s.logger.Error("Failed to show frame: %v", err)
		}
		if s.sink != nil {
			s.sink.Publish(display)
		}
	}

	s.display, s.regions = display, regions
	defer func() { s.display, s.regions = nil, nil }()

	return s.Dispatch(s.surface.PollKey(s.opts.KeyWait))
}
