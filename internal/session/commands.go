package session

import (
	"strings"
	"unicode"

	"camviewer/internal/service/snapshot"
	"camviewer/internal/vision"
)

// Action tells the loop whether to keep running after a command.
type Action int

const (
	ActionContinue Action = iota
	ActionQuit
)

const keyEscape rune = 27

// Command is one entry of the keyboard command table.
type Command struct {
	Keys  []rune // lower case; matching is case-insensitive
	Label string // how the keys are shown in the help
	Help  string
	Run   func(s *Session) Action
}

// Commands returns the keyboard command table in help order.
func Commands() []Command {
	return []Command{
		{Keys: []rune{'q', keyEscape}, Label: "Q / ESC", Help: "Quit", Run: (*Session).quit},
		{Keys: []rune{'e'}, Label: "E", Help: "Toggle face/eye detection on/off", Run: (*Session).toggleDetection},
		{Keys: []rune{'g'}, Label: "G", Help: "Toggle grayscale", Run: (*Session).toggleGrayscale},
		{Keys: []rune{'f'}, Label: "F", Help: "Toggle horizontal flip", Run: (*Session).toggleFlip},
		{Keys: []rune{'s'}, Label: "S", Help: "Save a snapshot of the current view", Run: (*Session).saveSnapshot},
		{Keys: []rune{'i'}, Label: "I", Help: "Print camera info", Run: (*Session).printInfo},
		{Keys: []rune{'h'}, Label: "H", Help: "Show this help", Run: (*Session).printHelp},
	}
}

func commandIndex(commands []Command) map[rune]Command {
	index := make(map[rune]Command, len(commands)+1)
	for _, c := range commands {
		for _, k := range c.Keys {
			index[k] = c
		}
	}
	return index
}

// Dispatch runs the command bound to key. Negative keys mean no key was
// pressed; unknown keys are ignored.
func (s *Session) Dispatch(key int) Action {
	if key < 0 {
		return ActionContinue
	}
	cmd, ok := s.commands[unicode.ToLower(rune(key&0xFF))]
	if !ok {
		return ActionContinue
	}
	return cmd.Run(s)
}

// HelpText renders the controls listing.
func HelpText(commands []Command) string {
	var b strings.Builder
	b.WriteString("\n=== Camera Viewer Controls ===\n")
	for _, c := range commands {
		b.WriteString("  ")
		b.WriteString(c.Label)
		b.WriteString(strings.Repeat(" ", max(1, 9-len(c.Label))))
		b.WriteString("- ")
		b.WriteString(c.Help)
		b.WriteString("\n")
	}
	b.WriteString("==============================\n")
	return b.String()
}

func (s *Session) quit() Action {
	s.logger.Info("Quitting.")
	return ActionQuit
}

func (s *Session) toggleDetection() Action {
	if s.detector == nil {
		s.logger.Warning("Detection is not available in this session")
		return ActionContinue
	}
	s.state.DetectionEnabled = !s.state.DetectionEnabled
	s.logger.Info("Eye detection: %s", onOff(s.state.DetectionEnabled))
	return ActionContinue
}

func (s *Session) toggleGrayscale() Action {
	s.state.Grayscale = !s.state.Grayscale
	s.logger.Info("Grayscale: %s", onOff(s.state.Grayscale))
	return ActionContinue
}

func (s *Session) toggleFlip() Action {
	s.state.Flipped = !s.state.Flipped
	s.logger.Info("Flip: %s", onOff(s.state.Flipped))
	return ActionContinue
}

func (s *Session) printInfo() Action {
	info := vision.ReadInfo(s.camera)
	s.logger.Info("Camera #%d info: resolution %d x %d, FPS %.1f", s.opts.CameraIndex, info.Width, info.Height, info.FPS)
	return ActionContinue
}

func (s *Session) printHelp() Action {
	s.logger.Info("%s", HelpText(Commands()))
	return ActionContinue
}

// saveSnapshot numbers successful snapshots from 1 per session and never
// looks at existing files, so a new session overwrites earlier snapshot_1,
// snapshot_2... A failed save does not use up a number.
func (s *Session) saveSnapshot() Action {
	n := s.state.SnapshotCounter + 1

	if s.snapshots == nil {
		s.logger.Warning("Snapshots are disabled in this session")
		return ActionContinue
	}
	if s.display == nil {
		s.logger.Warning("No frame to save for snapshot %d", n)
		return ActionContinue
	}

	path, err := s.snapshots.Save(n, s.display, snapshot.Meta{
		CameraIndex: s.opts.CameraIndex,
		Detection:   s.state.DetectionEnabled,
		Grayscale:   s.state.Grayscale,
		Flipped:     s.state.Flipped,
		Regions:     s.regions,
	})
	if err != nil {
		s.logger.Error("Snapshot %d failed: %v", n, err)
		return ActionContinue
	}

	s.state.SnapshotCounter = n
	s.logger.Info("Saved snapshot: %s", path)
	return ActionContinue
}
