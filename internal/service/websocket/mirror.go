// Package websocket mirrors the viewer window to browsers over WebSocket.
package websocket

import (
	"encoding/base64"
	"encoding/json"
	"strconv"

	"camviewer/internal/dto"
	"camviewer/internal/logger"
	"camviewer/internal/vision"
)

// Encoder turns a frame into image bytes.
type Encoder interface {
	Encode(src vision.Frame) ([]byte, error)
}

// Mirror publishes display frames to the hub as dto.FrameMessage JSON.
type Mirror struct {
	hub     *HubService
	encoder Encoder
	camera  string
	logger  *logger.Logger
	dropped int
}

func NewMirror(hub *HubService, encoder Encoder, cameraIndex int, logger *logger.Logger) *Mirror {
	return &Mirror{
		hub:     hub,
		encoder: encoder,
		camera:  strconv.Itoa(cameraIndex),
		logger:  logger,
	}
}

// Publish encodes f only when somebody is watching.
func (m *Mirror) Publish(f vision.Frame) {
	if m.hub.GetClientCount() == 0 {
		return
	}

	img, err := m.encoder.Encode(f)
	if err != nil {
		m.logger.Error("Failed to encode frame for viewers: %v", err)
		return
	}

	msg, err := json.Marshal(dto.FrameMessage{
		Camera: m.camera,
		Image:  base64.StdEncoding.EncodeToString(img),
	})
	if err != nil {
		m.logger.Error("Failed to marshal frame message: %v", err)
		return
	}

	if !m.hub.Broadcast(msg) {
		m.dropped++
	}
}

// Dropped returns how many frames were skipped because viewers lagged behind.
func (m *Mirror) Dropped() int {
	return m.dropped
}
