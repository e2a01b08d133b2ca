package websocket

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"camviewer/internal/dto"
	"camviewer/internal/logger"
	"camviewer/internal/vision"

	"github.com/gorilla/websocket"
)

func startHub(t *testing.T) (*HubService, *httptest.Server) {
	t.Helper()

	hub := NewHubService(logger.Discard())
	go hub.Run()

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(conn)
		defer hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))

	t.Cleanup(func() {
		srv.Close()
		hub.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *HubService, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.GetClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients, have %d", n, hub.GetClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

type countingEncoder struct {
	calls int
}

func (e *countingEncoder) Encode(src vision.Frame) ([]byte, error) {
	e.calls++
	return []byte("jpeg"), nil
}

func TestHub_BroadcastReachesViewers(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	if !hub.Broadcast([]byte("hello")) {
		t.Fatal("Broadcast should be queued")
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}
	if string(msg) != "hello" {
		t.Errorf("Expected hello, got %q", msg)
	}
}

func TestHub_UnregisterOnDisconnect(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestHub_BroadcastNeverBlocks(t *testing.T) {
	hub := NewHubService(logger.Discard())

	queued := 0
	for i := 0; i < broadcastBuffer+3; i++ {
		if hub.Broadcast([]byte("x")) {
			queued++
		}
	}
	if queued != broadcastBuffer {
		t.Errorf("Expected %d queued messages without a running hub, got %d", broadcastBuffer, queued)
	}
}

func TestHub_CloseIsIdempotent(t *testing.T) {
	hub := NewHubService(logger.Discard())
	go hub.Run()

	hub.Close()
	hub.Close()
}

func TestMirror_SkipsEncodingWithoutViewers(t *testing.T) {
	hub := NewHubService(logger.Discard())
	enc := &countingEncoder{}
	m := NewMirror(hub, enc, 0, logger.Discard())

	m.Publish(vision.NewMockFrame(640, 480))

	if enc.calls != 0 {
		t.Errorf("Frame should not be encoded without viewers, got %d calls", enc.calls)
	}
}

func TestMirror_PublishesFrameMessage(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	m := NewMirror(hub, &countingEncoder{}, 2, logger.Discard())
	m.Publish(vision.NewMockFrame(640, 480))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}

	var msg dto.FrameMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("Invalid frame message: %v", err)
	}
	img, _ := base64.StdEncoding.DecodeString(msg.Image)
	if msg.Camera != "2" || string(img) != "jpeg" {
		t.Errorf("Unexpected frame message: camera=%q image=%q", msg.Camera, img)
	}
}

func TestMirror_CountsDroppedFrames(t *testing.T) {
	hub := NewHubService(logger.Discard())
	hub.clients[&websocket.Conn{}] = true
	m := NewMirror(hub, &countingEncoder{}, 0, logger.Discard())

	for i := 0; i < broadcastBuffer+2; i++ {
		m.Publish(vision.NewMockFrame(640, 480))
	}

	if m.Dropped() != 2 {
		t.Errorf("Expected 2 dropped frames, got %d", m.Dropped())
	}
}
