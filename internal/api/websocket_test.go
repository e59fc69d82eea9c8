package api

import (
	"encoding/base64"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWebSocket(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(s.Echo)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) outboundMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var msg outboundMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// readUntil skips messages until one of the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, wantType string) outboundMessage {
	t.Helper()
	for i := 0; i < 10; i++ {
		msg := readMessage(t, conn)
		if msg.Type == wantType {
			return msg
		}
	}
	t.Fatalf("no %q message received", wantType)
	return outboundMessage{}
}

func TestWebSocketSessionStarted(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	conn := dialWebSocket(t, s)

	msg := readMessage(t, conn)
	assert.Equal(t, "session_started", msg.Type)
	assert.NotEmpty(t, msg.SessionID)
}

func TestWebSocketPingPong(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	conn := dialWebSocket(t, s)
	readMessage(t, conn) // session_started

	require.NoError(t, conn.WriteJSON(inboundMessage{Type: "ping"}))
	msg := readMessage(t, conn)
	assert.Equal(t, "pong", msg.Type)
}

func TestWebSocketFrameFlow(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	conn := dialWebSocket(t, s)
	readMessage(t, conn) // session_started

	image := base64.StdEncoding.EncodeToString([]byte("frame-bytes"))
	require.NoError(t, conn.WriteJSON(inboundMessage{Type: "frame", Image: image}))

	// advisory boxes come before the authoritative result
	detections := readUntil(t, conn, "detections")
	assert.Len(t, detections.Detections, 1)

	recognition := readUntil(t, conn, "recognition")
	require.NotNil(t, recognition.Recognition)
	assert.Equal(t, "Perro", recognition.Recognition.Animal.Name)
	assert.True(t, recognition.Recognition.IsNewDiscovery)

	discovery := readUntil(t, conn, "discovery")
	require.NotNil(t, discovery.Discovery)
	assert.Equal(t, 1, discovery.Discovery.TotalCount)
}

func TestWebSocketInvalidFrame(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	conn := dialWebSocket(t, s)
	readMessage(t, conn) // session_started

	require.NoError(t, conn.WriteJSON(inboundMessage{Type: "frame", Image: "!!!not-base64!!!"}))
	msg := readUntil(t, conn, "error")
	assert.Equal(t, "INVALID_IMAGE", msg.Code)
}

func TestWebSocketGetDiscoveries(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	conn := dialWebSocket(t, s)
	readMessage(t, conn) // session_started

	image := base64.StdEncoding.EncodeToString([]byte("frame-bytes"))
	require.NoError(t, conn.WriteJSON(inboundMessage{Type: "frame", Image: image}))
	readUntil(t, conn, "discovery")

	require.NoError(t, conn.WriteJSON(inboundMessage{Type: "get_discoveries"}))
	msg := readUntil(t, conn, "discoveries")
	assert.Len(t, msg.Discoveries, 1)
}

func TestWebSocketUnknownMessage(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)
	conn := dialWebSocket(t, s)
	readMessage(t, conn) // session_started

	require.NoError(t, conn.WriteJSON(inboundMessage{Type: "bogus"}))
	msg := readUntil(t, conn, "error")
	assert.Equal(t, "UNKNOWN_MESSAGE", msg.Code)
}

func TestWebSocketDisconnectEndsSession(t *testing.T) {
	t.Parallel()
	s, store := newTestServer(t)
	conn := dialWebSocket(t, s)

	started := readMessage(t, conn)
	require.NoError(t, conn.Close())

	// session teardown is asynchronous with respect to the close frame
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		session, err := store.GetSession(started.SessionID)
		if err == nil && !session.IsActive {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("session was not ended on disconnect")
}
