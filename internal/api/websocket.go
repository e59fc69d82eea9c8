package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/faunadex/faunadex-go/internal/fauna"
	"github.com/faunadex/faunadex-go/internal/notification"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 1024,
	WriteBufferSize: 64 * 1024,
	// origin checks belong to the reverse proxy in this deployment
	CheckOrigin: func(*http.Request) bool { return true },
}

const (
	writeWait      = 10 * time.Second
	outboundBuffer = 64
)

// inboundMessage is a client to server frame on the stream.
type inboundMessage struct {
	Type  string `json:"type"`
	Image string `json:"image,omitempty"`
}

// outboundMessage is a server to client frame. Exactly one payload field is
// set depending on Type.
type outboundMessage struct {
	Type        string                       `json:"type"`
	SessionID   string                       `json:"session_id,omitempty"`
	Detections  []fauna.RecognitionResult    `json:"detections,omitempty"`
	Recognition *notification.Recognition    `json:"recognition,omitempty"`
	Discovery   *notification.DiscoveryEvent `json:"discovery,omitempty"`
	Discoveries []*fauna.Discovery           `json:"discoveries,omitempty"`
	Code        string                       `json:"code,omitempty"`
	Message     string                       `json:"message,omitempty"`
}

// wsNotifier delivers pipeline events into the connection's outbound
// queue. Sends never block the pipeline: a full queue drops the event.
type wsNotifier struct {
	outbound chan outboundMessage
}

func (n *wsNotifier) send(msg outboundMessage) {
	select {
	case n.outbound <- msg:
	default:
		logger.Warn("outbound queue full, event dropped", "type", msg.Type)
	}
}

func (n *wsNotifier) SendDetections(results []fauna.RecognitionResult) {
	n.send(outboundMessage{Type: "detections", Detections: results})
}

func (n *wsNotifier) SendRecognition(rec *notification.Recognition) {
	n.send(outboundMessage{Type: "recognition", Recognition: rec})
}

func (n *wsNotifier) SendDiscovery(event *notification.DiscoveryEvent) {
	n.send(outboundMessage{Type: "discovery", Discovery: event})
}

func (n *wsNotifier) SendError(code, message string) {
	n.send(outboundMessage{Type: "error", Code: code, Message: message})
}

// handleWebSocket runs one client stream: a session is started on connect
// and ended on disconnect. A single writer goroutine serializes outbound
// messages so event order is preserved, and slow inference never stalls
// ping handling because frames are processed on the session actor, not
// here.
func (s *Server) handleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	notifier := &wsNotifier{outbound: make(chan outboundMessage, outboundBuffer)}

	session, err := s.Sessions.Start(c.Request().Context(), c.QueryParam("user_id"), notifier)
	if err != nil {
		logger.Error("failed to start session", "error", err)
		return nil
	}
	defer func() {
		if err := s.Sessions.End(session.ID); err != nil {
			logger.Error("failed to end session", "session_id", session.ID, "error", err)
		}
	}()

	writerDone := make(chan struct{})
	go s.writeLoop(conn, notifier.outbound, writerDone)
	defer close(writerDone)

	notifier.send(outboundMessage{Type: "session_started", SessionID: session.ID})

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", "session_id", session.ID, "error", err)
			}
			return nil
		}

		switch msg.Type {
		case "frame":
			s.handleFrame(session.ID, msg.Image, notifier)
		case "ping":
			notifier.send(outboundMessage{Type: "pong"})
		case "get_discoveries":
			s.handleGetDiscoveries(session.ID, notifier)
		default:
			notifier.send(outboundMessage{
				Type: "error", Code: "UNKNOWN_MESSAGE",
				Message: "unknown message type: " + msg.Type,
			})
		}
	}
}

// handleFrame decodes and enqueues a camera frame. Decode errors are
// reported on the stream, they do not tear the connection down.
func (s *Server) handleFrame(sessionID, image string, notifier *wsNotifier) {
	frame, err := fauna.FrameFromBase64(image)
	if err != nil {
		notifier.send(outboundMessage{
			Type: "error", Code: "INVALID_IMAGE",
			Message: "could not decode frame payload",
		})
		return
	}
	if err := s.Sessions.Submit(sessionID, frame); err != nil {
		notifier.send(outboundMessage{
			Type: "error", Code: "SESSION_NOT_FOUND",
			Message: "session is not active",
		})
	}
}

func (s *Server) handleGetDiscoveries(sessionID string, notifier *wsNotifier) {
	discoveries, err := s.Store.GetDiscoveriesBySession(sessionID)
	if err != nil {
		notifier.send(outboundMessage{
			Type: "error", Code: "PROCESSING_ERROR",
			Message: "could not load discoveries",
		})
		return
	}
	notifier.send(outboundMessage{Type: "discoveries", Discoveries: discoveries})
}

// writeLoop is the single writer for one connection.
func (s *Server) writeLoop(conn *websocket.Conn, outbound <-chan outboundMessage, done <-chan struct{}) {
	for {
		select {
		case msg := <-outbound:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				logger.Debug("websocket write failed", "error", err)
				return
			}
		case <-done:
			return
		}
	}
}
