package processor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/faunadex/faunadex-go/internal/errors"
	"github.com/faunadex/faunadex-go/internal/fauna"
	"github.com/faunadex/faunadex-go/internal/notification"
)

// activeSession is the actor owning one session. All frame processing for
// the session happens on its single goroutine, which makes the
// check-then-append discovery dedup safe without locking.
type activeSession struct {
	session  *fauna.UserSession
	frames   chan *fauna.ImageFrame
	quit     chan struct{}
	ended    atomic.Bool
	notifier *gatedNotifier
	limiter  *rate.Limiter
}

// gatedNotifier suppresses sends once the session has ended. An in-flight
// frame may still finish persistence after End, but its notifications are
// dropped.
type gatedNotifier struct {
	inner notification.Notifier
	ended *atomic.Bool
}

func (g *gatedNotifier) SendDetections(results []fauna.RecognitionResult) {
	if !g.ended.Load() {
		g.inner.SendDetections(results)
	}
}

func (g *gatedNotifier) SendRecognition(rec *notification.Recognition) {
	if !g.ended.Load() {
		g.inner.SendRecognition(rec)
	}
}

func (g *gatedNotifier) SendDiscovery(event *notification.DiscoveryEvent) {
	if !g.ended.Load() {
		g.inner.SendDiscovery(event)
	}
}

func (g *gatedNotifier) SendError(code, message string) {
	if !g.ended.Load() {
		g.inner.SendError(code, message)
	}
}

// SessionManager tracks active sessions and runs one actor goroutine per
// session.
type SessionManager struct {
	processor *Processor

	mu       sync.Mutex
	sessions map[string]*activeSession
}

// NewSessionManager creates a SessionManager.
func NewSessionManager(processor *Processor) *SessionManager {
	return &SessionManager{
		processor: processor,
		sessions:  make(map[string]*activeSession),
	}
}

// Start creates and persists a new session and spawns its actor. Events
// for the session are delivered through notifier until End.
func (m *SessionManager) Start(ctx context.Context, userID string, notifier notification.Notifier) (*fauna.UserSession, error) {
	session := fauna.NewSession(userID)
	if err := m.processor.Store.CreateSession(session); err != nil {
		return nil, err
	}

	settings := m.processor.Settings.Realtime.Session
	active := &activeSession{
		session: session,
		frames:  make(chan *fauna.ImageFrame, settings.QueueSize),
		quit:    make(chan struct{}),
	}
	active.notifier = &gatedNotifier{inner: notifier, ended: &active.ended}
	if settings.MaxFrameRate > 0 {
		active.limiter = rate.NewLimiter(rate.Limit(settings.MaxFrameRate), 1)
	}

	m.mu.Lock()
	m.sessions[session.ID] = active
	m.mu.Unlock()
	m.processor.Metrics.ActiveSessions.Inc()

	go m.run(ctx, active)

	logger.Info("session started", "session_id", session.ID, "user_id", userID)
	return session, nil
}

// run is the actor loop. Frames are processed one at a time in arrival
// order; a frame is never started before the previous one has completed
// persistence and notification.
func (m *SessionManager) run(ctx context.Context, active *activeSession) {
	// The actor is the only goroutine that touches the session entity
	// after Start; marking it ended here cannot race with an in-flight
	// ProcessFrame.
	defer active.session.End()

	idle := m.processor.Settings.Realtime.Session.IdleTimeout
	timer := time.NewTimer(idle)
	defer timer.Stop()

	for {
		select {
		case frame := <-active.frames:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(idle)

			if _, err := m.processor.ProcessFrame(ctx, active.session, frame, active.notifier); err != nil {
				active.notifier.SendError(errorCode(err), err.Error())
			}
		case <-timer.C:
			logger.Info("session idle, ending", "session_id", active.session.ID)
			if err := m.End(active.session.ID); err != nil {
				logger.Error("failed to end idle session",
					"session_id", active.session.ID,
					"error", err)
			}
			return
		case <-active.quit:
			return
		case <-ctx.Done():
			if err := m.End(active.session.ID); err != nil {
				logger.Error("failed to end session on context cancel",
					"session_id", active.session.ID,
					"error", err)
			}
			return
		}
	}
}

// Submit queues a frame for ordered processing. Frames above the rate
// limit or beyond the queue capacity are dropped silently, the stream is
// advisory and the client keeps sending.
func (m *SessionManager) Submit(sessionID string, frame *fauna.ImageFrame) error {
	m.mu.Lock()
	active, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok || active.ended.Load() {
		return fauna.ErrSessionNotFound
	}

	if active.limiter != nil && !active.limiter.Allow() {
		logger.Debug("frame dropped by rate limit", "session_id", sessionID)
		return nil
	}

	select {
	case active.frames <- frame:
		return nil
	default:
		logger.Debug("frame dropped, queue full", "session_id", sessionID)
		return nil
	}
}

// Get returns the in-memory session state.
func (m *SessionManager) Get(sessionID string) (*fauna.UserSession, error) {
	m.mu.Lock()
	active, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return nil, fauna.ErrSessionNotFound
	}
	return active.session, nil
}

// End terminates a session: notifications are suppressed immediately, the
// actor stops and the end time is persisted. End never waits for in-flight
// enrichment and is idempotent, ending an unknown or already ended session
// falls through to the persistence layer's idempotent EndSession.
func (m *SessionManager) End(sessionID string) error {
	m.mu.Lock()
	active, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if ok {
		if !active.ended.Swap(true) {
			// The actor marks the entity ended on its way out; mutating
			// it here would race with a frame still being processed.
			close(active.quit)
			m.processor.Metrics.ActiveSessions.Dec()
		}
	}

	if err := m.processor.Store.EndSession(sessionID); err != nil {
		if errors.Is(err, fauna.ErrSessionNotFound) && ok {
			return nil
		}
		return err
	}

	logger.Info("session ended", "session_id", sessionID)
	return nil
}

// ActiveCount returns the number of live sessions.
func (m *SessionManager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// errorCode maps pipeline errors to stable client facing codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, fauna.ErrModelNotReady):
		return "MODEL_NOT_READY"
	case errors.Is(err, fauna.ErrInvalidImage):
		return "INVALID_IMAGE"
	case errors.Is(err, fauna.ErrSessionNotFound):
		return "SESSION_NOT_FOUND"
	default:
		return "PROCESSING_ERROR"
	}
}
