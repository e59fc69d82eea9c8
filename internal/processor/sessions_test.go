package processor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faunadex/faunadex-go/internal/fauna"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func newTestManager(t *testing.T, detector *stubDetector, resolver *stubResolver) (*SessionManager, *Processor) {
	t.Helper()
	p, _ := newTestProcessor(t, detector, resolver)
	return NewSessionManager(p), p
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()
	m, p := newTestManager(t, &stubDetector{ready: true, detections: dogDetections()}, &stubResolver{animal: dogAnimal()})
	notifier := &recordingNotifier{}

	session, err := m.Start(context.Background(), "user-1", notifier)
	require.NoError(t, err)
	assert.True(t, session.IsActive)
	assert.Equal(t, 1, m.ActiveCount())

	require.NoError(t, m.Submit(session.ID, &fauna.ImageFrame{Data: []byte("x")}))
	waitFor(t, func() bool { return len(notifier.list()) >= 3 })
	assert.Equal(t, []string{"detections", "recognition", "discovery"}, notifier.list()[:3])

	require.NoError(t, m.End(session.ID))
	assert.Zero(t, m.ActiveCount())

	persisted, err := p.Store.GetSession(session.ID)
	require.NoError(t, err)
	assert.False(t, persisted.IsActive)
	assert.NotNil(t, persisted.EndedAt)
}

func TestSubmitAfterEnd(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(t, &stubDetector{ready: true}, &stubResolver{animal: dogAnimal()})

	session, err := m.Start(context.Background(), "", &recordingNotifier{})
	require.NoError(t, err)
	require.NoError(t, m.End(session.ID))

	err = m.Submit(session.ID, &fauna.ImageFrame{Data: []byte("x")})
	assert.ErrorIs(t, err, fauna.ErrSessionNotFound)
}

func TestEndIsIdempotent(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(t, &stubDetector{ready: true}, &stubResolver{animal: dogAnimal()})

	session, err := m.Start(context.Background(), "", &recordingNotifier{})
	require.NoError(t, err)

	require.NoError(t, m.End(session.ID))
	require.NoError(t, m.End(session.ID), "ending twice must not error")
}

// Ending a session while the actor is still inside ProcessFrame must not
// touch session state from two goroutines at once.
func TestEndDuringFrameProcessing(t *testing.T) {
	t.Parallel()
	det := &stubDetector{ready: true, detections: dogDetections(), delay: 50 * time.Millisecond}
	m, p := newTestManager(t, det, &stubResolver{animal: dogAnimal()})
	notifier := &recordingNotifier{}

	session, err := m.Start(context.Background(), "", notifier)
	require.NoError(t, err)

	require.NoError(t, m.Submit(session.ID, &fauna.ImageFrame{Data: []byte("x")}))
	time.Sleep(10 * time.Millisecond) // let the actor pick up the frame
	require.NoError(t, m.End(session.ID))

	persisted, err := p.Store.GetSession(session.ID)
	require.NoError(t, err)
	assert.False(t, persisted.IsActive)

	// The in-flight frame finishes after End; its events are suppressed.
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, notifier.list())
}

func TestEndUnknownSession(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(t, &stubDetector{ready: true}, &stubResolver{animal: dogAnimal()})

	err := m.End("no-such-session")
	assert.ErrorIs(t, err, fauna.ErrSessionNotFound)
}

func TestNotificationsSuppressedAfterEnd(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(t, &stubDetector{ready: true, detections: dogDetections()}, &stubResolver{animal: dogAnimal()})
	notifier := &recordingNotifier{}

	session, err := m.Start(context.Background(), "", notifier)
	require.NoError(t, err)
	require.NoError(t, m.End(session.ID))

	// a gated notifier drops everything once the session ended
	var ended atomic.Bool
	ended.Store(true)
	gated := &gatedNotifier{inner: notifier, ended: &ended}
	gated.SendDetections(nil)
	gated.SendError("X", "y")
	assert.Empty(t, notifier.list())
}

func TestFramesProcessedInOrder(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(t, &stubDetector{ready: true, detections: dogDetections()}, &stubResolver{animal: dogAnimal()})
	notifier := &recordingNotifier{}

	session, err := m.Start(context.Background(), "", notifier)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, m.Submit(session.ID, &fauna.ImageFrame{Data: []byte("x")}))
	}

	// first frame discovers, the rest only recognize
	waitFor(t, func() bool { return len(notifier.list()) >= 7 })
	assert.Equal(t, []string{
		"detections", "recognition", "discovery",
		"detections", "recognition",
		"detections", "recognition",
	}, notifier.list())
}

func TestIdleTimeoutEndsSession(t *testing.T) {
	t.Parallel()
	p, _ := newTestProcessor(t, &stubDetector{ready: true}, &stubResolver{animal: dogAnimal()})
	p.Settings.Realtime.Session.IdleTimeout = 50 * time.Millisecond
	m := NewSessionManager(p)

	session, err := m.Start(context.Background(), "", &recordingNotifier{})
	require.NoError(t, err)

	waitFor(t, func() bool { return m.ActiveCount() == 0 })

	persisted, err := p.Store.GetSession(session.ID)
	require.NoError(t, err)
	assert.False(t, persisted.IsActive)
}
