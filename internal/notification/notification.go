// Package notification defines the outbound event contract of the
// recognition pipeline and its publishers. Within a session events are
// delivered in processing order and the detections event for a frame
// always precedes that frame's recognition event.
package notification

import (
	"github.com/faunadex/faunadex-go/internal/fauna"
)

// Recognition is the authoritative per-frame outcome sent to clients.
type Recognition struct {
	Animal          *fauna.Animal `json:"animal"`
	Confidence      float64       `json:"confidence"`
	ConfidenceLevel string        `json:"confidence_level"`
	Method          string        `json:"method"`
	IsNewDiscovery  bool          `json:"is_new_discovery"`
	FunFact         string        `json:"fun_fact,omitempty"`
}

// DiscoveryEvent announces a first sighting within a session.
type DiscoveryEvent struct {
	Discovery  *fauna.Discovery `json:"discovery"`
	Animal     *fauna.Animal    `json:"animal"`
	TotalCount int              `json:"total_count"`
}

// Notifier receives pipeline events for one session. Implementations must
// not block the caller beyond a bounded send; dropped events are logged,
// never retried.
type Notifier interface {
	SendDetections(results []fauna.RecognitionResult)
	SendRecognition(rec *Recognition)
	SendDiscovery(event *DiscoveryEvent)
	SendError(code, message string)
}

// Discard is a Notifier that drops every event, used for single image
// recognition where no stream is attached.
type Discard struct{}

func (Discard) SendDetections([]fauna.RecognitionResult) {}
func (Discard) SendRecognition(*Recognition)             {}
func (Discard) SendDiscovery(*DiscoveryEvent)            {}
func (Discard) SendError(string, string)                 {}
