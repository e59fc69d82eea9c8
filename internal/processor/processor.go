// Package processor orchestrates the per-frame recognition pipeline and
// manages session lifecycles. Frames within a session are processed
// strictly in arrival order; sessions are fully independent of each other.
package processor

import (
	"context"
	"strings"
	"time"

	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/datastore"
	"github.com/faunadex/faunadex-go/internal/ensemble"
	"github.com/faunadex/faunadex-go/internal/errors"
	"github.com/faunadex/faunadex-go/internal/fauna"
	"github.com/faunadex/faunadex-go/internal/logging"
	"github.com/faunadex/faunadex-go/internal/notification"
	"github.com/faunadex/faunadex-go/internal/observability"
)

var logger = logging.ForService("processor")

// nonAnimalLabels are detector classes that must never reach the resolver
// or become catalog entries. The detection models report people alongside
// animals; those boxes still go out as advisory detections.
var nonAnimalLabels = map[string]struct{}{
	"person": {},
}

func isAnimalLabel(label string) bool {
	_, skip := nonAnimalLabels[strings.ToLower(label)]
	return !skip
}

// bestAnimal picks the strongest detection that refers to an animal.
func bestAnimal(detections []fauna.RecognitionResult) *fauna.RecognitionResult {
	animals := make([]fauna.RecognitionResult, 0, len(detections))
	for _, d := range detections {
		if isAnimalLabel(d.AnimalName) {
			animals = append(animals, d)
		}
	}
	return fauna.BestResult(animals)
}

// Detector is the primary detection port.
type Detector interface {
	IsReady() bool
	Detect(frame *fauna.ImageFrame) ([]fauna.RecognitionResult, error)
	SupportedLabels() []string
}

// Resolver maps a final ensemble label to a catalog entry.
type Resolver interface {
	Resolve(ctx context.Context, rawLabel string, confidence float64) (*fauna.Animal, error)
}

// ThumbnailStore persists discovery thumbnails.
type ThumbnailStore interface {
	SaveThumbnail(frame *fauna.ImageFrame, sessionID, animalName string) (string, error)
}

// DiscoveryPublisher broadcasts discoveries beyond the owning session.
type DiscoveryPublisher interface {
	PublishDiscovery(event *notification.DiscoveryEvent) error
}

// Processor wires the pipeline stages together. One instance serves every
// session; the expensive model instances behind Detector and the ensemble
// are loaded once and shared.
type Processor struct {
	Settings  *conf.Settings
	Store     datastore.Interface
	Detector  Detector
	Ensemble  *ensemble.Engine
	Resolver  Resolver
	Thumbs    ThumbnailStore
	Metrics   *observability.Metrics
	Publisher DiscoveryPublisher // optional
}

// ProcessFrame runs the full pipeline for one frame of a session. A nil
// recognition with a nil error means no animal was recognized in this
// frame, which is a normal outcome, not a failure.
func (p *Processor) ProcessFrame(ctx context.Context, session *fauna.UserSession, frame *fauna.ImageFrame, notifier notification.Notifier) (*notification.Recognition, error) {
	start := time.Now()
	defer func() {
		p.Metrics.FrameDuration.Observe(time.Since(start).Seconds())
	}()

	if session == nil || !session.IsActive {
		return nil, errors.New(fauna.ErrSessionNotFound).
			Component("processor").
			Category(errors.CategoryState).
			Build()
	}

	if !p.Detector.IsReady() {
		p.Metrics.FramesProcessed.WithLabelValues("not_ready").Inc()
		return nil, fauna.ErrModelNotReady
	}

	detections, err := p.Detector.Detect(frame)
	if err != nil {
		p.Metrics.FramesProcessed.WithLabelValues("invalid").Inc()
		return nil, err
	}

	// advisory live boxes go out before the authoritative decision
	notifier.SendDetections(detections)
	p.Metrics.Detections.Add(float64(len(detections)))

	var primaryLabel string
	var primaryConfidence float64
	if best := bestAnimal(detections); best != nil {
		primaryLabel = best.AnimalName
		primaryConfidence = best.Confidence
	}

	decision := p.Ensemble.Decide(primaryLabel, primaryConfidence, frame)
	p.Metrics.Decisions.WithLabelValues(string(decision.Method)).Inc()
	if decision.Failed() || !isAnimalLabel(decision.Label) {
		p.Metrics.FramesProcessed.WithLabelValues("no_recognition").Inc()
		return nil, nil
	}

	animal, err := p.Resolver.Resolve(ctx, decision.Label, decision.Confidence)
	if err != nil {
		p.Metrics.FramesProcessed.WithLabelValues("error").Inc()
		return nil, err
	}

	isNew := !session.HasDiscovered(animal.ID)
	var discovery *fauna.Discovery
	if isNew {
		discovery, err = p.recordDiscovery(session, frame, animal, decision.Confidence)
		if err != nil {
			p.Metrics.FramesProcessed.WithLabelValues("error").Inc()
			return nil, err
		}
	}

	confidence, err := fauna.NewConfidence(decision.Confidence)
	if err != nil {
		return nil, err
	}

	recognition := &notification.Recognition{
		Animal:          animal,
		Confidence:      decision.Confidence,
		ConfidenceLevel: confidence.Level(),
		Method:          string(decision.Method),
		IsNewDiscovery:  isNew,
		FunFact:         animal.RandomFunFact(),
	}

	notifier.SendRecognition(recognition)
	if discovery != nil {
		event := &notification.DiscoveryEvent{
			Discovery:  discovery,
			Animal:     animal,
			TotalCount: session.UniqueAnimalCount(),
		}
		notifier.SendDiscovery(event)
		p.publish(event)
	}

	p.Metrics.FramesProcessed.WithLabelValues("recognized").Inc()
	return recognition, nil
}

// recordDiscovery stores the thumbnail and persists the discovery. A
// thumbnail write failure degrades to a discovery without a thumbnail
// rather than losing the sighting.
func (p *Processor) recordDiscovery(session *fauna.UserSession, frame *fauna.ImageFrame, animal *fauna.Animal, confidence float64) (*fauna.Discovery, error) {
	thumbnailURL, err := p.Thumbs.SaveThumbnail(frame, session.ID, animal.Name)
	if err != nil {
		logger.Warn("thumbnail storage failed, discovery kept without image",
			"session_id", session.ID,
			"animal", animal.Name,
			"error", err)
		thumbnailURL = ""
	}

	discovery := fauna.NewDiscovery(session.ID, animal.ID, thumbnailURL, confidence, session.UserID)
	if err := p.Store.SaveDiscovery(discovery); err != nil {
		return nil, err
	}
	session.AddDiscovery(discovery)
	p.Metrics.Discoveries.Inc()

	logger.Info("new discovery",
		"session_id", session.ID,
		"animal", animal.Name,
		"confidence", confidence)
	return discovery, nil
}

// publish forwards a discovery to the external publisher, best effort.
func (p *Processor) publish(event *notification.DiscoveryEvent) {
	if p.Publisher == nil {
		return
	}
	if err := p.Publisher.PublishDiscovery(event); err != nil {
		logger.Warn("discovery publish failed", "error", err)
	}
}

// RecognizeImage runs the recognition stages on a single standalone image
// with no session, no dedup and no persistence side effects.
func (p *Processor) RecognizeImage(ctx context.Context, frame *fauna.ImageFrame) (*notification.Recognition, error) {
	if !p.Detector.IsReady() {
		return nil, fauna.ErrModelNotReady
	}

	detections, err := p.Detector.Detect(frame)
	if err != nil {
		return nil, err
	}

	var primaryLabel string
	var primaryConfidence float64
	if best := bestAnimal(detections); best != nil {
		primaryLabel = best.AnimalName
		primaryConfidence = best.Confidence
	}

	decision := p.Ensemble.Decide(primaryLabel, primaryConfidence, frame)
	if decision.Failed() || !isAnimalLabel(decision.Label) {
		return nil, nil
	}

	animal, err := p.Resolver.Resolve(ctx, decision.Label, decision.Confidence)
	if err != nil {
		return nil, err
	}

	confidence, err := fauna.NewConfidence(decision.Confidence)
	if err != nil {
		return nil, err
	}

	return &notification.Recognition{
		Animal:          animal,
		Confidence:      decision.Confidence,
		ConfidenceLevel: confidence.Level(),
		Method:          string(decision.Method),
		FunFact:         animal.RandomFunFact(),
	}, nil
}
