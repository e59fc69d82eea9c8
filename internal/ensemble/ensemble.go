// Package ensemble combines the primary detector output with the fallback
// classifier into a single final decision. The confidence tiers and which
// model wins in each tier are the heart of the recognition pipeline.
package ensemble

import (
	"fmt"
	"strings"

	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/fauna"
	"github.com/faunadex/faunadex-go/internal/logging"
)

var logger = logging.ForService("ensemble")

// Method identifies which decision branch produced the final result.
type Method string

const (
	MethodPrimary             Method = "PRIMARY"
	MethodPrimaryFallbackDown Method = "PRIMARY_FALLBACK_UNAVAILABLE"
	MethodConsensus           Method = "CONSENSUS"
	MethodConflictFallback    Method = "CONFLICT_FALLBACK_WINS"
	MethodFallbackOnly        Method = "FALLBACK_ONLY"
	MethodBothFailed          Method = "BOTH_FAILED"
)

// FallbackClassifier is the consultation port. An empty label with a nil
// error means the classifier has no opinion.
type FallbackClassifier interface {
	Classify(frame *fauna.ImageFrame) (string, error)
}

// Decision is the outcome of one ensemble evaluation. Trace carries a
// human readable account of the branch taken.
type Decision struct {
	Label      string
	Confidence float64
	Method     Method
	Trace      string
}

// Failed reports whether neither model produced a usable label.
func (d Decision) Failed() bool {
	return d.Method == MethodBothFailed
}

// Engine applies the tiered decision rules.
type Engine struct {
	settings conf.EnsembleSettings
	fallback FallbackClassifier
}

// New creates an Engine. The fallback classifier may be nil when disabled;
// every branch that would consult it then behaves as "fallback yields
// nothing".
func New(settings conf.EnsembleSettings, fallback FallbackClassifier) *Engine {
	return &Engine{settings: settings, fallback: fallback}
}

// Decide evaluates the tiered rules for one frame. primaryLabel is empty
// when the detector found nothing, which is treated as zero confidence.
//
// At or above the primary threshold the detector result stands verbatim.
// In the band below it the fallback is consulted: agreement averages the
// confidences, disagreement hands the win to the fallback at a fixed
// confidence. Below the band the fallback alone decides or the frame
// yields no recognition.
func (e *Engine) Decide(primaryLabel string, primaryConfidence float64, frame *fauna.ImageFrame) Decision {
	s := e.settings

	if primaryLabel != "" && primaryConfidence >= s.PrimaryThreshold {
		return e.traced(Decision{
			Label:      primaryLabel,
			Confidence: primaryConfidence,
			Method:     MethodPrimary,
			Trace: fmt.Sprintf("primary %q at %.2f >= %.2f, accepted verbatim",
				primaryLabel, primaryConfidence, s.PrimaryThreshold),
		})
	}

	if primaryLabel != "" && primaryConfidence >= s.FallbackThreshold {
		fallbackLabel := e.consult(frame)
		switch {
		case fallbackLabel == "":
			return e.traced(Decision{
				Label:      primaryLabel,
				Confidence: primaryConfidence,
				Method:     MethodPrimaryFallbackDown,
				Trace: fmt.Sprintf("primary %q at %.2f in band [%.2f, %.2f), fallback unavailable, primary stands",
					primaryLabel, primaryConfidence, s.FallbackThreshold, s.PrimaryThreshold),
			})
		case strings.EqualFold(fallbackLabel, primaryLabel):
			confidence := (primaryConfidence + s.FallbackConfidence) / 2
			return e.traced(Decision{
				Label:      primaryLabel,
				Confidence: confidence,
				Method:     MethodConsensus,
				Trace: fmt.Sprintf("primary %q at %.2f confirmed by fallback, confidence averaged to %.2f",
					primaryLabel, primaryConfidence, confidence),
			})
		default:
			return e.traced(Decision{
				Label:      fallbackLabel,
				Confidence: s.ConflictConfidence,
				Method:     MethodConflictFallback,
				Trace: fmt.Sprintf("primary %q at %.2f contradicted by fallback %q, fallback wins at %.2f",
					primaryLabel, primaryConfidence, fallbackLabel, s.ConflictConfidence),
			})
		}
	}

	fallbackLabel := e.consult(frame)
	if fallbackLabel == "" {
		return e.traced(Decision{
			Method: MethodBothFailed,
			Trace: fmt.Sprintf("primary %q at %.2f below %.2f and fallback yielded nothing",
				primaryLabel, primaryConfidence, s.FallbackThreshold),
		})
	}
	return e.traced(Decision{
		Label:      fallbackLabel,
		Confidence: s.FallbackOnlyConfidence,
		Method:     MethodFallbackOnly,
		Trace: fmt.Sprintf("primary %q at %.2f below %.2f, fallback %q wins alone at %.2f",
			primaryLabel, primaryConfidence, s.FallbackThreshold, fallbackLabel, s.FallbackOnlyConfidence),
	})
}

// consult asks the fallback classifier for an opinion. Classifier errors
// are logged and treated as no opinion, the caller branches handle that.
func (e *Engine) consult(frame *fauna.ImageFrame) string {
	if e.fallback == nil {
		return ""
	}
	label, err := e.fallback.Classify(frame)
	if err != nil {
		logger.Warn("fallback classifier failed", "error", err)
		return ""
	}
	return label
}

func (e *Engine) traced(d Decision) Decision {
	logger.Debug("ensemble decision",
		"method", string(d.Method),
		"label", d.Label,
		"confidence", d.Confidence,
		"trace", d.Trace)
	return d
}
