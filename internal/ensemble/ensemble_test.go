package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/fauna"
)

type stubClassifier struct {
	label  string
	err    error
	called bool
}

func (s *stubClassifier) Classify(*fauna.ImageFrame) (string, error) {
	s.called = true
	return s.label, s.err
}

func testSettings() conf.EnsembleSettings {
	return conf.EnsembleSettings{
		PrimaryThreshold:       0.80,
		FallbackThreshold:      0.60,
		FallbackConfidence:     0.85,
		ConflictConfidence:     0.75,
		FallbackOnlyConfidence: 0.80,
	}
}

func TestDecidePrimaryVerbatim(t *testing.T) {
	t.Parallel()

	fallback := &stubClassifier{label: "Cats"}
	engine := New(testSettings(), fallback)

	d := engine.Decide("Dog", 0.92, nil)
	assert.Equal(t, MethodPrimary, d.Method)
	assert.Equal(t, "Dog", d.Label)
	assert.InDelta(t, 0.92, d.Confidence, 0.001)
	assert.False(t, fallback.called, "fallback must not be consulted above the primary threshold")
	assert.NotEmpty(t, d.Trace)
}

func TestDecidePrimaryAtThresholdBoundary(t *testing.T) {
	t.Parallel()

	engine := New(testSettings(), &stubClassifier{})
	d := engine.Decide("Dog", 0.80, nil)
	assert.Equal(t, MethodPrimary, d.Method)
}

func TestDecideBandFallbackUnavailable(t *testing.T) {
	t.Parallel()

	engine := New(testSettings(), &stubClassifier{label: ""})
	d := engine.Decide("Dog", 0.70, nil)
	assert.Equal(t, MethodPrimaryFallbackDown, d.Method)
	assert.Equal(t, "Dog", d.Label)
	assert.InDelta(t, 0.70, d.Confidence, 0.001)
}

func TestDecideBandConsensus(t *testing.T) {
	t.Parallel()

	engine := New(testSettings(), &stubClassifier{label: "dog"})
	d := engine.Decide("Dog", 0.70, nil)
	assert.Equal(t, MethodConsensus, d.Method)
	assert.Equal(t, "Dog", d.Label, "consensus keeps the primary label spelling")
	assert.InDelta(t, (0.70+0.85)/2, d.Confidence, 0.001)
}

func TestDecideBandConflictFallbackWins(t *testing.T) {
	t.Parallel()

	engine := New(testSettings(), &stubClassifier{label: "Wolf"})
	d := engine.Decide("Dog", 0.65, nil)
	assert.Equal(t, MethodConflictFallback, d.Method)
	assert.Equal(t, "Wolf", d.Label)
	assert.InDelta(t, 0.75, d.Confidence, 0.001)
}

func TestDecideLowConfidenceFallbackOnly(t *testing.T) {
	t.Parallel()

	engine := New(testSettings(), &stubClassifier{label: "Cats"})
	d := engine.Decide("Dog", 0.30, nil)
	assert.Equal(t, MethodFallbackOnly, d.Method)
	assert.Equal(t, "Cats", d.Label)
	assert.InDelta(t, 0.80, d.Confidence, 0.001)
}

func TestDecideNoDetectionFallbackOnly(t *testing.T) {
	t.Parallel()

	engine := New(testSettings(), &stubClassifier{label: "Cats"})
	d := engine.Decide("", 0, nil)
	assert.Equal(t, MethodFallbackOnly, d.Method)
	assert.Equal(t, "Cats", d.Label)
}

func TestDecideBothFailed(t *testing.T) {
	t.Parallel()

	engine := New(testSettings(), &stubClassifier{label: ""})
	d := engine.Decide("Dog", 0.40, nil)
	assert.Equal(t, MethodBothFailed, d.Method)
	assert.Empty(t, d.Label)
	assert.Zero(t, d.Confidence)
	assert.True(t, d.Failed())
	assert.NotEmpty(t, d.Trace, "failed decisions still carry a trace")
}

func TestDecideNilFallback(t *testing.T) {
	t.Parallel()

	engine := New(testSettings(), nil)

	d := engine.Decide("Dog", 0.70, nil)
	assert.Equal(t, MethodPrimaryFallbackDown, d.Method)

	d = engine.Decide("Dog", 0.30, nil)
	assert.Equal(t, MethodBothFailed, d.Method)
}

func TestDecideClassifierErrorTreatedAsNoOpinion(t *testing.T) {
	t.Parallel()

	engine := New(testSettings(), &stubClassifier{err: assert.AnError})
	d := engine.Decide("Dog", 0.70, nil)
	assert.Equal(t, MethodPrimaryFallbackDown, d.Method)
	assert.Equal(t, "Dog", d.Label)
}

func TestDecideEveryBranchHasTrace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		label      string
		confidence float64
		fallback   string
	}{
		{"primary", "Dog", 0.95, ""},
		{"fallback unavailable", "Dog", 0.70, ""},
		{"consensus", "Dog", 0.70, "Dog"},
		{"conflict", "Dog", 0.70, "Wolf"},
		{"fallback only", "Dog", 0.20, "Cats"},
		{"both failed", "", 0, ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine := New(testSettings(), &stubClassifier{label: tt.fallback})
			d := engine.Decide(tt.label, tt.confidence, nil)
			require.NotEmpty(t, d.Trace)
		})
	}
}
