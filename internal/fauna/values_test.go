package fauna

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfidenceConstruction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"zero", 0.0, false},
		{"one", 1.0, false},
		{"middle", 0.73, false},
		{"negative", -0.01, true},
		{"above one", 1.01, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := NewConfidence(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.value, c.Value(), 1e-9)
		})
	}
}

func TestConfidenceLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value float64
		level string
	}{
		{0.95, "Muy Alto"},
		{0.90, "Muy Alto"},
		{0.75, "Alto"},
		{0.70, "Alto"},
		{0.55, "Medio"},
		{0.35, "Bajo"},
		{0.10, "Muy Bajo"},
	}

	for _, tt := range tests {
		c, err := NewConfidence(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.level, c.Level(), "value %f", tt.value)
	}
}

func TestConfidencePercentageString(t *testing.T) {
	t.Parallel()

	c, err := NewConfidence(0.925)
	require.NoError(t, err)
	assert.Equal(t, "92.5%", c.PercentageString())
}

func TestFrameFromBase64(t *testing.T) {
	t.Parallel()

	raw := []byte{0xff, 0xd8, 0xff, 0xe0, 0x01, 0x02}
	encoded := base64.StdEncoding.EncodeToString(raw)

	t.Run("plain payload", func(t *testing.T) {
		t.Parallel()
		frame, err := FrameFromBase64(encoded)
		require.NoError(t, err)
		assert.Equal(t, raw, frame.Data)
	})

	t.Run("data url prefix stripped", func(t *testing.T) {
		t.Parallel()
		frame, err := FrameFromBase64("data:image/jpeg;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, raw, frame.Data)
	})

	t.Run("invalid base64", func(t *testing.T) {
		t.Parallel()
		_, err := FrameFromBase64("!!not-base64!!")
		require.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("empty payload", func(t *testing.T) {
		t.Parallel()
		_, err := FrameFromBase64("")
		require.ErrorIs(t, err, ErrInvalidImage)
	})
}

func TestBoundingBoxGeometry(t *testing.T) {
	t.Parallel()

	box := BoundingBox{X: 10, Y: 20, Width: 100, Height: 50}

	cx, cy := box.Center()
	assert.Equal(t, 60, cx)
	assert.Equal(t, 45, cy)
	assert.Equal(t, 5000, box.Area())
	assert.True(t, box.ContainsPoint(10, 20))
	assert.True(t, box.ContainsPoint(110, 70))
	assert.False(t, box.ContainsPoint(111, 70))
}

func TestGeoLocationValidation(t *testing.T) {
	t.Parallel()

	_, err := NewGeoLocation(-0.22, -78.51, "Quito")
	require.NoError(t, err)

	_, err = NewGeoLocation(91, 0, "")
	require.Error(t, err)

	_, err = NewGeoLocation(0, -181, "")
	require.Error(t, err)
}
