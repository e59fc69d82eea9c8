// Package fauna defines the domain types of the recognition pipeline:
// camera frames, detections, catalog entries, sessions and discoveries.
package fauna

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/faunadex/faunadex-go/internal/errors"
)

// ImageFrame is a single frame received from a client camera. Immutable,
// lives only for the duration of one recognition call.
type ImageFrame struct {
	Data     []byte
	Width    int
	Height   int
	Channels int
	Format   string
}

// FrameFromBase64 decodes a base64 payload into an ImageFrame. A data URL
// prefix ("data:image/jpeg;base64,") is stripped if present.
func FrameFromBase64(payload string) (*ImageFrame, error) {
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}
	if payload == "" {
		return nil, ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.New(fmt.Errorf("%w: %w", ErrInvalidImage, err)).
			Component("fauna").
			Category(errors.CategoryImageDecode).
			Context("payload_length", len(payload)).
			Build()
	}

	return &ImageFrame{
		Data:     data,
		Width:    640,
		Height:   480,
		Channels: 3,
		Format:   "jpeg",
	}, nil
}

// ToBase64 returns the frame data as a base64 string.
func (f *ImageFrame) ToBase64() string {
	return base64.StdEncoding.EncodeToString(f.Data)
}

// DataURL returns the frame as a data URL for HTML embedding.
func (f *ImageFrame) DataURL() string {
	return fmt.Sprintf("data:image/%s;base64,%s", f.Format, f.ToBase64())
}

// BoundingBox is a rectangular region in an image, used only for
// visualization payloads, never for correctness decisions.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center point of the box.
func (b BoundingBox) Center() (x, y int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Area returns the area of the box in pixels.
func (b BoundingBox) Area() int {
	return b.Width * b.Height
}

// ContainsPoint reports whether the point lies inside the box.
func (b BoundingBox) ContainsPoint(x, y int) bool {
	return b.X <= x && x <= b.X+b.Width &&
		b.Y <= y && y <= b.Y+b.Height
}

// Confidence is a prediction confidence score in [0,1].
type Confidence struct {
	value float64
}

// NewConfidence validates and wraps a confidence value. Construction fails
// iff the value is below 0 or above 1.
func NewConfidence(value float64) (Confidence, error) {
	if value < 0 || value > 1 {
		return Confidence{}, errors.Newf("confidence must be between 0 and 1: %f", value).
			Component("fauna").
			Category(errors.CategoryValidation).
			Build()
	}
	return Confidence{value: value}, nil
}

// Value returns the raw confidence value.
func (c Confidence) Value() float64 {
	return c.value
}

// Percentage returns the confidence as a percentage.
func (c Confidence) Percentage() float64 {
	return c.value * 100
}

// PercentageString returns the confidence formatted as "93.5%".
func (c Confidence) PercentageString() string {
	return fmt.Sprintf("%.1f%%", c.Percentage())
}

// MeetsThreshold reports whether the confidence is at or above the threshold.
func (c Confidence) MeetsThreshold(threshold float64) bool {
	return c.value >= threshold
}

// Level returns the human-readable confidence tier.
func (c Confidence) Level() string {
	switch {
	case c.value >= 0.9:
		return "Muy Alto"
	case c.value >= 0.7:
		return "Alto"
	case c.value >= 0.5:
		return "Medio"
	case c.value >= 0.3:
		return "Bajo"
	default:
		return "Muy Bajo"
	}
}

// GeoLocation is a geographic coordinate, optionally named.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
}

// NewGeoLocation validates and constructs a GeoLocation.
func NewGeoLocation(latitude, longitude float64, name string) (GeoLocation, error) {
	if latitude < -90 || latitude > 90 {
		return GeoLocation{}, errors.Newf("latitude must be between -90 and 90: %f", latitude).
			Component("fauna").
			Category(errors.CategoryValidation).
			Build()
	}
	if longitude < -180 || longitude > 180 {
		return GeoLocation{}, errors.Newf("longitude must be between -180 and 180: %f", longitude).
			Component("fauna").
			Category(errors.CategoryValidation).
			Build()
	}
	return GeoLocation{Latitude: latitude, Longitude: longitude, Name: name}, nil
}
