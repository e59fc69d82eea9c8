package detector

import (
	"github.com/faunadex/faunadex-go/internal/fauna"
)

// scaleBox converts a normalized [ymin, xmin, ymax, xmax] box into pixel
// coordinates of the original frame, clamped to the frame bounds.
func scaleBox(box []float32, origW, origH int) fauna.BoundingBox {
	x1 := clamp(int(box[1]*float32(origW)), 0, origW)
	y1 := clamp(int(box[0]*float32(origH)), 0, origH)
	x2 := clamp(int(box[3]*float32(origW)), 0, origW)
	y2 := clamp(int(box[2]*float32(origH)), 0, origH)

	return fauna.BoundingBox{
		X:      x1,
		Y:      y1,
		Width:  max(0, x2-x1),
		Height: max(0, y2-y1),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
