// Package imaging holds the shared image plumbing of the recognition
// pipeline: frame decoding, tensor conversion and thumbnail resizing.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/faunadex/faunadex-go/internal/errors"
	"github.com/faunadex/faunadex-go/internal/fauna"
)

// Decode decodes the encoded frame bytes into an image.
func Decode(frame *fauna.ImageFrame) (image.Image, error) {
	if frame == nil || len(frame.Data) == 0 {
		return nil, fauna.ErrInvalidImage
	}
	img, _, err := image.Decode(bytes.NewReader(frame.Data))
	if err != nil {
		return nil, errors.New(fmt.Errorf("%w: %w", fauna.ErrInvalidImage, err)).
			Component("imaging").
			Category(errors.CategoryImageDecode).
			Context("frame_bytes", len(frame.Data)).
			Build()
	}
	return img, nil
}

// ToTensor resizes the image to size x size with nearest neighbor sampling
// and returns a float32 slice in NHWC order with shape (1, size, size, 3),
// values normalized to 0-1.
func ToTensor(img image.Image, size int) []float32 {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	out := make([]float32, 1*size*size*3)

	// iterate rows (y) then columns (x) so memory layout matches NHWC
	for y := 0; y < size; y++ {
		srcY := y * h / size
		for x := 0; x < size; x++ {
			srcX := x * w / size
			r32, g32, b32, _ := img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY).RGBA()
			// Convert 16-bit color to 8-bit
			r := float32(r32 >> 8)
			g := float32(g32 >> 8)
			b := float32(b32 >> 8)

			base := ((y * size) + x) * 3
			out[base+0] = r / 255.0
			out[base+1] = g / 255.0
			out[base+2] = b / 255.0
		}
	}

	return out
}

// Resize scales the image so the longer side equals maxSize, preserving
// aspect ratio. Images already within bounds are returned unchanged.
func Resize(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= maxSize && h <= maxSize {
		return img
	}

	var dstW, dstH int
	if w >= h {
		dstW = maxSize
		dstH = h * maxSize / w
	} else {
		dstH = maxSize
		dstW = w * maxSize / h
	}
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	for y := 0; y < dstH; y++ {
		srcY := y * h / dstH
		for x := 0; x < dstW; x++ {
			srcX := x * w / dstW
			dst.Set(x, y, img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
		}
	}
	return dst
}
