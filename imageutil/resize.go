package imageutil

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationCubic uses Catmull-Rom, a bicubic kernel. This is the
	// closest equivalent to OpenCV's INTER_CUBIC and is the default.
	InterpolationCubic Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	// Equivalent to OpenCV's INTER_LINEAR.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// ResizeGray resamples img to exactly width x height. The scalers in
// x/image/draw only sample inside the source rectangle, so edge pixels
// are effectively replicated. Requesting the current size returns a copy.
func ResizeGray(img *GrayImage, width, height int, interp Interpolation) (*GrayImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("resize: target %dx%d: %w", width, height, ErrSize)
	}
	if img.Width() <= 0 || img.Height() <= 0 {
		return nil, fmt.Errorf("resize: empty source: %w", ErrSize)
	}
	if width == img.Width() && height == img.Height() {
		return img.Clone(), nil
	}

	dst := NewGrayImage(width, height)
	interp.scaler().Scale(dst.Gray, image.Rect(0, 0, width, height), img.Gray, img.Bounds(), draw.Src, nil)
	return dst, nil
}
