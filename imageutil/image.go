// Package imageutil provides the single-channel pixel buffer used by every
// stage of the edgeascii pipeline, along with the pure Go versions of the
// stages themselves: 3x3 correlation with the edge-detection kernel catalog,
// resampling, grey conversion and file I/O.
package imageutil

import (
	"errors"
	"fmt"
	"image"
)

// ErrSize is returned (wrapped) by any stage that receives dimensions it
// cannot process.
var ErrSize = errors.New("invalid image size")

// GrayImage wraps image.Gray for single-channel 8-bit buffers. Pix holds
// Stride*Height bytes; pixel (x, y) lives at Pix[y*Stride+x].
type GrayImage struct {
	*image.Gray
}

// NewGrayImage creates a new GrayImage with the specified dimensions.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// NewGrayImageFromBytes wraps pix as a width x height buffer whose rows
// are stride bytes apart. The slice is used as is, not copied.
func NewGrayImageFromBytes(width, height, stride int, pix []byte) (*GrayImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("buffer %dx%d: %w", width, height, ErrSize)
	}
	if stride < width {
		return nil, fmt.Errorf("stride %d smaller than width %d: %w", stride, width, ErrSize)
	}
	if need := stride * height; len(pix) < need {
		return nil, fmt.Errorf("buffer holds %d bytes, need %d: %w", len(pix), need, ErrSize)
	}
	return &GrayImage{
		Gray: &image.Gray{
			Pix:    pix,
			Stride: stride,
			Rect:   image.Rect(0, 0, width, height),
		},
	}, nil
}

// GrayImageFromImage converts any image.Image to GrayImage using the
// standard library gray model. The result always starts at (0, 0).
func GrayImageFromImage(img image.Image) *GrayImage {
	bounds := img.Bounds()
	gray := NewGrayImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return gray
}

// Width returns the image width.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// GetGray returns the grayscale value at (x, y), relative to the
// top-left corner of the buffer.
func (img *GrayImage) GetGray(x, y int) uint8 {
	return img.Pix[img.offset(x, y)]
}

// SetGrayValue sets the grayscale value at (x, y), relative to the
// top-left corner of the buffer.
func (img *GrayImage) SetGrayValue(x, y int, v uint8) {
	img.Pix[img.offset(x, y)] = v
}

// Row returns the width bytes of row y.
func (img *GrayImage) Row(y int) []byte {
	start := img.offset(0, y)
	return img.Pix[start : start+img.Width()]
}

// offset assumes a zero origin, which every constructor here guarantees.
func (img *GrayImage) offset(x, y int) int {
	return y*img.Stride + x
}

// Clone creates a deep copy of the image with a tight stride.
func (img *GrayImage) Clone() *GrayImage {
	clone := NewGrayImage(img.Width(), img.Height())
	for y := 0; y < img.Height(); y++ {
		copy(clone.Row(y), img.Row(y))
	}
	return clone
}

// Fill sets every pixel to v.
func (img *GrayImage) Fill(v uint8) {
	for y := 0; y < img.Height(); y++ {
		row := img.Row(y)
		for x := range row {
			row[x] = v
		}
	}
}
