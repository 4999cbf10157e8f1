// Package bild implements edgeascii.ComputeBackend on top of the bild
// image processing library.
//
// bild pads the source by edge extension before filtering, so the output
// of Correlate is cropped back to the valid region. The result is
// identical to imageutil.Correlate for every kernel with divisor 1.
package bild

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/transform"

	"github.com/wbrown/edgeascii/imageutil"
)

// Backend runs correlation and resampling through bild.
type Backend struct {
	// Filter is the resampling filter. The zero value is bild's nearest
	// neighbour, so use New for Catmull-Rom.
	Filter transform.ResampleFilter
}

// New returns a Backend using Catmull-Rom resampling.
func New() (*Backend, error) {
	return &Backend{Filter: transform.CatmullRom}, nil
}

// Name returns "bild".
func (b *Backend) Name() string {
	return "bild"
}

// Correlate applies k to src and returns the valid region.
func (b *Backend) Correlate(src *imageutil.GrayImage, k imageutil.Kernel) (*imageutil.GrayImage, error) {
	if k.Size != imageutil.KernelSize {
		return nil, fmt.Errorf("kernel %s is %dx%d: %w", k.Name, k.Size, k.Size, imageutil.ErrSize)
	}
	if k.Divisor == 0 {
		return nil, fmt.Errorf("kernel %s has zero divisor", k.Name)
	}
	w, h := src.Width(), src.Height()
	if w < k.Size || h < k.Size {
		return nil, fmt.Errorf("image %dx%d smaller than kernel %s: %w", w, h, k.Name, imageutil.ErrSize)
	}

	m := convolution.NewKernel(k.Size, k.Size)
	for y := 0; y < k.Size; y++ {
		for x := 0; x < k.Size; x++ {
			m.Matrix[y*k.Size+x] = float64(k.At(x, y)) / float64(k.Divisor)
		}
	}

	full := convolution.Convolve(src.Gray, m, &convolution.Options{KeepAlpha: true})

	// Skip the border where bild read padded pixels.
	rx, ry := k.Anchor.X, k.Anchor.Y
	ow, oh := w-k.Size+1, h-k.Size+1
	return fromRGBA(full, image.Rect(rx, ry, rx+ow, ry+oh)), nil
}

// Resample resizes src to w x h.
func (b *Backend) Resample(src *imageutil.GrayImage, w, h int) (*imageutil.GrayImage, error) {
	if w <= 0 || h <= 0 || src.Width() == 0 || src.Height() == 0 {
		return nil, fmt.Errorf("resize %dx%d to %dx%d: %w", src.Width(), src.Height(), w, h, imageutil.ErrSize)
	}
	if w == src.Width() && h == src.Height() {
		return src.Clone(), nil
	}

	resized := transform.Resize(src.Gray, w, h, b.Filter)
	return fromRGBA(resized, resized.Bounds()), nil
}

// fromRGBA copies the red channel of rect into a new GrayImage. Gray
// sources come back from bild with R == G == B.
func fromRGBA(img *image.RGBA, rect image.Rectangle) *imageutil.GrayImage {
	out := imageutil.NewGrayImage(rect.Dx(), rect.Dy())
	for y := 0; y < rect.Dy(); y++ {
		row := out.Row(y)
		off := img.PixOffset(rect.Min.X, rect.Min.Y+y)
		for x := range row {
			row[x] = img.Pix[off+x*4]
		}
	}
	return out
}
