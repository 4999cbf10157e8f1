package edgeascii

import "github.com/wbrown/edgeascii/imageutil"

// ComputeBackend runs the two numeric stages of the pipeline. Both
// operations return a freshly allocated buffer and leave src untouched.
//
// Correlate must fail with an error wrapping imageutil.ErrSize when src is
// smaller than the kernel, and Resample when w or h is not positive.
// Backends holding resources may also implement io.Closer; the renderer
// closes them when the request finishes.
type ComputeBackend interface {
	Name() string
	Correlate(src *imageutil.GrayImage, k imageutil.Kernel) (*imageutil.GrayImage, error)
	Resample(src *imageutil.GrayImage, w, h int) (*imageutil.GrayImage, error)
}

// BackendFactory creates a backend for a single render request.
type BackendFactory func() (ComputeBackend, error)

// NativeBackend runs both stages in pure Go through imageutil.
type NativeBackend struct {
	Interpolation imageutil.Interpolation
}

// NewNativeBackend returns a NativeBackend with bicubic resampling. Its
// signature matches BackendFactory.
func NewNativeBackend() (ComputeBackend, error) {
	return &NativeBackend{Interpolation: imageutil.InterpolationCubic}, nil
}

// Name returns "native".
func (b *NativeBackend) Name() string {
	return "native"
}

// Correlate applies k with imageutil.Correlate.
func (b *NativeBackend) Correlate(src *imageutil.GrayImage, k imageutil.Kernel) (*imageutil.GrayImage, error) {
	return imageutil.Correlate(src, k)
}

// Resample resizes src with imageutil.ResizeGray.
func (b *NativeBackend) Resample(src *imageutil.GrayImage, w, h int) (*imageutil.GrayImage, error) {
	return imageutil.ResizeGray(src, w, h, b.Interpolation)
}
