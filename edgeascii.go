// Package edgeascii turns grayscale images into ASCII art that traces
// their edges.
//
// A render runs three stages. The source is correlated with one of ten
// 3x3 edge-detection kernels (Sobel, Scharr, Kayali, Prewitt), which
// shrinks it by two pixels in each direction. The result is then resampled
// to the requested column count, and finally every pixel is quantised into
// a character of an ordered ramp running from black to white.
//
// The correlation and resampling stages run on a ComputeBackend. The
// native backend in this package is pure Go; the backend/opencv and
// backend/bild packages provide the same operations on gocv and bild.
//
//	r := edgeascii.NewRenderer(
//		edgeascii.WithColumns(100),
//		edgeascii.WithFilter(imageutil.SobelX),
//	)
//	text, err := r.RenderFile("teapot512.pgm")
package edgeascii

import "github.com/wbrown/edgeascii/imageutil"

const (
	// DefaultColumns is the output width used when none is configured.
	DefaultColumns = 80

	// NoFilter selects the default kernel, Prewitt-X.
	NoFilter = -1

	// DefaultRampChars runs from black (two spaces) to white ('@').
	DefaultRampChars = "  -.,-=+:;cba?0123456789$WN#@"
)

// DefaultKernel is the kernel used for NoFilter and any unknown id.
var DefaultKernel = imageutil.KernelByID(imageutil.DefaultKernelID)
