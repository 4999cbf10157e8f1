// Package opencv implements edgeascii.ComputeBackend with gocv. It needs
// OpenCV 4 installed to build and run.
package opencv

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/wbrown/edgeascii/imageutil"
)

// ErrUnavailable is returned by New when the OpenCV runtime does not
// respond.
var ErrUnavailable = errors.New("opencv runtime unavailable")

// Backend runs both stages through OpenCV. Every call allocates and frees
// its own Mats.
type Backend struct {
	// Interpolation is passed to cv::resize.
	Interpolation gocv.InterpolationFlags
}

// New returns a Backend using bicubic resampling after checking that the
// OpenCV library is loaded.
func New() (*Backend, error) {
	if gocv.OpenCVVersion() == "" {
		return nil, ErrUnavailable
	}
	return &Backend{Interpolation: gocv.InterpolationCubic}, nil
}

// Name returns "opencv".
func (b *Backend) Name() string {
	return "opencv"
}

// Correlate runs cv::filter2D with k and crops the border rows and
// columns, leaving the valid region.
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

	mat, err := grayToMat(src)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	kernel := gocv.NewMatWithSize(k.Size, k.Size, gocv.MatTypeCV32F)
	defer kernel.Close()
	for y := 0; y < k.Size; y++ {
		for x := 0; x < k.Size; x++ {
			kernel.SetFloatAt(y, x, float32(k.At(x, y))/float32(k.Divisor))
		}
	}

	filtered := gocv.NewMat()
	defer filtered.Close()
	gocv.Filter2D(mat, &filtered, -1, kernel, k.Anchor, 0, gocv.BorderReplicate)

	ow, oh := w-k.Size+1, h-k.Size+1
	region := filtered.Region(image.Rect(k.Anchor.X, k.Anchor.Y, k.Anchor.X+ow, k.Anchor.Y+oh))
	defer region.Close()
	valid := region.Clone()
	defer valid.Close()

	return matToGray(valid)
}

// Resample runs cv::resize to w x h.
func (b *Backend) Resample(src *imageutil.GrayImage, w, h int) (*imageutil.GrayImage, error) {
	if w <= 0 || h <= 0 || src.Width() == 0 || src.Height() == 0 {
		return nil, fmt.Errorf("resize %dx%d to %dx%d: %w", src.Width(), src.Height(), w, h, imageutil.ErrSize)
	}
	if w == src.Width() && h == src.Height() {
		return src.Clone(), nil
	}

	mat, err := grayToMat(src)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(mat, &resized, image.Pt(w, h), 0, 0, b.Interpolation)

	return matToGray(resized)
}

// grayToMat copies img into a CV_8U Mat.
func grayToMat(img *imageutil.GrayImage) (gocv.Mat, error) {
	if img.Stride != img.Width() {
		img = img.Clone()
	}
	n := img.Width() * img.Height()
	mat, err := gocv.NewMatFromBytes(img.Height(), img.Width(), gocv.MatTypeCV8U, img.Pix[:n])
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to create mat: %w", err)
	}
	return mat, nil
}

// matToGray converts a continuous CV_8U Mat to a GrayImage.
func matToGray(mat gocv.Mat) (*imageutil.GrayImage, error) {
	if mat.Empty() || mat.Type() != gocv.MatTypeCV8U {
		return nil, fmt.Errorf("unexpected mat %dx%d type %v", mat.Cols(), mat.Rows(), mat.Type())
	}
	w, h := mat.Cols(), mat.Rows()
	img, err := imageutil.NewGrayImageFromBytes(w, h, w, mat.ToBytes())
	if err != nil {
		return nil, fmt.Errorf("failed to read mat: %w", err)
	}
	return img, nil
}
