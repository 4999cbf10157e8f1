package imageutil

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResizeGrayDimensions(t *testing.T) {
	img := CreateGradientImage(100, 60)

	tests := []struct {
		name   string
		w, h   int
		interp Interpolation
	}{
		{"downscale cubic", 50, 30, InterpolationCubic},
		{"downscale odd", 33, 7, InterpolationCubic},
		{"upscale cubic", 250, 130, InterpolationCubic},
		{"upscale linear", 200, 120, InterpolationLinear},
		{"nearest", 10, 10, InterpolationNearest},
		{"single pixel", 1, 1, InterpolationCubic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ResizeGray(img, tt.w, tt.h, tt.interp)
			if err != nil {
				t.Fatalf("ResizeGray failed: %v", err)
			}
			if out.Width() != tt.w || out.Height() != tt.h {
				t.Errorf("Expected %dx%d, got %dx%d", tt.w, tt.h, out.Width(), out.Height())
			}
		})
	}
}

func TestResizeGrayInvalidTarget(t *testing.T) {
	img := CreateGradientImage(10, 10)
	for _, sz := range [][2]int{{0, 5}, {5, 0}, {-1, 5}, {5, -3}} {
		_, err := ResizeGray(img, sz[0], sz[1], InterpolationCubic)
		if !errors.Is(err, ErrSize) {
			t.Errorf("%dx%d: expected ErrSize, got %v", sz[0], sz[1], err)
		}
	}
}

func TestResizeGraySameSizeIsIdentity(t *testing.T) {
	img := CreateNoiseImage(31, 17, 11)
	out, err := ResizeGray(img, 31, 17, InterpolationCubic)
	if err != nil {
		t.Fatalf("ResizeGray failed: %v", err)
	}
	if diff := cmp.Diff(Pixels(img), Pixels(out)); diff != "" {
		t.Errorf("Same-size resize changed pixels (-want +got):\n%s", diff)
	}
	out.SetGrayValue(0, 0, img.GetGray(0, 0)+1)
	if out.GetGray(0, 0) == img.GetGray(0, 0) {
		t.Error("Same-size resize must return a new buffer")
	}
}

func TestResizeGrayRepeatedKeepsDimensions(t *testing.T) {
	img := CreateEdgeImage(80, 40)
	once, err := ResizeGray(img, 37, 19, InterpolationCubic)
	if err != nil {
		t.Fatalf("ResizeGray failed: %v", err)
	}
	twice, err := ResizeGray(once, 37, 19, InterpolationCubic)
	if err != nil {
		t.Fatalf("ResizeGray failed: %v", err)
	}
	if twice.Width() != 37 || twice.Height() != 19 {
		t.Errorf("Expected 37x19, got %dx%d", twice.Width(), twice.Height())
	}
}

func TestResizeGraySolidStaysSolid(t *testing.T) {
	// Catmull-Rom weights sum to one, so a flat field must stay flat even
	// at the borders, where sampling is clamped to the source.
	img := CreateSolidImage(40, 30, 173)
	for _, sz := range [][2]int{{13, 9}, {90, 70}} {
		out, err := ResizeGray(img, sz[0], sz[1], InterpolationCubic)
		if err != nil {
			t.Fatalf("ResizeGray failed: %v", err)
		}
		want := CreateSolidImage(sz[0], sz[1], 173)
		if d := CalculateMaxDiff(want, out); d > 1 {
			t.Errorf("%dx%d: max diff %d from a flat field", sz[0], sz[1], d)
		}
	}
}

func TestResizeGrayPreservesGradient(t *testing.T) {
	img := CreateGradientImage(200, 20)
	out, err := ResizeGray(img, 100, 10, InterpolationCubic)
	if err != nil {
		t.Fatalf("ResizeGray failed: %v", err)
	}
	want := CreateGradientImage(100, 10)
	mse := CalculateMSEGray(want, out)
	t.Logf("Gradient downscale MSE: %f", mse)
	if mse > 4.0 {
		t.Errorf("Gradient MSE too high: %f (threshold: 4.0)", mse)
	}
}
