package imageutil

import "math"

// CreateGradientImage creates a horizontal gradient test image running
// from 0 at the left edge to 255 at the right edge.
func CreateGradientImage(width, height int) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		row := img.Row(y)
		for x := range row {
			if width > 1 {
				row[x] = uint8(255 * x / (width - 1))
			}
		}
	}
	return img
}

// CreateVerticalGradientImage creates a vertical gradient test image.
func CreateVerticalGradientImage(width, height int) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		var v uint8
		if height > 1 {
			v = uint8(255 * y / (height - 1))
		}
		row := img.Row(y)
		for x := range row {
			row[x] = v
		}
	}
	return img
}

// CreateCheckerboardImage creates a checkerboard pattern for edge testing.
func CreateCheckerboardImage(width, height, squareSize int) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		row := img.Row(y)
		for x := range row {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				row[x] = 255
			}
		}
	}
	return img
}

// CreateSolidImage creates a solid grey image.
func CreateSolidImage(width, height int, v uint8) *GrayImage {
	img := NewGrayImage(width, height)
	img.Fill(v)
	return img
}

// CreateEdgeImage creates an image with sharp edges for testing edge
// detection: a white rectangle and a black diagonal on mid grey.
func CreateEdgeImage(width, height int) *GrayImage {
	img := CreateSolidImage(width, height, 128)

	rx1, ry1 := width/4, height/4
	rx2, ry2 := 3*width/4, 3*height/4
	for y := ry1; y < ry2; y++ {
		for x := rx1; x < rx2; x++ {
			img.SetGrayValue(x, y, 255)
		}
	}

	for i := 0; i < min(width, height)/2; i++ {
		img.SetGrayValue(i, i, 0)
	}

	return img
}

// CreateNoiseImage fills an image with a deterministic pseudo-random
// pattern (a linear congruential sequence seeded with seed).
func CreateNoiseImage(width, height int, seed uint32) *GrayImage {
	img := NewGrayImage(width, height)
	state := seed
	for y := 0; y < height; y++ {
		row := img.Row(y)
		for x := range row {
			state = state*1664525 + 1013904223
			row[x] = uint8(state >> 24)
		}
	}
	return img
}

// CalculateMSEGray calculates the Mean Squared Error between two grayscale images.
func CalculateMSEGray(img1, img2 *GrayImage) float64 {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return math.MaxFloat64
	}

	width, height := img1.Width(), img1.Height()
	var sumSq float64
	count := float64(width * height)

	for y := 0; y < height; y++ {
		r1, r2 := img1.Row(y), img2.Row(y)
		for x := 0; x < width; x++ {
			d := float64(r1[x]) - float64(r2[x])
			sumSq += d * d
		}
	}

	return sumSq / count
}

// CalculateMaxDiff calculates the maximum pixel difference between two
// images, or 256 when their sizes differ.
func CalculateMaxDiff(img1, img2 *GrayImage) int {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return 256
	}

	maxDiff := 0
	for y := 0; y < img1.Height(); y++ {
		r1, r2 := img1.Row(y), img2.Row(y)
		for x := range r1 {
			if d := abs(int(r1[x]) - int(r2[x])); d > maxDiff {
				maxDiff = d
			}
		}
	}

	return maxDiff
}

// Pixels returns the buffer contents as one slice per row, which is
// convenient for comparing buffers with different strides.
func Pixels(img *GrayImage) [][]uint8 {
	out := make([][]uint8, img.Height())
	for y := range out {
		out[y] = append([]uint8(nil), img.Row(y)...)
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
