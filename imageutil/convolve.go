package imageutil

import "fmt"

// Correlate slides kernel k over every window that fits entirely inside
// img and returns the (W-K+1) x (H-K+1) result. No border is synthesised.
//
// Each output value is the weighted sum of the window divided by
// k.Divisor with truncating integer division, then clamped to [0, 255].
// With the anchor at the kernel centre, output pixel (x, y) belongs to
// source pixel (x+Anchor.X, y+Anchor.Y).
func Correlate(img *GrayImage, k Kernel) (*GrayImage, error) {
	if k.Size <= 0 || k.Size > KernelSize {
		return nil, fmt.Errorf("correlate: kernel %q has size %d: %w", k.Name, k.Size, ErrSize)
	}
	if k.Divisor == 0 {
		return nil, fmt.Errorf("correlate: kernel %q has a zero divisor", k.Name)
	}
	width, height := img.Width(), img.Height()
	if width < k.Size || height < k.Size {
		return nil, fmt.Errorf("correlate: source %dx%d smaller than %dx%d kernel: %w",
			width, height, k.Size, k.Size, ErrSize)
	}

	outW, outH := width-k.Size+1, height-k.Size+1
	dst := NewGrayImage(outW, outH)

	for y := 0; y < outH; y++ {
		out := dst.Row(y)
		for x := 0; x < outW; x++ {
			var sum int32
			for ky := 0; ky < k.Size; ky++ {
				row := img.Row(y + ky)
				for kx := 0; kx < k.Size; kx++ {
					sum += k.At(kx, ky) * int32(row[x+kx])
				}
			}
			out[x] = clampInt32(sum / k.Divisor)
		}
	}

	return dst, nil
}

// clampInt32 clamps v to [0, 255] and converts to uint8.
func clampInt32(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
