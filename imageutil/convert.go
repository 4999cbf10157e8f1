package imageutil

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// GrayMode selects how colour pixels are reduced to one channel.
type GrayMode int

const (
	// GrayLuma uses the BT.601 luminance formula
	// Y = 0.299*R + 0.587*G + 0.114*B, matching OpenCV's COLOR_BGR2GRAY.
	GrayLuma GrayMode = iota

	// GrayLightness uses CIE L* scaled to [0, 255], which tracks
	// perceived brightness more closely than luma.
	GrayLightness
)

// String returns the flag spelling of the mode.
func (m GrayMode) String() string {
	switch m {
	case GrayLightness:
		return "lightness"
	default:
		return "luma"
	}
}

// ParseGrayMode parses "luma" or "lightness".
func ParseGrayMode(s string) (GrayMode, error) {
	switch strings.ToLower(s) {
	case "luma", "":
		return GrayLuma, nil
	case "lightness":
		return GrayLightness, nil
	}
	return GrayLuma, fmt.Errorf("unknown gray mode %q (want luma or lightness)", s)
}

// ToGray reduces img to a GrayImage. Images that are already *image.Gray
// are copied without conversion.
func ToGray(img image.Image, mode GrayMode) *GrayImage {
	if g, ok := img.(*image.Gray); ok {
		return GrayImageFromImage(g)
	}

	bounds := img.Bounds()
	gray := NewGrayImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := gray.Row(y - bounds.Min.Y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.At(x, y)
			switch mode {
			case GrayLightness:
				row[x-bounds.Min.X] = lightness(c)
			default:
				r, g, b, _ := c.RGBA()
				// Integer BT.601, scaled by 1000
				lum := (299*int(r>>8) + 587*int(g>>8) + 114*int(b>>8) + 500) / 1000
				if lum > 255 {
					lum = 255
				}
				row[x-bounds.Min.X] = uint8(lum)
			}
		}
	}

	return gray
}

func lightness(c color.Color) uint8 {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// Fully transparent
		return 0
	}
	l, _, _ := cf.Lab()
	return uint8(math.Round(math.Max(0, math.Min(1, l)) * 255))
}
