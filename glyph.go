package edgeascii

import (
	"io"
	"strings"

	"github.com/wbrown/edgeascii/imageutil"
)

// Ramp is an ordered set of glyphs: index 0 stands for black, the last
// index for white.
type Ramp []rune

// DefaultRamp returns a fresh copy of DefaultRampChars as a Ramp.
func DefaultRamp() Ramp {
	return Ramp(DefaultRampChars)
}

// ParseRamp converts s to a Ramp; the empty string yields DefaultRamp.
func ParseRamp(s string) Ramp {
	if s == "" {
		return DefaultRamp()
	}
	return Ramp(s)
}

// String returns the ramp as a string.
func (r Ramp) String() string {
	return string(r)
}

// Glyph returns the character for intensity v. r must not be empty.
func (r Ramp) Glyph(v uint8) rune {
	return r[GlyphIndex(v, len(r))]
}

// GlyphIndex quantises v into [0, n-1] as (v*n - 1) / 255 with truncating
// division. 0 maps to 0 and 255 maps to n-1 for every n >= 1.
func GlyphIndex(v uint8, n int) int {
	idx := (int(v)*n - 1) / 255
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

// MapGlyphs renders img one text line per pixel row, each terminated by
// "\n". An empty ramp is replaced by the default.
func MapGlyphs(img *imageutil.GrayImage, ramp Ramp) string {
	if len(ramp) == 0 {
		ramp = DefaultRamp()
	}

	// Precompute the 256 possible glyphs.
	var lut [256]rune
	for v := range lut {
		lut[v] = ramp.Glyph(uint8(v))
	}

	var sb strings.Builder
	sb.Grow((img.Width() + 1) * img.Height())
	for y := 0; y < img.Height(); y++ {
		for _, v := range img.Row(y) {
			sb.WriteRune(lut[v])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteGlyphs renders img and writes the whole text to w in one call.
func WriteGlyphs(w io.Writer, img *imageutil.GrayImage, ramp Ramp) error {
	_, err := io.WriteString(w, MapGlyphs(img, ramp))
	return err
}
