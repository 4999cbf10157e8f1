package edgeascii

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/wbrown/edgeascii/imageutil"
)

// PreviewOptions controls RenderPNG.
type PreviewOptions struct {
	// FontSize in points at 72 DPI. Zero means 12.
	FontSize float64
}

var monoFont = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(gomono.TTF)
})

// RenderPNG rasterises rendered text, white on black, in Go Mono. Each
// character occupies one fixed-size cell so columns line up as they do in
// a terminal.
func RenderPNG(text string, opts PreviewOptions) (*imageutil.GrayImage, error) {
	size := opts.FontSize
	if size <= 0 {
		size = 12
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	cols := 0
	for _, line := range lines {
		cols = max(cols, utf8.RuneCountInString(line))
	}
	if cols == 0 {
		return nil, errors.New("preview: no text to render")
	}

	ttf, err := monoFont()
	if err != nil {
		return nil, fmt.Errorf("preview: failed to parse font: %w", err)
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	advance, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, errors.New("preview: font has no advance for 'M'")
	}
	metrics := face.Metrics()
	cellW := advance.Ceil()
	cellH := max(metrics.Height.Ceil(), (metrics.Ascent + metrics.Descent).Ceil())
	ascent := metrics.Ascent.Ceil()

	img := imageutil.NewGrayImage(cols*cellW, len(lines)*cellH)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img.Gray)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	for row, line := range lines {
		col := 0
		for _, r := range line {
			if r != ' ' {
				pt := freetype.Pt(col*cellW, row*cellH+ascent)
				if _, err := ctx.DrawString(string(r), pt); err != nil {
					return nil, fmt.Errorf("preview: failed to draw %q: %w", r, err)
				}
			}
			col++
		}
	}

	return img, nil
}

// SavePreview renders text with RenderPNG and writes it to path.
func SavePreview(text, path string, opts PreviewOptions) error {
	img, err := RenderPNG(text, opts)
	if err != nil {
		return err
	}
	return imageutil.SavePNG(img.Gray, path)
}
