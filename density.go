package edgeascii

import (
	"cmp"
	"errors"
	"slices"
)

// GlyphCoverage rasterises every rune of ramp in its own cell, as
// RenderPNG does, and returns the mean intensity of each cell in [0, 1].
func GlyphCoverage(ramp Ramp, opts PreviewOptions) ([]float64, error) {
	if len(ramp) == 0 {
		return nil, errors.New("coverage: empty ramp")
	}

	img, err := RenderPNG(string(ramp)+"\n", opts)
	if err != nil {
		return nil, err
	}

	cellW := img.Width() / len(ramp)
	sums := make([]int, len(ramp))
	for y := 0; y < img.Height(); y++ {
		row := img.Row(y)
		for i := range ramp {
			for _, v := range row[i*cellW : (i+1)*cellW] {
				sums[i] += int(v)
			}
		}
	}

	area := float64(cellW * img.Height() * 255)
	coverage := make([]float64, len(ramp))
	for i, s := range sums {
		coverage[i] = float64(s) / area
	}
	return coverage, nil
}

// SortRampByCoverage orders ramp from the least to the most inked glyph
// in Go Mono, so that it runs from black to white when printed light on
// dark. Glyphs with equal coverage keep their relative order.
func SortRampByCoverage(ramp Ramp, opts PreviewOptions) (Ramp, error) {
	coverage, err := GlyphCoverage(ramp, opts)
	if err != nil {
		return nil, err
	}

	idx := make([]int, len(ramp))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(coverage[a], coverage[b])
	})

	sorted := make(Ramp, len(ramp))
	for i, j := range idx {
		sorted[i] = ramp[j]
	}
	return sorted, nil
}
