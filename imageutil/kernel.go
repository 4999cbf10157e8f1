package imageutil

import (
	"image"
	"strings"
)

// KernelSize is the width and height of every catalog kernel.
const KernelSize = 3

// Kernel identifiers. The numbering is part of the CLI surface.
const (
	SobelX = iota
	SobelY
	ScharrX
	ScharrY
	ScharrXImproved
	ScharrYImproved
	KayaliX
	KayaliY
	PrewittX
	PrewittY
)

// DefaultKernelID is used for any identifier outside the catalog,
// including -1 for "no explicit selection".
const DefaultKernelID = PrewittX

// Kernel is a square integer correlation kernel. Weights are row-major:
// Weights[y*Size+x] is applied to the source pixel x columns right and y
// rows down from the top-left corner of the window.
type Kernel struct {
	ID      int
	Name    string
	Size    int
	Weights [KernelSize * KernelSize]int32
	Anchor  image.Point
	Divisor int32
}

// At returns the weight at column x, row y.
func (k Kernel) At(x, y int) int32 {
	return k.Weights[y*k.Size+x]
}

// String returns the kernel name.
func (k Kernel) String() string {
	return k.Name
}

func edgeKernel(id int, name string, w [KernelSize * KernelSize]int32) Kernel {
	return Kernel{
		ID:      id,
		Name:    name,
		Size:    KernelSize,
		Weights: w,
		Anchor:  image.Pt(KernelSize/2, KernelSize/2),
		Divisor: 1,
	}
}

var catalog = [...]Kernel{
	edgeKernel(SobelX, "Sobel-X", [9]int32{-1, 0, 1, -2, 0, 2, -1, 0, 1}),
	edgeKernel(SobelY, "Sobel-Y", [9]int32{-1, -2, -1, 0, 0, 0, 1, 2, 1}),
	edgeKernel(ScharrX, "Scharr-X", [9]int32{3, 0, -3, 10, 0, -10, 3, 0, -3}),
	edgeKernel(ScharrY, "Scharr-Y", [9]int32{3, 10, 3, 0, 0, 0, -3, -10, -3}),
	edgeKernel(ScharrXImproved, "Scharr-X-improved", [9]int32{47, 0, -47, 162, 0, -162, 47, 0, -47}),
	edgeKernel(ScharrYImproved, "Scharr-Y-improved", [9]int32{47, 162, 47, 0, 0, 0, -47, -162, -47}),
	edgeKernel(KayaliX, "Kayali-X", [9]int32{6, 0, -6, 0, 0, 0, -6, 0, 6}),
	edgeKernel(KayaliY, "Kayali-Y", [9]int32{-6, 0, 6, 0, 0, 0, 6, 0, -6}),
	edgeKernel(PrewittX, "Prewitt-X", [9]int32{1, 1, 1, 0, 0, 0, -1, -1, -1}),
	edgeKernel(PrewittY, "Prewitt-Y", [9]int32{1, 0, -1, 1, 0, -1, 1, 0, -1}),
}

// KernelByID returns the catalog kernel for id, or Prewitt-X when id is
// outside [0, 9].
func KernelByID(id int) Kernel {
	if id < 0 || id >= len(catalog) {
		return catalog[DefaultKernelID]
	}
	return catalog[id]
}

// KernelByName looks a kernel up by name, ignoring case.
func KernelByName(name string) (Kernel, bool) {
	for _, k := range catalog {
		if strings.EqualFold(k.Name, name) {
			return k, true
		}
	}
	return Kernel{}, false
}

// Kernels returns the whole catalog in id order.
func Kernels() []Kernel {
	out := make([]Kernel, len(catalog))
	copy(out, catalog[:])
	return out
}
