package edgeascii

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/wbrown/edgeascii/imageutil"
)

// Renderer holds the configuration of an ASCII-art conversion. It keeps
// no state between calls, so a single Renderer may be shared by
// goroutines; every call creates its own backend through Backend.
type Renderer struct {
	// Columns is the requested output width. Negative values are used as
	// their absolute value and 0 keeps the source width.
	Columns int
	// Filter is a kernel id in [0, 9]; anything else selects Prewitt-X.
	Filter int
	// Ramp maps intensities to glyphs, black first.
	Ramp Ramp

	Backend BackendFactory
	Source  ImageSource

	logger *slog.Logger
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer with the given options.
// Default values: Columns=80, Filter=NoFilter (Prewitt-X), Ramp=DefaultRamp(),
// Backend=NewNativeBackend, Source=FileSource{Mode: GrayLuma}, no logging.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		Columns: DefaultColumns,
		Filter:  NoFilter,
		Ramp:    DefaultRamp(),
		Backend: NewNativeBackend,
		Source:  FileSource{Mode: imageutil.GrayLuma},
		logger:  newNopLogger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithColumns sets the requested output width in characters.
func WithColumns(columns int) RendererOption {
	return func(r *Renderer) {
		r.Columns = columns
	}
}

// WithFilter selects the edge-detection kernel by id.
func WithFilter(id int) RendererOption {
	return func(r *Renderer) {
		r.Filter = id
	}
}

// WithRamp sets the glyph ramp; an empty ramp keeps the default.
func WithRamp(ramp Ramp) RendererOption {
	return func(r *Renderer) {
		if len(ramp) > 0 {
			r.Ramp = ramp
		}
	}
}

// WithBackend sets the factory used to create a backend per request.
func WithBackend(f BackendFactory) RendererOption {
	return func(r *Renderer) {
		if f != nil {
			r.Backend = f
		}
	}
}

// WithSource sets where RenderFile loads images from.
func WithSource(s ImageSource) RendererOption {
	return func(r *Renderer) {
		if s != nil {
			r.Source = s
		}
	}
}

// WithLogger enables debug logging of the pipeline stages. A nil logger
// disables logging.
func WithLogger(l *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if l == nil {
			l = newNopLogger()
		}
		r.logger = l
	}
}

func (r *Renderer) log() *slog.Logger {
	if r.logger == nil {
		return newNopLogger()
	}
	return r.logger
}

// Kernel returns the kernel selected by Filter.
func (r *Renderer) Kernel() imageutil.Kernel {
	return imageutil.KernelByID(r.Filter)
}

// RenderFile loads path through the configured source and renders it.
// The source is loaded before any backend is created.
func (r *Renderer) RenderFile(path string) (string, error) {
	source := r.Source
	if source == nil {
		source = FileSource{}
	}
	src, err := source.Load(path)
	if err != nil {
		if !errors.Is(err, ErrSourceUnavailable) {
			err = fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		return "", &StageError{Stage: StageLoad, Err: err}
	}
	r.log().Debug("loaded", "path", path, "width", src.Width(), "height", src.Height())
	return r.Render(src)
}

// RenderFileTo renders path and writes the text to w with a single
// write. Nothing is written when rendering fails.
func (r *Renderer) RenderFileTo(w io.Writer, path string) error {
	text, err := r.RenderFile(path)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// Render converts src into ASCII art. src is not modified.
func (r *Renderer) Render(src *imageutil.GrayImage) (text string, err error) {
	if src == nil {
		return "", &StageError{Stage: StageLoad, Err: fmt.Errorf("%w: nil image", ErrSourceUnavailable)}
	}
	if r.Backend == nil {
		return "", &StageError{Stage: StageBackend, Err: fmt.Errorf("%w: no backend configured", ErrComputeContext)}
	}
	backend, err := r.Backend()
	if err != nil {
		return "", &StageError{Stage: StageBackend, Err: fmt.Errorf("%w: %w", ErrComputeContext, err)}
	}
	if c, ok := backend.(io.Closer); ok {
		defer func() {
			if cerr := c.Close(); cerr != nil && err == nil {
				text, err = "", &StageError{Stage: StageBackend, Err: fmt.Errorf("%w: close: %w", ErrBackendExecution, cerr)}
			}
		}()
	}

	kernel := r.Kernel()
	filtered, err := backend.Correlate(src, kernel)
	if err != nil {
		return "", stageError(StageCorrelate, err)
	}
	r.log().Debug("filtered",
		"backend", backend.Name(),
		"kernel", kernel.Name,
		"width", filtered.Width(),
		"height", filtered.Height())

	w, h, resize := TargetSize(src.Width(), src.Height(), filtered.Width(), filtered.Height(), r.Columns)
	out := filtered
	if resize {
		out, err = backend.Resample(filtered, w, h)
		if err != nil {
			return "", stageError(StageResample, err)
		}
		r.log().Debug("resized", "width", out.Width(), "height", out.Height())
	} else {
		r.log().Debug("unresized", "width", out.Width(), "height", out.Height())
	}

	text = MapGlyphs(out, r.Ramp)
	r.log().Debug("rendered", "lines", out.Height(), "bytes", len(text))
	return text, nil
}

// TargetSize decides whether and how the filtered image is resampled.
//
// columns < 0 is replaced by its absolute value and 0 by srcW. When the
// result equals srcW no resampling is done. Otherwise the factor
// columns/srcW is applied to the original (unfiltered) dimensions and
// rounded up; for factors of 1 or more the filtered dimensions are used
// unchanged, so wider requests never enlarge the image.
func TargetSize(srcW, srcH, filteredW, filteredH, columns int) (w, h int, resize bool) {
	if columns < 0 {
		columns = -columns
	} else if columns == 0 {
		columns = srcW
	}

	if columns == srcW {
		return filteredW, filteredH, false
	}
	if columns > srcW {
		return filteredW, filteredH, true
	}

	// ceil(srcW*f) and ceil(srcH*f) with f = columns/srcW, in integers.
	return columns, (srcH*columns + srcW - 1) / srcW, true
}
