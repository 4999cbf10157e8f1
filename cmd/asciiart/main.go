// Command asciiart prints an edge-traced ASCII rendering of an image.
//
// Usage:
//
//	asciiart [flags] <imagePath> [width [filter [asciiPattern]]]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"golang.org/x/term"

	"github.com/wbrown/edgeascii"
	"github.com/wbrown/edgeascii/backend/bild"
	"github.com/wbrown/edgeascii/backend/opencv"
	"github.com/wbrown/edgeascii/imageutil"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var backends = map[string]edgeascii.BackendFactory{
	"native": edgeascii.NewNativeBackend,
	"opencv": func() (edgeascii.ComputeBackend, error) { return opencv.New() },
	"bild":   func() (edgeascii.ComputeBackend, error) { return bild.New() },
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: asciiart [flags] <imagePath> [width [filter [asciiPattern]]]")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  width         output columns; negative values are made positive, 0 keeps the image width (default %d)\n", edgeascii.DefaultColumns)
	fmt.Fprintln(w, "  filter        kernel number or name; anything else selects Prewitt-X")
	fmt.Fprintf(w, "  asciiPattern  glyphs from black to white (default %q)\n", edgeascii.DefaultRampChars)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Filters:")
	printKernels(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func printKernels(w io.Writer) {
	for _, k := range imageutil.Kernels() {
		fmt.Fprintf(w, "  %d  %s\n", k.ID, k.Name)
	}
}

// parseFilter accepts a kernel number or a catalog name.
func parseFilter(s string) int {
	if id, err := strconv.Atoi(s); err == nil {
		return id
	}
	if k, ok := imageutil.KernelByName(s); ok {
		return k.ID
	}
	return edgeascii.NoFilter
}

// terminalWidth reports the width of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("asciiart", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}

	backendName := fs.String("backend", "native",
		"Compute backend: native, opencv or bild")
	grayMode := fs.String("gray", "luma",
		"Grey conversion for colour images: luma or lightness")
	fit := fs.Bool("fit", false,
		"Use the terminal width when no width is given")
	pngPath := fs.String("png", "",
		"Also write a PNG preview of the output to this path")
	fontSize := fs.Float64("fontsize", 12,
		"Font size in points for the PNG preview")
	sortRamp := fs.Bool("sortramp", false,
		"Reorder asciiPattern by glyph coverage in Go Mono")
	list := fs.Bool("list", false,
		"List the available filters and exit")
	verbose := fs.Bool("v", false,
		"Log pipeline stages to stderr")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(stdout, fs)
			return exitOK
		}
		usage(stderr, fs)
		return exitUsage
	}

	if *list {
		printKernels(stdout)
		return exitOK
	}

	pos := fs.Args()
	if len(pos) == 0 {
		usage(stdout, fs)
		return exitOK
	}
	if len(pos) > 4 {
		fmt.Fprintf(stderr, "Too many arguments: %d\n", len(pos))
		return exitUsage
	}

	factory, ok := backends[*backendName]
	if !ok {
		fmt.Fprintf(stderr, "Invalid backend %q, options are native, opencv or bild\n", *backendName)
		return exitUsage
	}
	mode, err := imageutil.ParseGrayMode(*grayMode)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid grey mode: %v\n", err)
		return exitUsage
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	columns := edgeascii.DefaultColumns
	if len(pos) > 1 {
		columns, err = strconv.Atoi(pos[1])
		if err != nil {
			fmt.Fprintf(stderr, "Invalid width %q\n", pos[1])
			return exitUsage
		}
	} else if *fit {
		if w, ok := terminalWidth(stdout); ok {
			columns = w
		}
	}

	filter := edgeascii.NoFilter
	if len(pos) > 2 {
		filter = parseFilter(pos[2])
	}
	ramp := edgeascii.DefaultRamp()
	if len(pos) > 3 {
		ramp = edgeascii.ParseRamp(pos[3])
	}
	if *sortRamp {
		ramp, err = edgeascii.SortRampByCoverage(ramp, edgeascii.PreviewOptions{FontSize: *fontSize})
		if err != nil {
			fmt.Fprintf(stderr, "Error sorting ramp: %v\n", err)
			return exitFailure
		}
		logger.Debug("ramp sorted", "ramp", ramp.String())
	}

	r := edgeascii.NewRenderer(
		edgeascii.WithColumns(columns),
		edgeascii.WithFilter(filter),
		edgeascii.WithRamp(ramp),
		edgeascii.WithBackend(factory),
		edgeascii.WithSource(edgeascii.FileSource{Mode: mode}),
		edgeascii.WithLogger(logger),
	)

	start := time.Now()
	text, err := r.RenderFile(pos[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error processing image: %v\n", err)
		return exitFailure
	}
	logger.Debug("done", "backend", *backendName, "elapsed", time.Since(start))

	if *pngPath != "" {
		opts := edgeascii.PreviewOptions{FontSize: *fontSize}
		if err := edgeascii.SavePreview(text, *pngPath, opts); err != nil {
			fmt.Fprintf(stderr, "Error writing PNG: %v\n", err)
			return exitFailure
		}
		logger.Debug("preview written", "path", *pngPath)
	}

	if _, err := io.WriteString(stdout, text); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return exitFailure
	}
	return exitOK
}
