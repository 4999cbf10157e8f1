package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/wbrown/edgeascii"
	"github.com/wbrown/edgeascii/imageutil"
)

// writeTestImage saves an edge pattern as PGM and returns its path.
func writeTestImage(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edges.pgm")
	if err := imageutil.SavePGM(imageutil.CreateEdgeImage(w, h), path); err != nil {
		t.Fatalf("SavePGM failed: %v", err)
	}
	return path
}

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestNoArgumentsPrintsUsage(t *testing.T) {
	code, stdout, _ := runCLI()
	if code != exitOK {
		t.Errorf("Expected exit %d, got %d", exitOK, code)
	}
	for _, want := range []string{"Usage:", "Prewitt-X", "Scharr-Y-improved", "-backend"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Usage missing %q:\n%s", want, stdout)
		}
	}
}

func TestHelpFlag(t *testing.T) {
	code, stdout, _ := runCLI("-h")
	if code != exitOK {
		t.Errorf("Expected exit %d, got %d", exitOK, code)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Errorf("Expected usage on stdout, got %q", stdout)
	}
}

func TestListFilters(t *testing.T) {
	code, stdout, _ := runCLI("-list")
	if code != exitOK {
		t.Fatalf("Expected exit %d, got %d", exitOK, code)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != len(imageutil.Kernels()) {
		t.Errorf("Expected %d filters, got %d", len(imageutil.Kernels()), len(lines))
	}
	if !strings.Contains(lines[0], "Sobel-X") {
		t.Errorf("Expected Sobel-X first, got %q", lines[0])
	}
}

func TestRender(t *testing.T) {
	path := writeTestImage(t, 100, 60)

	code, stdout, stderr := runCLI(path, "50")
	if code != exitOK {
		t.Fatalf("Expected exit %d, got %d: %s", exitOK, code, stderr)
	}

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	if len(lines) != 30 {
		t.Errorf("Expected 30 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if n := utf8.RuneCountInString(l); n != 50 {
			t.Fatalf("Line %d: expected 50 characters, got %d", i, n)
		}
	}

	want, err := edgeascii.NewRenderer(edgeascii.WithColumns(50)).RenderFile(path)
	if err != nil {
		t.Fatalf("RenderFile failed: %v", err)
	}
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("CLI output differs from library (-want +got):\n%s", diff)
	}
}

func TestRenderDefaultWidth(t *testing.T) {
	path := writeTestImage(t, 160, 40)

	code, stdout, _ := runCLI(path)
	if code != exitOK {
		t.Fatalf("Expected exit %d, got %d", exitOK, code)
	}
	first := strings.SplitN(stdout, "\n", 2)[0]
	if n := utf8.RuneCountInString(first); n != edgeascii.DefaultColumns {
		t.Errorf("Expected %d columns, got %d", edgeascii.DefaultColumns, n)
	}

	// A buffer is not a terminal, so -fit keeps the default.
	code, fitted, _ := runCLI("-fit", path)
	if code != exitOK {
		t.Fatalf("Expected exit %d, got %d", exitOK, code)
	}
	if fitted != stdout {
		t.Error("-fit without a terminal should match the default width")
	}
}

func TestFilterByName(t *testing.T) {
	path := writeTestImage(t, 64, 48)

	_, byNumber, _ := runCLI(path, "32", "0")
	_, byName, _ := runCLI(path, "32", "sobel-x")
	if byNumber == "" || byNumber != byName {
		t.Error("Filter by name should match filter by number")
	}

	_, fallback, _ := runCLI(path, "32", "no-such-filter")
	_, prewitt, _ := runCLI(path, "32", "8")
	if fallback != prewitt {
		t.Error("Unknown filter should fall back to Prewitt-X")
	}
}

func TestCustomRamp(t *testing.T) {
	path := writeTestImage(t, 40, 20)

	code, stdout, _ := runCLI(path, "0", "0", ".#")
	if code != exitOK {
		t.Fatalf("Expected exit %d, got %d", exitOK, code)
	}
	for _, r := range stdout {
		if r != '.' && r != '#' && r != '\n' {
			t.Fatalf("Unexpected glyph %q", r)
		}
	}
}

func TestArgumentErrors(t *testing.T) {
	path := writeTestImage(t, 20, 20)

	tests := []struct {
		name string
		args []string
	}{
		{"bad width", []string{path, "wide"}},
		{"too many arguments", []string{path, "10", "1", "ab", "extra"}},
		{"unknown backend", []string{"-backend", "cuda", path}},
		{"unknown grey mode", []string{"-gray", "sepia", path}},
		{"unknown flag", []string{"-nope", path}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(tt.args...)
			if code != exitUsage {
				t.Errorf("Expected exit %d, got %d", exitUsage, code)
			}
			if stdout != "" {
				t.Errorf("Expected no stdout, got %q", stdout)
			}
			if stderr == "" {
				t.Error("Expected a diagnostic on stderr")
			}
		})
	}
}

func TestMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.pgm")

	code, stdout, stderr := runCLI(missing, "40")
	if code != exitFailure {
		t.Errorf("Expected exit %d, got %d", exitFailure, code)
	}
	if stdout != "" {
		t.Errorf("Expected no stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "source image unavailable") {
		t.Errorf("Expected source error, got %q", stderr)
	}
}

func TestImageTooSmall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.pgm")
	if err := imageutil.SavePGM(imageutil.NewGrayImage(2, 2), path); err != nil {
		t.Fatalf("SavePGM failed: %v", err)
	}

	code, stdout, stderr := runCLI(path)
	if code != exitFailure {
		t.Errorf("Expected exit %d, got %d", exitFailure, code)
	}
	if stdout != "" {
		t.Errorf("Expected no stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "correlate stage") {
		t.Errorf("Expected correlate stage error, got %q", stderr)
	}
}

func TestBildBackend(t *testing.T) {
	path := writeTestImage(t, 80, 40)

	_, native, _ := runCLI(path, "0")
	code, got, stderr := runCLI("-backend", "bild", path, "0")
	if code != exitOK {
		t.Fatalf("Expected exit %d, got %d: %s", exitOK, code, stderr)
	}
	if diff := cmp.Diff(native, got); diff != "" {
		t.Errorf("bild output differs from native (-native +bild):\n%s", diff)
	}
}

func TestPNGPreview(t *testing.T) {
	path := writeTestImage(t, 60, 40)
	pngPath := filepath.Join(t.TempDir(), "preview.png")

	code, stdout, stderr := runCLI("-png", pngPath, path, "30")
	if code != exitOK {
		t.Fatalf("Expected exit %d, got %d: %s", exitOK, code, stderr)
	}
	if stdout == "" {
		t.Error("Expected text on stdout as well")
	}
	info, err := os.Stat(pngPath)
	if err != nil {
		t.Fatalf("Preview not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Preview is empty")
	}
}

func TestVerboseLogging(t *testing.T) {
	path := writeTestImage(t, 60, 40)

	code, _, stderr := runCLI("-v", path, "30")
	if code != exitOK {
		t.Fatalf("Expected exit %d, got %d", exitOK, code)
	}
	for _, want := range []string{"msg=loaded", "msg=filtered", "msg=resized", "msg=done"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestSortRamp(t *testing.T) {
	path := writeTestImage(t, 40, 20)

	_, sorted, _ := runCLI(path, "0", "0", " .:@")
	code, got, stderr := runCLI("-sortramp", path, "0", "0", "@:. ")
	if code != exitOK {
		t.Fatalf("Expected exit %d, got %d: %s", exitOK, code, stderr)
	}
	if diff := cmp.Diff(sorted, got); diff != "" {
		t.Errorf("Sorted ramp output differs (-want +got):\n%s", diff)
	}
}
