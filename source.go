package edgeascii

import (
	"fmt"
	"os"

	"github.com/wbrown/edgeascii/imageutil"
)

// ImageSource loads an image file into a single-channel buffer.
type ImageSource interface {
	Load(path string) (*imageutil.GrayImage, error)
}

// FileSource reads images from the local filesystem. Colour files are
// reduced to one channel according to Mode.
type FileSource struct {
	Mode imageutil.GrayMode
}

// Load opens and decodes path. Every failure wraps ErrSourceUnavailable.
func (s FileSource) Load(path string) (*imageutil.GrayImage, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceUnavailable, path)
	}

	img, err := imageutil.LoadGray(path, s.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	return img, nil
}
