package imageutil

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spakin/netpbm"
)

// netpbmExts are decoded with netpbm rather than imaging.
var netpbmExts = map[string]bool{
	".pgm": true,
	".pbm": true,
	".ppm": true,
	".pnm": true,
	".pam": true,
}

// LoadImage loads an image from the specified path. Netpbm files are
// decoded with netpbm; PNG, JPEG, GIF, TIFF and BMP go through imaging,
// which also applies EXIF orientation.
func LoadImage(path string) (image.Image, error) {
	if netpbmExts[strings.ToLower(filepath.Ext(path))] {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()

		img, err := netpbm.Decode(f, &netpbm.DecodeOptions{Target: netpbm.PGM})
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		return img, nil
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return img, nil
}

// LoadGray loads an image and reduces it to one channel.
func LoadGray(path string, mode GrayMode) (*GrayImage, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return ToGray(img, mode), nil
}

// SavePNG saves an image as PNG to the specified path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}

// SavePGM saves a grayscale image as binary PGM (P5, maxval 255).
func SavePGM(img *GrayImage, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	opts := &netpbm.EncodeOptions{Format: netpbm.PGM, MaxValue: 255, Plain: false}
	if err := netpbm.Encode(f, img.Gray, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode pgm: %w", err)
	}
	return f.Close()
}
