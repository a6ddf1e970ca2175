// Package imagefile decodes the source images the cropper accepts.
package imagefile

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned for images that are not PNG, JPEG or BMP
var ErrUnsupportedFormat = errors.New("unsupported image format")

// SupportedFormats are the decoder names accepted on input
var SupportedFormats = []string{"png", "jpeg", "bmp"}

// Extensions are the file extensions offered by open dialogs and accepted on drop
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// Info contains basic image metadata
type Info struct {
	Width       int
	Height      int
	AspectRatio float64
}

// Load opens and decodes an image file
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode decodes an image from r, applying EXIF orientation for JPEGs
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if !isFormatSupported(format) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	return img, nil
}

// IsSupportedPath reports whether path has an accepted image extension
func IsSupportedPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// GetInfo returns the dimensions of img
func GetInfo(img image.Image) Info {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	info := Info{Width: width, Height: height}
	if height > 0 {
		info.AspectRatio = float64(width) / float64(height)
	}
	return info
}

func isFormatSupported(format string) bool {
	for _, supported := range SupportedFormats {
		if strings.EqualFold(format, supported) {
			return true
		}
	}
	return false
}
