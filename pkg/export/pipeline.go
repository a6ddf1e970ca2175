// Package export turns a crop box over a source image into a saved JPEG.
package export

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/menta2k/image-cropper/pkg/cropbox"
)

// DefaultQuality is the JPEG quality used when none is configured
const DefaultQuality = 90

// ErrEmptyCrop is returned when the box does not overlap the image at all
var ErrEmptyCrop = errors.New("crop region does not overlap the image")

// Pipeline crops, scales and encodes. A zero Quality means DefaultQuality;
// a zero Filter is nearest-neighbour.
type Pipeline struct {
	Quality int
	Filter  imaging.ResampleFilter
}

// New returns a Pipeline with the given JPEG quality and Lanczos resampling
func New(quality int) *Pipeline {
	return &Pipeline{Quality: quality, Filter: imaging.Lanczos}
}

// Crop extracts the part of img covered by box. Box coordinates are relative to
// the image origin. Regions hanging over the edge are clipped to the pixels that
// exist, so the result may be smaller than the box or not square.
func Crop(img image.Image, box cropbox.CropBox) (image.Image, error) {
	bounds := img.Bounds()
	rect := box.Rect().Add(bounds.Min).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("%w: box %v, image %v", ErrEmptyCrop, box.Rect(), bounds)
	}
	return imaging.Crop(img, rect), nil
}

// FitSize returns the largest size with the aspect ratio of w x h that fits in tw x th
func FitSize(w, h, tw, th int) (int, int) {
	if w <= 0 || h <= 0 || tw <= 0 || th <= 0 {
		return 0, 0
	}
	scale := math.Min(float64(tw)/float64(w), float64(th)/float64(h))
	fw := int(math.Round(float64(w) * scale))
	fh := int(math.Round(float64(h) * scale))
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	return fw, fh
}

// Scale resizes img to fit within tw x th keeping its aspect ratio.
// It scales up as well as down.
func Scale(img image.Image, tw, th int, filter imaging.ResampleFilter) image.Image {
	b := img.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), tw, th)
	if w == 0 || h == 0 {
		return img
	}
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	return imaging.Resize(img, w, h, filter)
}

// Encode writes img to w as JPEG
func Encode(w io.Writer, img image.Image, quality int) error {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return nil
}

// EncodeAndSave writes img to path as JPEG regardless of the path's extension.
// The JPEG is encoded into a temporary file in the same directory and renamed
// over path, so a failed save never truncates or removes an existing file.
func EncodeAndSave(img image.Image, path string, quality int) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := Encode(tmp, img, quality); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move output file into place: %w", err)
	}
	return nil
}

// Render crops img to box and scales the result to target
func (p *Pipeline) Render(img image.Image, box cropbox.CropBox, target cropbox.Target) (image.Image, error) {
	cropped, err := Crop(img, box)
	if err != nil {
		return nil, err
	}
	w, h := target.Size()
	return Scale(cropped, w, h, p.Filter), nil
}

// Export renders the crop and saves it to path
func (p *Pipeline) Export(img image.Image, box cropbox.CropBox, target cropbox.Target, path string) error {
	out, err := p.Render(img, box, target)
	if err != nil {
		return err
	}
	return EncodeAndSave(out, path, p.quality())
}

// ExportTo renders the crop and writes it to w
func (p *Pipeline) ExportTo(w io.Writer, img image.Image, box cropbox.CropBox, target cropbox.Target) error {
	out, err := p.Render(img, box, target)
	if err != nil {
		return err
	}
	return Encode(w, out, p.quality())
}

func (p *Pipeline) quality() int {
	if p.Quality == 0 {
		return DefaultQuality
	}
	return p.Quality
}
