// Package placement suggests where a crop box of a given side should start out.
package placement

import (
	"context"
	"fmt"
	"image"

	"github.com/menta2k/image-cropper/pkg/cropbox"
)

// Suggester proposes a box of the given side over img
type Suggester interface {
	Suggest(ctx context.Context, img image.Image, side float64) (cropbox.CropBox, error)
}

// Mode names a Suggester in configuration
type Mode string

const (
	ModeCenter   Mode = "center"
	ModeSaliency Mode = "saliency"
	ModeVision   Mode = "vision"
)

// ParseMode validates a configured placement mode
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeCenter, ModeSaliency, ModeVision:
		return m, nil
	}
	return "", fmt.Errorf("unknown placement mode %q (use center, saliency or vision)", s)
}

// Center places the box on the image's geometric center
type Center struct{}

// Suggest implements Suggester
func (Center) Suggest(_ context.Context, img image.Image, side float64) (cropbox.CropBox, error) {
	b := img.Bounds()
	return cropbox.Centered(b.Dx(), b.Dy(), side), nil
}
