package placement

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"

	"github.com/menta2k/image-cropper/pkg/cropbox"
)

// Saliency centers the box on the most interesting square of the image as
// scored by smartcrop (edges, skin tones, saturation)
type Saliency struct {
	analyzer smartcrop.Analyzer
}

// NewSaliency creates a Saliency suggester resampling with filter
func NewSaliency(filter imaging.ResampleFilter) *Saliency {
	return &Saliency{analyzer: smartcrop.NewAnalyzer(&resizer{filter: filter})}
}

// Suggest implements Suggester
func (s *Saliency) Suggest(ctx context.Context, img image.Image, side float64) (cropbox.CropBox, error) {
	if err := ctx.Err(); err != nil {
		return cropbox.CropBox{}, err
	}

	n := int(math.Max(math.Round(side), 1))
	best, err := s.analyzer.FindBestCrop(img, n, n)
	if err != nil {
		return cropbox.CropBox{}, fmt.Errorf("finding best crop: %w", err)
	}

	cx := float64(best.Min.X) + float64(best.Dx())/2
	cy := float64(best.Min.Y) + float64(best.Dy())/2
	return cropbox.CenteredAt(cx, cy, side), nil
}

type resizer struct {
	filter imaging.ResampleFilter
}

func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.filter)
}
