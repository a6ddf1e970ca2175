package export

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/menta2k/image-cropper/pkg/cropbox"
)

// OverlayOptions controls how the crop box is drawn on a preview
type OverlayOptions struct {
	Stroke     color.NRGBA
	Fill       color.NRGBA
	Handle     color.NRGBA
	StrokeSize int
	HandleSize int
}

// DefaultOverlayOptions draws a red frame over a darkened box with a red corner handle
func DefaultOverlayOptions(img image.Image) OverlayOptions {
	b := img.Bounds()
	short := math.Min(float64(b.Dx()), float64(b.Dy()))
	return OverlayOptions{
		Stroke:     color.NRGBA{255, 0, 0, 255},
		Fill:       color.NRGBA{0, 0, 0, 64},
		Handle:     color.NRGBA{255, 0, 0, 255},
		StrokeSize: int(math.Max(2, 0.004*short)),
		HandleSize: int(math.Max(8, 0.02*short)),
	}
}

// Overlay returns a copy of img with box drawn on top
func Overlay(img image.Image, box cropbox.CropBox, opts OverlayOptions) *image.NRGBA {
	dst := imaging.Clone(img)
	r := box.Rect()

	inner := r.Intersect(dst.Bounds())
	if !inner.Empty() {
		shade := imaging.New(inner.Dx(), inner.Dy(), opts.Fill)
		dst = imaging.Overlay(dst, shade, inner.Min, 1.0)
	}

	s := opts.StrokeSize
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+s), opts.Stroke)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-s, r.Max.X, r.Max.Y), opts.Stroke)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+s, r.Max.Y), opts.Stroke)
	fillRect(dst, image.Rect(r.Max.X-s, r.Min.Y, r.Max.X, r.Max.Y), opts.Stroke)

	hx, hy, hw, hh := box.HandleRect(float64(opts.HandleSize))
	handle := image.Rect(
		int(math.Round(hx)), int(math.Round(hy)),
		int(math.Round(hx+hw)), int(math.Round(hy+hh)),
	)
	fillRect(dst, handle, opts.Handle)

	return dst
}

func fillRect(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}
