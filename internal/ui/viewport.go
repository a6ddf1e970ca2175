package ui

import (
	"fyne.io/fyne/v2"

	"github.com/menta2k/image-cropper/pkg/cropbox"
)

// viewport maps between widget coordinates and image pixels for an image
// drawn contain-fit and centered inside the widget
type viewport struct {
	scale  float32
	offset fyne.Position
	imgW   int
	imgH   int
}

func fitViewport(size fyne.Size, imgW, imgH int) viewport {
	if imgW <= 0 || imgH <= 0 || size.Width <= 0 || size.Height <= 0 {
		return viewport{scale: 1, imgW: imgW, imgH: imgH}
	}
	sx := size.Width / float32(imgW)
	sy := size.Height / float32(imgH)
	scale := sx
	if sy < sx {
		scale = sy
	}
	return viewport{
		scale:  scale,
		offset: fyne.NewPos(
			(size.Width-float32(imgW)*scale)/2,
			(size.Height-float32(imgH)*scale)/2,
		),
		imgW: imgW,
		imgH: imgH,
	}
}

func (v viewport) toImage(p fyne.Position) cropbox.Point {
	return cropbox.Point{
		X: float64((p.X - v.offset.X) / v.scale),
		Y: float64((p.Y - v.offset.Y) / v.scale),
	}
}

func (v viewport) toWidget(x, y float64) fyne.Position {
	return fyne.NewPos(
		float32(x)*v.scale+v.offset.X,
		float32(y)*v.scale+v.offset.Y,
	)
}

func (v viewport) toWidgetLength(l float64) float32 {
	return float32(l) * v.scale
}

func (v viewport) toImageLength(l float32) float64 {
	return float64(l / v.scale)
}

// imageArea is where the image itself is drawn
func (v viewport) imageArea() (fyne.Position, fyne.Size) {
	return v.offset, fyne.NewSize(float32(v.imgW)*v.scale, float32(v.imgH)*v.scale)
}

func (v viewport) boxArea(b cropbox.CropBox) (fyne.Position, fyne.Size) {
	side := v.toWidgetLength(b.Side)
	return v.toWidget(b.X, b.Y), fyne.NewSize(side, side)
}
