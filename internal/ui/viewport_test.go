package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"

	"github.com/menta2k/image-cropper/pkg/cropbox"
)

func TestFitViewportLandscape(t *testing.T) {
	v := fitViewport(fyne.NewSize(800, 600), 2000, 1000)

	assert.InDelta(t, 0.4, v.scale, 1e-6)
	assert.InDelta(t, 0, v.offset.X, 1e-4)
	assert.InDelta(t, 100, v.offset.Y, 1e-4)

	pos, size := v.imageArea()
	assert.InDelta(t, 100, pos.Y, 1e-4)
	assert.InDelta(t, 800, size.Width, 1e-3)
	assert.InDelta(t, 400, size.Height, 1e-3)
}

func TestFitViewportPortrait(t *testing.T) {
	v := fitViewport(fyne.NewSize(800, 600), 600, 1200)

	assert.InDelta(t, 0.5, v.scale, 1e-6)
	assert.InDelta(t, 250, v.offset.X, 1e-4)
	assert.InDelta(t, 0, v.offset.Y, 1e-4)
}

func TestViewportRoundTrip(t *testing.T) {
	v := fitViewport(fyne.NewSize(1000, 700), 4000, 2000)

	for _, p := range []cropbox.Point{{X: 0, Y: 0}, {X: 1234, Y: 567}, {X: 4000, Y: 2000}, {X: -50, Y: 2100}} {
		w := v.toWidget(p.X, p.Y)
		back := v.toImage(w)
		assert.InDelta(t, p.X, back.X, 0.01)
		assert.InDelta(t, p.Y, back.Y, 0.01)
	}

	assert.InDelta(t, 80.0, v.toImageLength(20), 1e-4)
	assert.InDelta(t, float32(20), v.toWidgetLength(80), 1e-4)
}

func TestViewportBoxArea(t *testing.T) {
	v := fitViewport(fyne.NewSize(512, 512), 1024, 1024)

	pos, size := v.boxArea(cropbox.CropBox{X: 256, Y: 256, Side: 512})
	assert.InDelta(t, 128, pos.X, 1e-4)
	assert.InDelta(t, 128, pos.Y, 1e-4)
	assert.InDelta(t, 256, size.Width, 1e-4)
	assert.Equal(t, size.Width, size.Height)
}

func TestFitViewportDegenerate(t *testing.T) {
	v := fitViewport(fyne.NewSize(0, 0), 100, 100)
	assert.Equal(t, float32(1), v.scale)

	v = fitViewport(fyne.NewSize(100, 100), 0, 0)
	assert.Equal(t, float32(1), v.scale)
}
