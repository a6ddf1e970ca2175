package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/menta2k/image-cropper/pkg/cropbox"
	"github.com/menta2k/image-cropper/pkg/session"
)

var (
	boxFill     = color.NRGBA{A: 64}
	boxStroke   = color.NRGBA{R: 255, A: 255}
	handleColor = color.NRGBA{R: 255, A: 255}
	background  = color.NRGBA{R: 30, G: 30, B: 34, A: 255}
)

// CropCanvas shows the session image with its crop box and turns pointer
// drags into box moves and resizes
type CropCanvas struct {
	widget.BaseWidget

	session    *session.Session
	// handle side in widget units
	handleSize float32
	dragging   bool

	// OnEmptyTap runs when the canvas is tapped with no image loaded
	OnEmptyTap func()
}

// NewCropCanvas creates a canvas bound to s
func NewCropCanvas(s *session.Session, handleSize float32) *CropCanvas {
	c := &CropCanvas{session: s, handleSize: handleSize}
	c.ExtendBaseWidget(c)
	return c
}

func (c *CropCanvas) viewport() viewport {
	img := c.session.Image()
	if img == nil {
		return fitViewport(c.Size(), 0, 0)
	}
	b := img.Bounds()
	return fitViewport(c.Size(), b.Dx(), b.Dy())
}

// Tapped opens the load action on an empty canvas
func (c *CropCanvas) Tapped(*fyne.PointEvent) {
	if !c.session.HasImage() && c.OnEmptyTap != nil {
		c.OnEmptyTap()
	}
}

// Dragged moves or resizes the box. Fyne reports the first event after the
// pointer has already travelled, so the press point is recovered from its delta.
func (c *CropCanvas) Dragged(e *fyne.DragEvent) {
	if !c.session.HasImage() {
		return
	}
	vp := c.viewport()
	if !c.dragging {
		c.dragging = true
		start := e.Position.Subtract(e.Dragged)
		handle := vp.toImageLength(c.handleSize)
		if c.session.BeginDrag(vp.toImage(start), handle) == cropbox.DragNone {
			return
		}
	}
	if c.session.Dragging() == cropbox.DragNone {
		return
	}
	c.session.DragTo(vp.toImage(e.Position))
	c.Refresh()
}

// DragEnd finishes the drag
func (c *CropCanvas) DragEnd() {
	c.dragging = false
	c.session.EndDrag()
}

// MinSize keeps the canvas usable when the window is small
func (c *CropCanvas) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

// CreateRenderer implements fyne.Widget
func (c *CropCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(background)

	raster := canvas.NewImageFromImage(nil)
	raster.FillMode = canvas.ImageFillStretch

	shade := canvas.NewRectangle(boxFill)
	frame := canvas.NewRectangle(color.Transparent)
	frame.StrokeColor = boxStroke
	frame.StrokeWidth = 2
	handle := canvas.NewRectangle(handleColor)

	hint := canvas.NewText("Click or drop an image to load", theme.Color(theme.ColorNameForeground))
	hint.Alignment = fyne.TextAlignCenter

	r := &cropCanvasRenderer{
		c:      c,
		bg:     bg,
		raster: raster,
		shade:  shade,
		frame:  frame,
		handle: handle,
		hint:   hint,
	}
	r.objects = []fyne.CanvasObject{bg, raster, shade, frame, handle, hint}
	return r
}

type cropCanvasRenderer struct {
	c       *CropCanvas
	objects []fyne.CanvasObject

	bg           *canvas.Rectangle
	raster       *canvas.Image
	shade, frame *canvas.Rectangle
	handle       *canvas.Rectangle
	hint         *canvas.Text
	shown        image.Image
}

func (r *cropCanvasRenderer) Destroy()                     {}
func (r *cropCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *cropCanvasRenderer) MinSize() fyne.Size           { return r.c.MinSize() }

func (r *cropCanvasRenderer) Refresh() {
	if img := r.c.session.Image(); img != r.shown {
		r.shown = img
		r.raster.Image = img
		r.raster.Refresh()
	}
	r.Layout(r.c.Size())
	canvas.Refresh(r.c)
}

func (r *cropCanvasRenderer) Layout(size fyne.Size) {
	r.bg.Move(fyne.NewPos(0, 0))
	r.bg.Resize(size)

	box, ok := r.c.session.Box()
	if !ok {
		for _, o := range []fyne.CanvasObject{r.raster, r.shade, r.frame, r.handle} {
			o.Hide()
		}
		r.hint.Show()
		r.hint.Move(fyne.NewPos(0, size.Height/2-r.hint.MinSize().Height/2))
		r.hint.Resize(fyne.NewSize(size.Width, r.hint.MinSize().Height))
		return
	}
	r.hint.Hide()

	vp := r.c.viewport()
	pos, imgSize := vp.imageArea()
	r.raster.Move(pos)
	r.raster.Resize(imgSize)
	r.raster.Show()

	pos, boxSize := vp.boxArea(box)
	r.shade.Move(pos)
	r.shade.Resize(boxSize)
	r.frame.Move(pos)
	r.frame.Resize(boxSize)

	hx, hy, hw, _ := box.HandleRect(vp.toImageLength(r.c.handleSize))
	side := vp.toWidgetLength(hw)
	r.handle.Move(vp.toWidget(hx, hy))
	r.handle.Resize(fyne.NewSize(side, side))

	for _, o := range []fyne.CanvasObject{r.shade, r.frame, r.handle} {
		o.Show()
	}
}
