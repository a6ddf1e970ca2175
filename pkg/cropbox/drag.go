package cropbox

// DragMode says what a pointer drag is doing to the box
type DragMode int

const (
	DragNone DragMode = iota
	DragMove
	DragResize
)

func (m DragMode) String() string {
	switch m {
	case DragMove:
		return "move"
	case DragResize:
		return "resize"
	default:
		return "none"
	}
}

// Drag is the pointer interaction state for one press-move-release cycle.
// It lives with the caller; the box itself carries no drag fields.
type Drag struct {
	mode DragMode
	last Point
	// offset from the pointer to the box corner at press time
	grab Point
}

// Begin starts a drag at p. The handle wins over the box interior.
// Pressing outside the box starts nothing.
func (d *Drag) Begin(b CropBox, p Point, handleSize float64) DragMode {
	switch {
	case b.HitHandle(p, handleSize):
		c := b.Corner()
		d.mode = DragResize
		d.grab = Point{X: c.X - p.X, Y: c.Y - p.Y}
	case b.Contains(p):
		d.mode = DragMove
	default:
		d.mode = DragNone
	}
	d.last = p
	return d.mode
}

// Update applies the pointer position p to b according to the active mode
func (d *Drag) Update(b CropBox, p Point) CropBox {
	switch d.mode {
	case DragMove:
		b = b.Move(p.X-d.last.X, p.Y-d.last.Y)
	case DragResize:
		b = b.ResizeFromCorner(p.X+d.grab.X, p.Y+d.grab.Y)
	}
	d.last = p
	return b
}

// End clears the drag state
func (d *Drag) End() {
	*d = Drag{}
}

// Mode returns the active drag mode
func (d *Drag) Mode() DragMode {
	return d.mode
}

// Active reports whether a drag is in progress
func (d *Drag) Active() bool {
	return d.mode != DragNone
}
