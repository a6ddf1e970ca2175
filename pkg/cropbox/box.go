package cropbox

import (
	"image"
	"math"
)

// MinSide is the smallest side length a box can shrink to
const MinSide = 1.0

// CropBox is an axis-aligned square region in image coordinates.
//
// X and Y are the top-left corner. The position is never clamped to the image,
// so a box may sit partly or fully outside it. CropBox is a value type: every
// operation returns a new box and leaves the receiver untouched.
type CropBox struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Side float64 `json:"side"`
}

// Point is a position in image coordinates
type Point struct {
	X float64
	Y float64
}

// Centered returns a box of the given side centered on an image of imgW x imgH pixels
func Centered(imgW, imgH int, side float64) CropBox {
	return CenteredAt(float64(imgW)/2, float64(imgH)/2, side)
}

// CenteredAt returns a box of the given side whose center is (cx, cy)
func CenteredAt(cx, cy, side float64) CropBox {
	side = math.Max(side, MinSide)
	return CropBox{
		X:    cx - side/2,
		Y:    cy - side/2,
		Side: side,
	}
}

// Move translates the box by (dx, dy)
func (b CropBox) Move(dx, dy float64) CropBox {
	b.X += dx
	b.Y += dy
	return b
}

// ResizeFromCorner resizes the box as if its bottom-right corner were dragged to (px, py).
// Growth follows whichever axis the pointer moved further along, so the box stays square.
// The top-left corner does not move.
func (b CropBox) ResizeFromCorner(px, py float64) CropBox {
	dx := px - b.X - b.Side
	dy := py - b.Y - b.Side
	b.Side = math.Max(b.Side+math.Max(dx, dy), MinSide)
	return b
}

// BoundingRect returns the box as (x, y, width, height)
func (b CropBox) BoundingRect() (x, y, w, h float64) {
	return b.X, b.Y, b.Side, b.Side
}

// Corner returns the bottom-right corner
func (b CropBox) Corner() Point {
	return Point{X: b.X + b.Side, Y: b.Y + b.Side}
}

// Center returns the center point
func (b CropBox) Center() Point {
	return Point{X: b.X + b.Side/2, Y: b.Y + b.Side/2}
}

// Rect returns the box rounded to whole pixels
func (b CropBox) Rect() image.Rectangle {
	x := int(math.Round(b.X))
	y := int(math.Round(b.Y))
	s := int(math.Round(b.Side))
	return image.Rect(x, y, x+s, y+s)
}

// Contains reports whether p lies inside the box
func (b CropBox) Contains(p Point) bool {
	return p.X >= b.X && p.X < b.X+b.Side && p.Y >= b.Y && p.Y < b.Y+b.Side
}

// HandleRect returns the resize handle region, a square of the given size
// tucked into the bottom-right corner. It never exceeds the box itself.
func (b CropBox) HandleRect(size float64) (x, y, w, h float64) {
	size = math.Min(size, b.Side)
	return b.X + b.Side - size, b.Y + b.Side - size, size, size
}

// HitHandle reports whether p lies on the resize handle
func (b CropBox) HitHandle(p Point, size float64) bool {
	x, y, w, h := b.HandleRect(size)
	return p.X >= x && p.X <= x+w && p.Y >= y && p.Y <= y+h
}
