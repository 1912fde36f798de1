// Package core provides the fundamental runtime types of the shooter framework:
// geometry, colors, the pixel canvas views draw into, and the debounced input
// sampler. It knows nothing about terminals, Bubble Tea or tcell so views and
// their logic stay pure and testable.
package core

import (
	"fmt"
	"image"
	"math"
)

// Rect is an axis-aligned rectangle in floating-point pixel units.
// W and H must never be negative. Rect is a value type: every transform
// returns a new instance.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Empty reports whether the rectangle has zero area.
func (r Rect) Empty() bool {
	return r.W == 0 || r.H == 0
}

// Contains returns true if every corner of other lies inside r.
// Edges are inclusive, so a rectangle contains itself.
func (r Rect) Contains(other Rect) bool {
	xMin, xMax := other.X, other.Right()
	yMin, yMax := other.Y, other.Bottom()

	return xMin >= r.X && xMin <= r.Right() &&
		xMax >= r.X && xMax <= r.Right() &&
		yMin >= r.Y && yMin <= r.Bottom() &&
		yMax >= r.Y && yMax <= r.Bottom()
}

// Overlaps returns true if the two rectangles share some interior area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.Right() &&
		other.X < r.Right() &&
		r.Y < other.Bottom() &&
		other.Y < r.Bottom()
}

// MoveInside returns r shifted so that it lies fully within parent, keeping
// its size. Each axis is handled independently: a low edge before the
// parent's is snapped to it, a high edge at or past the parent's is pulled
// back. Returns false when r is wider or taller than parent.
func (r Rect) MoveInside(parent Rect) (Rect, bool) {
	if r.W > parent.W || r.H > parent.H {
		return Rect{}, false
	}

	x := r.X
	switch {
	case r.X < parent.X:
		x = parent.X
	case r.Right() >= parent.Right():
		x = parent.Right() - r.W
	}

	y := r.Y
	switch {
	case r.Y < parent.Y:
		y = parent.Y
	case r.Bottom() >= parent.Bottom():
		y = parent.Bottom() - r.H
	}

	return Rect{X: x, Y: y, W: r.W, H: r.H}, true
}

// ImageRect converts r to an integer pixel rectangle by flooring both edges,
// so adjacent rects tile without gaps. Panics on a negative size.
func (r Rect) ImageRect() image.Rectangle {
	if r.W < 0 || r.H < 0 {
		panic(fmt.Sprintf("core: negative rect size %vx%v", r.W, r.H))
	}
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Floor(r.X+r.W)), int(math.Floor(r.Y+r.H)),
	)
}

// String formats the rectangle for diagnostics.
func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
}
