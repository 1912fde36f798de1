package core

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Surface is the draw target views and sprites render into.
// Coordinates are absolute canvas pixels.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h float64)

	// Draw copies the srcRect portion of src, scaled to fill dst.
	// srcRect is relative to the origin of src's bounds.
	Draw(src image.Image, srcRect, dst Rect)
}

// Canvas is an RGBA pixel buffer implementing Surface.
// It decouples view rendering from the terminal: views draw into it and the
// platform backend converts it into whatever the display understands.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas creates a new canvas with the given dimensions, cleared to black.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	c.Clear(ColorBlack)
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.img.Bounds().Dx()
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.img.Bounds().Dy()
}

// Size returns the canvas dimensions as floats, in the units views work in.
func (c *Canvas) Size() (float64, float64) {
	return float64(c.Width()), float64(c.Height())
}

// Bounds returns the canvas area as a Rect.
func (c *Canvas) Bounds() Rect {
	b := c.img.Bounds()
	return NewRect(float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()))
}

// Clear fills the entire canvas with the given color.
func (c *Canvas) Clear(col Color) {
	xdraw.Draw(c.img, c.img.Bounds(), image.NewUniform(col.RGBA()), image.Point{}, xdraw.Src)
}

// FillRect fills a rectangular area with the given color.
// Parts outside the canvas are clipped.
func (c *Canvas) FillRect(r Rect, col Color) {
	xdraw.Draw(c.img, r.ImageRect(), image.NewUniform(col.RGBA()), image.Point{}, xdraw.Src)
}

// Draw implements Surface. Scaling is nearest-neighbor so pixel art stays
// crisp; source alpha is composited over the canvas.
func (c *Canvas) Draw(src image.Image, srcRect, dst Rect) {
	dr := dst.ImageRect()
	sr := srcRect.ImageRect().Add(src.Bounds().Min)
	if dr.Empty() || sr.Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(c.img, dr, src, sr, xdraw.Over, nil)
}

// Sub returns a canvas sharing pixels with c but clipped to r.
// Coordinates stay absolute, so drawing at r.X lands on the left edge of the
// clipped area and anything outside r is discarded.
func (c *Canvas) Sub(r Rect) *Canvas {
	sub, ok := c.img.SubImage(r.ImageRect()).(*image.RGBA)
	if !ok {
		return &Canvas{img: image.NewRGBA(image.Rectangle{})}
	}
	return &Canvas{img: sub}
}

// At returns the color at the given pixel.
// Returns black for out-of-bounds coordinates.
func (c *Canvas) At(x, y int) Color {
	if !image.Pt(x, y).In(c.img.Bounds()) {
		return ColorBlack
	}
	return FromColor(c.img.RGBAAt(x, y))
}

// Image exposes the underlying pixels for backends.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}
