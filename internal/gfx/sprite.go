// Package gfx holds the drawable primitives views compose frames from:
// sprites cut out of shared textures, horizontally scrolling parallax
// backgrounds and text rendered into sprites.
package gfx

import (
	"errors"
	"fmt"
	"image"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// ErrInvalidRegion is returned when a requested sub-region does not fit
// inside the sprite it is cut from.
var ErrInvalidRegion = errors.New("invalid sprite region")

// ImageLoader decodes images by asset path.
type ImageLoader interface {
	LoadImage(path string) (image.Image, error)
}

// Texture is one decoded image shared by every sprite cut from it.
// It is released once no sprite references it.
type Texture struct {
	img image.Image
}

// Image returns the decoded pixels.
func (t *Texture) Image() image.Image {
	return t.img
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (w, h float64) {
	b := t.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Sprite is a rectangular region of a texture. Copies are cheap and share
// the texture.
type Sprite struct {
	tex *Texture
	src core.Rect
}

// NewSprite wraps img in a sprite covering the whole image.
func NewSprite(img image.Image) Sprite {
	tex := &Texture{img: img}
	w, h := tex.Size()
	return Sprite{tex: tex, src: core.NewRect(0, 0, w, h)}
}

// Load decodes the image at path and wraps it in a full-size sprite.
func Load(loader ImageLoader, path string) (Sprite, error) {
	img, err := loader.LoadImage(path)
	if err != nil {
		return Sprite{}, fmt.Errorf("gfx: load sprite %s: %w", path, err)
	}
	return NewSprite(img), nil
}

// Region returns a sprite for r, given relative to this sprite's own
// top-left corner. The result shares the texture.
func (s Sprite) Region(r core.Rect) (Sprite, error) {
	if r.W < 0 || r.H < 0 {
		return Sprite{}, fmt.Errorf("%w: %v has negative size", ErrInvalidRegion, r)
	}
	abs := r.Translate(s.src.X, s.src.Y)
	if !s.src.Contains(abs) {
		return Sprite{}, fmt.Errorf("%w: %v outside %v", ErrInvalidRegion, r, s.src)
	}
	return Sprite{tex: s.tex, src: abs}, nil
}

// Grid splits the sprite into cols x rows equal frames, ordered left to
// right then top to bottom.
func (s Sprite) Grid(cols, rows int) ([]Sprite, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidRegion, cols, rows)
	}
	fw := s.src.W / float64(cols)
	fh := s.src.H / float64(rows)

	frames := make([]Sprite, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			frame, err := s.Region(core.NewRect(float64(col)*fw, float64(row)*fh, fw, fh))
			if err != nil {
				return nil, err
			}
			frames = append(frames, frame)
		}
	}
	return frames, nil
}

// Size returns the width and height of the source region.
func (s Sprite) Size() (w, h float64) {
	return s.src.W, s.src.H
}

// Bounds returns the source region in texture coordinates.
func (s Sprite) Bounds() core.Rect {
	return s.src
}

// Texture returns the shared texture, nil for the zero Sprite.
func (s Sprite) Texture() *Texture {
	return s.tex
}

// Render draws the source region scaled to dest.
func (s Sprite) Render(dst core.Surface, dest core.Rect) {
	if s.tex == nil {
		return
	}
	dst.Draw(s.tex.img, s.src, dest)
}
