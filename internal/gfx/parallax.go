package gfx

import (
	"math"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// ParallaxSprite is a horizontally tiling sprite that scrolls at a constant
// velocity in source pixels per second.
type ParallaxSprite struct {
	sprite   Sprite
	velocity float64
	phase    float64 // always in [0, w)
}

// NewParallax creates a scrolling layer starting at phase zero.
func NewParallax(sprite Sprite, velocity float64) *ParallaxSprite {
	return &ParallaxSprite{sprite: sprite, velocity: velocity}
}

// LoadParallax loads the image at path as a scrolling layer.
func LoadParallax(loader ImageLoader, path string, velocity float64) (*ParallaxSprite, error) {
	s, err := Load(loader, path)
	if err != nil {
		return nil, err
	}
	return NewParallax(s, velocity), nil
}

// Advance moves the phase by velocity*elapsed, wrapping at the sprite width.
// Negative velocities scroll the other way.
func (p *ParallaxSprite) Advance(elapsed float64) {
	w, _ := p.sprite.Size()
	if w <= 0 {
		return
	}
	phase := math.Mod(p.phase+p.velocity*elapsed, w)
	if phase < 0 {
		phase += w
	}
	if phase >= w {
		phase = 0
	}
	p.phase = phase
}

// Render advances by elapsed and fills dest with copies of the sprite,
// scaled to the destination height and shifted by the current phase.
// A nil dest fills the whole canvas. Drawing never leaves dest.
func (p *ParallaxSprite) Render(dst *core.Canvas, dest *core.Rect, elapsed float64) {
	p.Advance(elapsed)

	area := dst.Bounds()
	if dest != nil {
		area = *dest
	}

	w, h := p.sprite.Size()
	if w <= 0 || h <= 0 || area.W <= 0 || area.H <= 0 {
		return
	}

	scale := area.H / h
	tileW := w * scale
	clip := dst.Sub(area)

	for left := area.X - p.phase*scale; left < area.Right(); left += tileW {
		p.sprite.Render(clip, core.NewRect(left, area.Y, tileW, area.H))
	}
}

// Phase returns the current horizontal offset in source pixels.
func (p *ParallaxSprite) Phase() float64 {
	return p.phase
}
