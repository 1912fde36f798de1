package gfx

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// recordSurface captures draw calls instead of rasterizing them.
type recordSurface struct {
	w, h  float64
	calls []drawCall
}

type drawCall struct {
	src, dst core.Rect
}

func (r *recordSurface) Size() (float64, float64) { return r.w, r.h }

func (r *recordSurface) Draw(_ image.Image, src, dst core.Rect) {
	r.calls = append(r.calls, drawCall{src: src, dst: dst})
}

type mapLoader map[string]image.Image

func (m mapLoader) LoadImage(path string) (image.Image, error) {
	img, ok := m[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return img, nil
}

// pureRed is color.RGBA{R: 255, A: 255} as a canvas color.
var pureRed = core.RGB(255, 0, 0)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestNewSpriteCoversImage(t *testing.T) {
	s := NewSprite(image.NewRGBA(image.Rect(0, 0, 64, 32)))

	w, h := s.Size()
	if w != 64 || h != 32 {
		t.Errorf("Size() = (%v, %v), expected (64, 32)", w, h)
	}
	if s.Bounds() != core.NewRect(0, 0, 64, 32) {
		t.Errorf("Bounds() = %v", s.Bounds())
	}
}

func TestLoad(t *testing.T) {
	loader := mapLoader{"ship.png": image.NewRGBA(image.Rect(0, 0, 24, 16))}

	s, err := Load(loader, "ship.png")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if w, h := s.Size(); w != 24 || h != 16 {
		t.Errorf("Size() = (%v, %v)", w, h)
	}

	if _, err := Load(loader, "missing.png"); err == nil {
		t.Error("Load() of a missing image should fail")
	}
}

func TestRegion(t *testing.T) {
	base := NewSprite(image.NewRGBA(image.Rect(0, 0, 64, 32)))

	tests := []struct {
		name     string
		r        core.Rect
		expected core.Rect
		wantErr  bool
	}{
		{"top left quarter", core.NewRect(0, 0, 32, 16), core.NewRect(0, 0, 32, 16), false},
		{"full", core.NewRect(0, 0, 64, 32), core.NewRect(0, 0, 64, 32), false},
		{"inner", core.NewRect(10, 5, 4, 4), core.NewRect(10, 5, 4, 4), false},
		{"too wide", core.NewRect(40, 0, 32, 16), core.Rect{}, true},
		{"negative origin", core.NewRect(-1, 0, 4, 4), core.Rect{}, true},
		{"negative size", core.NewRect(0, 0, -4, 4), core.Rect{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := base.Region(tc.r)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidRegion) {
					t.Errorf("Region(%v) error = %v, expected ErrInvalidRegion", tc.r, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Region(%v) error = %v", tc.r, err)
			}
			if got.Bounds() != tc.expected {
				t.Errorf("Region(%v).Bounds() = %v, expected %v", tc.r, got.Bounds(), tc.expected)
			}
			if got.Texture() != base.Texture() {
				t.Error("Region should share the texture")
			}
		})
	}
}

func TestRegionIsRelative(t *testing.T) {
	base := NewSprite(image.NewRGBA(image.Rect(0, 0, 64, 32)))

	half, err := base.Region(core.NewRect(32, 0, 32, 32))
	if err != nil {
		t.Fatalf("Region() error = %v", err)
	}

	inner, err := half.Region(core.NewRect(8, 8, 8, 8))
	if err != nil {
		t.Fatalf("nested Region() error = %v", err)
	}
	if inner.Bounds() != core.NewRect(40, 8, 8, 8) {
		t.Errorf("nested Region().Bounds() = %v, expected offset by parent origin", inner.Bounds())
	}

	if _, err := half.Region(core.NewRect(30, 0, 4, 4)); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("nested Region outside parent error = %v", err)
	}
}

func TestGrid(t *testing.T) {
	sheet := NewSprite(image.NewRGBA(image.Rect(0, 0, 72, 48)))

	frames, err := sheet.Grid(3, 3)
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	if len(frames) != 9 {
		t.Fatalf("Grid() returned %d frames, expected 9", len(frames))
	}

	expected := []core.Rect{
		core.NewRect(0, 0, 24, 16), core.NewRect(24, 0, 24, 16), core.NewRect(48, 0, 24, 16),
		core.NewRect(0, 16, 24, 16), core.NewRect(24, 16, 24, 16), core.NewRect(48, 16, 24, 16),
		core.NewRect(0, 32, 24, 16), core.NewRect(24, 32, 24, 16), core.NewRect(48, 32, 24, 16),
	}
	for i, f := range frames {
		if f.Bounds() != expected[i] {
			t.Errorf("frame %d = %v, expected %v", i, f.Bounds(), expected[i])
		}
	}

	if _, err := sheet.Grid(0, 3); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("Grid(0, 3) error = %v, expected ErrInvalidRegion", err)
	}
}

func TestRenderDrawsSourceIntoDest(t *testing.T) {
	base := NewSprite(image.NewRGBA(image.Rect(0, 0, 64, 32)))
	part, _ := base.Region(core.NewRect(16, 8, 8, 8))

	surf := &recordSurface{w: 320, h: 192}
	part.Render(surf, core.NewRect(100, 50, 16, 16))

	if len(surf.calls) != 1 {
		t.Fatalf("Render made %d draw calls, expected 1", len(surf.calls))
	}
	if got := surf.calls[0]; got.src != core.NewRect(16, 8, 8, 8) || got.dst != core.NewRect(100, 50, 16, 16) {
		t.Errorf("Render draw = %+v", got)
	}

	var zero Sprite
	zero.Render(surf, core.NewRect(0, 0, 1, 1))
	if len(surf.calls) != 1 {
		t.Error("zero Sprite should draw nothing")
	}
}

func TestRenderOntoCanvas(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	s := NewSprite(solid(4, 4, red))

	c := core.NewCanvas(16, 16)
	s.Render(c, core.NewRect(4, 4, 8, 8))

	if c.At(4, 4) != pureRed || c.At(11, 11) != pureRed {
		t.Error("sprite should cover the destination")
	}
	if c.At(3, 3) != core.ColorBlack || c.At(12, 12) != core.ColorBlack {
		t.Error("sprite should not leave the destination")
	}
}
