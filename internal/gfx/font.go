package gfx

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Font paths resolved without touching the asset loader.
const (
	FontRegular = "builtin:go-regular"
	FontBold    = "builtin:go-bold"
)

var builtinFonts = map[string][]byte{
	FontRegular: goregular.TTF,
	FontBold:    gobold.TTF,
}

// FontLoader reads raw font files by asset path.
type FontLoader interface {
	ReadFile(path string) ([]byte, error)
}

type faceKey struct {
	path string
	size float64
}

// FontCache loads each (font, point size) face once and renders text into
// sprites. It is owned by one runtime and is not safe for concurrent use.
type FontCache struct {
	loader FontLoader
	fonts  map[string]*opentype.Font
	faces  map[faceKey]font.Face
}

// NewFontCache creates an empty cache. loader may be nil when only the
// builtin fonts are used.
func NewFontCache(loader FontLoader) *FontCache {
	return &FontCache{
		loader: loader,
		fonts:  make(map[string]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

// Face returns the cached face for path at size points, loading it on first use.
func (c *FontCache) Face(path string, size float64) (font.Face, error) {
	key := faceKey{path: path, size: size}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}

	f, err := c.font(path)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("gfx: face %s@%g: %w", path, size, err)
	}
	c.faces[key] = face
	return face, nil
}

// Len returns the number of cached faces.
func (c *FontCache) Len() int {
	return len(c.faces)
}

func (c *FontCache) font(path string) (*opentype.Font, error) {
	if f, ok := c.fonts[path]; ok {
		return f, nil
	}

	data, ok := builtinFonts[path]
	if !ok {
		if strings.HasPrefix(path, "builtin:") {
			return nil, fmt.Errorf("gfx: unknown builtin font %q", path)
		}
		if c.loader == nil {
			return nil, fmt.Errorf("gfx: no loader for font %q", path)
		}
		var err error
		data, err = c.loader.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("gfx: read font %s: %w", path, err)
		}
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("gfx: parse font %s: %w", path, err)
	}
	c.fonts[path] = f
	return f, nil
}

// TextSprite renders text in a single line on a transparent background and
// returns it as a sprite sized to the text.
func (c *FontCache) TextSprite(text, fontPath string, size float64, col core.Color) (Sprite, error) {
	face, err := c.Face(fontPath, size)
	if err != nil {
		return Sprite{}, err
	}

	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col.RGBA()),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	d.DrawString(text)

	return NewSprite(img), nil
}
