package engine

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/gfx"
)

// AssetLoader provides the images and font files views load at construction.
type AssetLoader interface {
	gfx.ImageLoader
	gfx.FontLoader
}

// Context is the state shared by the runtime and the active view.
// It belongs to exactly one runtime; nothing in it is safe for concurrent use.
type Context struct {
	Surface *core.Canvas
	Events  *core.EventState
	Fonts   *gfx.FontCache
	Images  gfx.ImageLoader
	Config  config.Config
	Logger  *log.Logger
}

// NewContext builds a context with a canvas sized from cfg.Runtime and a
// font cache reading through assets. src feeds the event sampler.
func NewContext(cfg config.Config, src core.EventSource, assets AssetLoader, logger *log.Logger) *Context {
	return &Context{
		Surface: core.NewCanvas(cfg.Runtime.Width, cfg.Runtime.Height),
		Events:  core.NewEventState(src, core.DefaultTracking()),
		Fonts:   gfx.NewFontCache(assets),
		Images:  assets,
		Config:  cfg,
		Logger:  logger,
	}
}

// OutputSize returns the drawable area in pixels.
func (c *Context) OutputSize() (w, h float64) {
	return c.Surface.Size()
}

// Stats summarizes a finished run.
type Stats struct {
	Frames  int64
	LastFPS int
}

// Play builds a context on backend, creates the first view with factory and
// runs it until a view quits.
func Play(backend Backend, cfg config.Config, assets AssetLoader, logger *log.Logger, factory Factory) (Stats, error) {
	ctx := NewContext(cfg, backend, assets, logger)
	view, err := factory(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("engine: create initial view: %w", err)
	}

	rt := NewRuntime(backend, ctx)
	err = rt.Run(view)
	return Stats{Frames: rt.Frames(), LastFPS: rt.LastFPS()}, err
}
