// Package blank provides an empty placeholder view.
package blank

import (
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/engine"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

// ID is the registry id of the placeholder view.
const ID = "blank"

func init() {
	registry.Register(ID, "Blank", func(*engine.Context) (engine.View, error) {
		return View{}, nil
	})
}

// View draws a black screen until Escape or a close request.
type View struct{}

// Step implements engine.View.
func (View) Step(ctx *engine.Context, _ float64) (engine.Action, error) {
	if ctx.Events.QuitRequested() || ctx.Events.Pressed(core.KeyEscape) {
		return engine.Quit(), nil
	}
	ctx.Surface.Clear(core.ColorBlack)
	return engine.Continue(), nil
}
