// Package menu implements the main menu: a vertical list of text labels
// navigated with the arrow keys.
package menu

import (
	"fmt"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/engine"
	"github.com/vovakirdan/tui-shooter/internal/gfx"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/views/ship"
)

// ID is the registry id of the main menu.
const ID = "menu"

func init() {
	registry.Register(ID, "Main Menu", func(ctx *engine.Context) (engine.View, error) {
		return New(ctx)
	})
}

// entry is one selectable label.
type entry struct {
	label    string
	idle     gfx.Sprite
	hover    gfx.Sprite
	activate func(ctx *engine.Context) (engine.Action, error)
}

// View is the main menu.
type View struct {
	entries  []entry
	selected int
	spacing  float64
}

// New renders the label sprites with the fonts configured in ctx.
func New(ctx *engine.Context) (*View, error) {
	cfg := ctx.Config.Menu
	idleColor, hoverColor, err := cfg.Colors()
	if err != nil {
		return nil, fmt.Errorf("menu: %w", err)
	}

	v := &View{spacing: cfg.Spacing}
	items := []struct {
		label    string
		activate func(ctx *engine.Context) (engine.Action, error)
	}{
		{"New Game", newGame},
		{"Quit", func(*engine.Context) (engine.Action, error) { return engine.Quit(), nil }},
	}

	for _, it := range items {
		idle, err := ctx.Fonts.TextSprite(it.label, cfg.Font, cfg.IdleSize, idleColor)
		if err != nil {
			return nil, fmt.Errorf("menu: label %q: %w", it.label, err)
		}
		hover, err := ctx.Fonts.TextSprite(it.label, cfg.Font, cfg.HoverSize, hoverColor)
		if err != nil {
			return nil, fmt.Errorf("menu: label %q: %w", it.label, err)
		}
		v.entries = append(v.entries, entry{label: it.label, idle: idle, hover: hover, activate: it.activate})
	}
	return v, nil
}

func newGame(ctx *engine.Context) (engine.Action, error) {
	next, err := registry.Create(ship.ID, ctx)
	if err != nil {
		return engine.Action{}, err
	}
	return engine.Replace(next), nil
}

// Step implements engine.View.
func (v *View) Step(ctx *engine.Context, _ float64) (engine.Action, error) {
	ev := ctx.Events
	if ev.QuitRequested() || ev.Pressed(core.KeyEscape) {
		return engine.Quit(), nil
	}

	if ev.Pressed(core.KeySpace) || ev.Pressed(core.KeyEnter) {
		return v.entries[v.selected].activate(ctx)
	}

	n := len(v.entries)
	if ev.Pressed(core.KeyDown) {
		v.selected = (v.selected + 1) % n
	} else if ev.Pressed(core.KeyUp) {
		v.selected = (v.selected - 1 + n) % n
	}

	ctx.Surface.Clear(core.ColorBlack)
	winW, winH := ctx.OutputSize()
	for i, e := range v.entries {
		sprite := e.idle
		if i == v.selected {
			sprite = e.hover
		}
		w, h := sprite.Size()
		// Every label goes under the previous one.
		sprite.Render(ctx.Surface, core.NewRect(
			(winW-w)/2,
			(winH-h)/2+h*v.spacing*float64(i),
			w, h,
		))
	}

	return engine.Continue(), nil
}

// Selected returns the label under the cursor.
func (v *View) Selected() string {
	return v.entries[v.selected].label
}
