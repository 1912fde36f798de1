package ship

import (
	"fmt"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/engine"
	"github.com/vovakirdan/tui-shooter/internal/gfx"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

// ID is the registry id of the gameplay view.
const ID = "ship"

func init() {
	registry.Register(ID, "Ship", func(ctx *engine.Context) (engine.View, error) {
		return New(ctx)
	})
}

// View is the gameplay screen.
type View struct {
	player *Ship
	behind []*gfx.ParallaxSprite
	front  []*gfx.ParallaxSprite
	hitbox bool
}

// New loads the ship sheet and background layers configured in ctx.
func New(ctx *engine.Context) (*View, error) {
	cfg := ctx.Config.Ship

	w, h := ctx.OutputSize()
	bounds := core.NewRect(0, 0, w*cfg.BoundsRatio, h)

	sheet, err := gfx.Load(ctx.Images, cfg.Sheet)
	if err != nil {
		return nil, err
	}
	player, err := NewShip(sheet, cfg.Columns, cfg.Rows, cfg.StartX, cfg.StartY, cfg.Speed, bounds)
	if err != nil {
		return nil, err
	}

	v := &View{player: player, hitbox: cfg.ShowHitbox}
	for _, layer := range ctx.Config.Backgrounds {
		p, err := gfx.LoadParallax(ctx.Images, layer.Path, layer.Velocity)
		if err != nil {
			return nil, fmt.Errorf("ship: background: %w", err)
		}
		if layer.Foreground {
			v.front = append(v.front, p)
		} else {
			v.behind = append(v.behind, p)
		}
	}
	return v, nil
}

// Step implements engine.View.
func (v *View) Step(ctx *engine.Context, elapsed float64) (engine.Action, error) {
	ev := ctx.Events
	if ev.QuitRequested() || ev.Pressed(core.KeyEscape) {
		return engine.Quit(), nil
	}

	err := v.player.Update(Controls{
		Up:    ev.Held(core.KeyUp),
		Down:  ev.Held(core.KeyDown),
		Left:  ev.Held(core.KeyLeft),
		Right: ev.Held(core.KeyRight),
	}, elapsed)
	if err != nil {
		return engine.Action{}, err
	}

	surface := ctx.Surface
	surface.Clear(core.ColorBlack)

	for _, layer := range v.behind {
		layer.Render(surface, nil, elapsed)
	}
	if v.hitbox {
		surface.FillRect(v.player.Rect(), core.ColorYellow)
	}
	v.player.Render(surface)
	for _, layer := range v.front {
		layer.Render(surface, nil, elapsed)
	}

	return engine.Continue(), nil
}

// Player exposes the ship for inspection.
func (v *View) Player() *Ship { return v.player }
