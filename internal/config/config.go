// Package config provides YAML-based configuration loading for the shooter:
// runtime pacing, terminal input timing, and the tunables of the demo views.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the complete application configuration.
type Config struct {
	Runtime     RuntimeSection    `yaml:"runtime"`
	Input       InputConfig       `yaml:"input"`
	Menu        MenuConfig        `yaml:"menu"`
	Ship        ShipConfig        `yaml:"ship"`
	Backgrounds []BackgroundLayer `yaml:"backgrounds"`
}

// RuntimeSection configures the frame loop and logical canvas.
type RuntimeSection struct {
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// InputConfig tunes how terminal backends synthesize key releases.
type InputConfig struct {
	HoldInitialMs int `yaml:"hold_initial_ms"` // before the first auto-repeat
	HoldRepeatMs  int `yaml:"hold_repeat_ms"`  // between auto-repeats

	// Bindings maps logical key names (see core.ParseKey) to terminal key
	// names such as "up", "w", "space" or "esc".
	Bindings map[string][]string `yaml:"bindings"`
}

// MenuConfig defines how main menu labels are drawn.
type MenuConfig struct {
	Font       string  `yaml:"font"`
	IdleSize   float64 `yaml:"idle_size"`
	HoverSize  float64 `yaml:"hover_size"`
	IdleColor  string  `yaml:"idle_color"`
	HoverColor string  `yaml:"hover_color"`
	Spacing    float64 `yaml:"spacing"` // line pitch as a multiple of label height
}

// ShipConfig defines the player ship.
type ShipConfig struct {
	Sheet       string  `yaml:"sheet"`
	Columns     int     `yaml:"columns"`
	Rows        int     `yaml:"rows"`
	Speed       float64 `yaml:"speed"`        // pixels per second
	BoundsRatio float64 `yaml:"bounds_ratio"` // share of the output width
	StartX      float64 `yaml:"start_x"`
	StartY      float64 `yaml:"start_y"`
	ShowHitbox  bool    `yaml:"show_hitbox"` // fill the ship rect behind the sprite
}

// BackgroundLayer is one parallax layer of the ship view.
type BackgroundLayer struct {
	Path       string  `yaml:"path"`
	Velocity   float64 `yaml:"velocity"`
	Foreground bool    `yaml:"foreground"` // drawn in front of the ship
}

// RuntimeConfig converts the runtime section into the core type.
func (c Config) RuntimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		Title:     c.Runtime.Title,
		Width:     c.Runtime.Width,
		Height:    c.Runtime.Height,
		FrameRate: c.Runtime.FPS,
	}
}

// HoldInitial returns the initial key hold window.
func (c InputConfig) HoldInitial() time.Duration {
	return time.Duration(c.HoldInitialMs) * time.Millisecond
}

// HoldRepeat returns the key hold window once auto-repeat started.
func (c InputConfig) HoldRepeat() time.Duration {
	return time.Duration(c.HoldRepeatMs) * time.Millisecond
}

// Colors parses the idle and hover label colors.
func (c MenuConfig) Colors() (idle, hover core.Color, err error) {
	idle, err = core.ParseColor(c.IdleColor)
	if err != nil {
		return idle, hover, fmt.Errorf("menu.idle_color: %w", err)
	}
	hover, err = core.ParseColor(c.HoverColor)
	if err != nil {
		return idle, hover, fmt.Errorf("menu.hover_color: %w", err)
	}
	return idle, hover, nil
}

// Validate reports the first setting that would break the runtime or a view.
func (c Config) Validate() error {
	switch {
	case c.Runtime.FPS <= 0:
		return fmt.Errorf("%w: runtime.fps must be positive, got %d", ErrInvalid, c.Runtime.FPS)
	case c.Runtime.FPS > 1000:
		return fmt.Errorf("%w: runtime.fps must be at most 1000, got %d", ErrInvalid, c.Runtime.FPS)
	case c.Runtime.Width <= 0 || c.Runtime.Height <= 0:
		return fmt.Errorf("%w: runtime size must be positive, got %dx%d", ErrInvalid, c.Runtime.Width, c.Runtime.Height)
	case c.Input.HoldInitialMs <= 0 || c.Input.HoldRepeatMs <= 0:
		return fmt.Errorf("%w: input hold windows must be positive", ErrInvalid)
	case c.Menu.IdleSize <= 0 || c.Menu.HoverSize <= 0:
		return fmt.Errorf("%w: menu font sizes must be positive", ErrInvalid)
	case c.Menu.Spacing <= 0:
		return fmt.Errorf("%w: menu.spacing must be positive", ErrInvalid)
	case c.Ship.Columns <= 0 || c.Ship.Rows <= 0:
		return fmt.Errorf("%w: ship sheet grid must be positive, got %dx%d", ErrInvalid, c.Ship.Columns, c.Ship.Rows)
	case c.Ship.Speed <= 0:
		return fmt.Errorf("%w: ship.speed must be positive", ErrInvalid)
	case c.Ship.BoundsRatio <= 0 || c.Ship.BoundsRatio > 1:
		return fmt.Errorf("%w: ship.bounds_ratio must be in (0, 1], got %g", ErrInvalid, c.Ship.BoundsRatio)
	}

	if _, _, err := c.Menu.Colors(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for name, keys := range c.Input.Bindings {
		if _, err := core.ParseKey(name); err != nil {
			return fmt.Errorf("%w: input.bindings: %w", ErrInvalid, err)
		}
		if len(keys) == 0 {
			return fmt.Errorf("%w: input.bindings.%s is empty", ErrInvalid, name)
		}
	}
	for i, bg := range c.Backgrounds {
		if bg.Path == "" {
			return fmt.Errorf("%w: backgrounds[%d].path is empty", ErrInvalid, i)
		}
	}
	return nil
}
