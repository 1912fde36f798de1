package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-shooter/internal/gfx"
)

//go:embed defaults/shooter.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when no YAML can be read.
func Default() Config {
	return Config{
		Runtime: RuntimeSection{
			Title:  "ArcadeRS Shooter",
			FPS:    60,
			Width:  320,
			Height: 192,
		},
		Input: InputConfig{
			HoldInitialMs: 450,
			HoldRepeatMs:  100,
			Bindings:      DefaultBindings(),
		},
		Menu: MenuConfig{
			Font:       gfx.FontBold,
			IdleSize:   20,
			HoverSize:  24,
			IdleColor:  "#dcdcdc",
			HoverColor: "#ffffff",
			Spacing:    1.5,
		},
		Ship: ShipConfig{
			Sheet:       "spaceship.png",
			Columns:     3,
			Rows:        3,
			Speed:       180,
			BoundsRatio: 0.7,
			StartX:      64,
			StartY:      64,
		},
		Backgrounds: []BackgroundLayer{
			{Path: "starBG.png", Velocity: 20},
			{Path: "starMG.png", Velocity: 40},
			{Path: "starFG.png", Velocity: 80, Foreground: true},
		},
	}
}

// DefaultBindings returns the stock key bindings: arrows plus WASD and vi keys.
func DefaultBindings() map[string][]string {
	return map[string][]string{
		"up":     {"up", "w", "k"},
		"down":   {"down", "s", "j"},
		"left":   {"left", "a", "h"},
		"right":  {"right", "d", "l"},
		"space":  {"space"},
		"enter":  {"enter"},
		"escape": {"esc", "q"},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
