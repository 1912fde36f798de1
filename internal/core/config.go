package core

// RuntimeConfig contains the settings the runtime loop and canvas are built from.
type RuntimeConfig struct {
	Title     string // Window/terminal title
	Width     int    // Logical canvas width in pixels
	Height    int    // Logical canvas height in pixels
	FrameRate int    // Target frames per second (upper bound)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
// The canvas is 5:3 so it maps onto an 80x24 terminal at two pixels per cell.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Title:     "tui-shooter",
		Width:     320,
		Height:    192,
		FrameRate: 60,
	}
}

// FrameIntervalMs returns the minimum time between two frames in whole
// milliseconds, truncated (60 fps gives 16 ms).
func (c RuntimeConfig) FrameIntervalMs() int64 {
	if c.FrameRate <= 0 {
		return 0
	}
	return int64(1000 / c.FrameRate)
}
