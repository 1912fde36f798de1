package engine

import (
	"errors"
	"time"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// ErrBackend wraps every poll or present failure. It is always fatal.
var ErrBackend = errors.New("backend failure")

// Clock is the runtime's time source.
type Clock interface {
	// NowMs returns monotonically non-decreasing milliseconds.
	NowMs() int64
	// Delay blocks for at least ms milliseconds.
	Delay(ms int64)
}

// Backend is everything the runtime needs from a display.
type Backend interface {
	Clock
	core.EventSource
	// Present shows a finished frame.
	Present(frame *core.Canvas) error
}

// SystemClock measures time from its creation with the monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() SystemClock {
	return SystemClock{start: time.Now()}
}

// NowMs implements Clock.
func (c SystemClock) NowMs() int64 {
	return time.Since(c.start).Milliseconds()
}

// Delay implements Clock.
func (c SystemClock) Delay(ms int64) {
	if ms > 0 {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
}
