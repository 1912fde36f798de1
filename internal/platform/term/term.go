// Package term is the local terminal backend built on tcell. Frames are
// drawn with half-block cells in 24-bit color; keys are resolved through the
// configured bindings and released by the hold tracker.
package term

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/engine"
	"github.com/vovakirdan/tui-shooter/internal/platform/cells"
	"github.com/vovakirdan/tui-shooter/internal/platform/input"
)

const eventBuffer = 64

// Backend drives a tcell screen. It implements engine.Backend.
type Backend struct {
	engine.SystemClock

	screen   tcell.Screen
	bindings input.Bindings
	tracker  *input.Tracker
	raster   *cells.Rasterizer
	logger   *log.Logger
	now      func() time.Time

	events chan tcell.Event
	done   chan struct{}
	once   sync.Once
}

// Open initializes the controlling terminal and wraps it in a Backend.
func Open(cfg config.Config, logger *log.Logger) (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("term: init screen: %w", err)
	}
	screen.SetTitle(cfg.Runtime.Title)
	screen.HideCursor()
	screen.EnableFocus()

	b, err := NewWithScreen(screen, cfg, logger)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return b, nil
}

// NewWithScreen wraps an initialized screen. The backend owns the screen
// from here on and finalizes it on Close.
func NewWithScreen(screen tcell.Screen, cfg config.Config, logger *log.Logger) (*Backend, error) {
	bindings, err := input.NewBindings(cfg.Input.Bindings)
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}

	b := &Backend{
		SystemClock: engine.NewSystemClock(),
		screen:      screen,
		bindings:    bindings,
		tracker:     input.NewTracker(cfg.Input.HoldInitial(), cfg.Input.HoldRepeat()),
		raster:      cells.NewRasterizer(),
		logger:      logger.WithPrefix("term"),
		now:         time.Now,
		events:      make(chan tcell.Event, eventBuffer),
		done:        make(chan struct{}),
	}
	go b.pump()
	return b, nil
}

// pump moves tcell events onto the buffered channel so PollEvents never
// blocks. PollEvent returns nil once the screen is finalized.
func (b *Backend) pump() {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case b.events <- ev:
		case <-b.done:
			return
		}
	}
}

// PollEvents implements core.EventSource.
func (b *Backend) PollEvents() ([]core.Event, error) {
	var out []core.Event
drain:
	for {
		select {
		case ev := <-b.events:
			out = append(out, b.translate(ev)...)
		case <-b.done:
			return append(out, core.QuitEvent()), nil
		default:
			break drain
		}
	}
	return append(out, b.tracker.Expire(b.now())...), nil
}

func (b *Backend) translate(ev tcell.Event) []core.Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return []core.Event{core.QuitEvent()}
		}
		name := keyName(ev)
		k, ok := b.bindings.Lookup(name)
		if !ok {
			b.logger.Debug("unbound key", "key", name)
			return nil
		}
		return b.tracker.Press(k, b.now())
	case *tcell.EventResize:
		b.screen.Sync()
		return []core.Event{{Kind: core.EventResize}}
	case *tcell.EventFocus:
		if !ev.Focused {
			return b.tracker.ReleaseAll()
		}
	}
	return nil
}

func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		return string(ev.Rune())
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	}
	return ev.Name()
}

// Present implements engine.Backend.
func (b *Backend) Present(frame *core.Canvas) error {
	cols, rows := b.screen.Size()
	grid := b.raster.Rasterize(frame.Image(), cols, rows)

	for y := 0; y < grid.Rows; y++ {
		for x, c := range grid.Row(y) {
			b.screen.SetContent(x, y, cells.HalfBlock, nil, style(c))
		}
	}
	b.screen.Show()
	return nil
}

func style(c cells.Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(c.Top.R), int32(c.Top.G), int32(c.Top.B))).
		Background(tcell.NewRGBColor(int32(c.Bottom.R), int32(c.Bottom.G), int32(c.Bottom.B)))
}

// Shutdown makes the next PollEvents report a close request.
func (b *Backend) Shutdown() {
	b.once.Do(func() { close(b.done) })
}

// Close restores the terminal.
func (b *Backend) Close() error {
	b.Shutdown()
	b.screen.Fini()
	return nil
}
