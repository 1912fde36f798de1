package tui

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/engine"
	"github.com/vovakirdan/tui-shooter/internal/platform/cells"
	"github.com/vovakirdan/tui-shooter/internal/platform/input"
)

// Backend bridges the engine runtime and a Bubble Tea program. The runtime
// goroutine polls and presents; the program goroutine feeds keys and sizes
// and receives rendered frames. It implements engine.Backend.
type Backend struct {
	engine.SystemClock

	title    string
	bindings input.Bindings
	renderer *lipgloss.Renderer
	raster   *cells.Rasterizer
	logger   *log.Logger
	now      func() time.Time

	frames chan string
	done   chan struct{}
	stop   sync.Once
	closed sync.Once

	mu       sync.Mutex
	tracker  *input.Tracker
	pending  []core.Event
	cols     int
	rows     int
	snapshot *image.RGBA
}

// NewBackend creates a bridge for one program. renderer styles the frames;
// nil uses the default renderer.
func NewBackend(cfg config.Config, renderer *lipgloss.Renderer, logger *log.Logger) (*Backend, error) {
	bindings, err := input.NewBindings(cfg.Input.Bindings)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Backend{
		SystemClock: engine.NewSystemClock(),
		title:       cfg.Runtime.Title,
		bindings:    bindings,
		renderer:    renderer,
		raster:      cells.NewRasterizer(),
		logger:      logger.WithPrefix("tui"),
		now:         time.Now,
		frames:      make(chan string, 1),
		done:        make(chan struct{}),
		tracker:     input.NewTracker(cfg.Input.HoldInitial(), cfg.Input.HoldRepeat()),
	}, nil
}

// Bindings returns the key bindings the backend resolves keys with.
func (b *Backend) Bindings() input.Bindings {
	return b.bindings
}

// Title returns the terminal window title.
func (b *Backend) Title() string {
	return b.title
}

// Feed records a key press reported by the terminal. Names follow Bubble
// Tea's KeyMsg.String spelling.
func (b *Backend) Feed(name string) {
	k, ok := b.bindings.Lookup(name)
	if !ok {
		b.logger.Debug("unbound key", "key", name)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, b.tracker.Press(k, b.now())...)
}

// Resize records the terminal size in cells.
func (b *Backend) Resize(cols, rows int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cols, b.rows = cols, rows
	b.pending = append(b.pending, core.Event{Kind: core.EventResize})
}

// Blur releases every held key, e.g. when the terminal loses focus.
func (b *Backend) Blur() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, b.tracker.ReleaseAll()...)
}

// PollEvents implements core.EventSource.
func (b *Backend) PollEvents() ([]core.Event, error) {
	b.mu.Lock()
	events := append(b.pending, b.tracker.Expire(b.now())...)
	b.pending = nil
	b.mu.Unlock()

	select {
	case <-b.done:
		events = append(events, core.QuitEvent())
	default:
	}
	return events, nil
}

// Present implements engine.Backend. Frames the program has not picked up
// yet are replaced, so a slow terminal drops frames instead of stalling
// the runtime.
func (b *Backend) Present(frame *core.Canvas) error {
	b.mu.Lock()
	cols, rows := b.cols, b.rows
	b.snapshot = cloneRGBA(frame.Image(), b.snapshot)
	b.mu.Unlock()

	out := Render(b.raster.Rasterize(frame.Image(), cols, rows), b.renderer)
	for {
		select {
		case b.frames <- out:
			return nil
		case <-b.done:
			return nil
		default:
		}
		select {
		case <-b.frames:
		default:
		}
	}
}

// Frames delivers rendered frames. It is closed by Close.
func (b *Backend) Frames() <-chan string {
	return b.frames
}

// Snapshot returns a copy of the last presented frame, or nil before the
// first one.
func (b *Backend) Snapshot() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.snapshot == nil {
		return nil
	}
	return cloneRGBA(b.snapshot, nil)
}

// Shutdown asks the running view to quit: the next poll reports a close
// request. Safe to call more than once and from any goroutine.
func (b *Backend) Shutdown() {
	b.stop.Do(func() { close(b.done) })
}

// Close ends the frame stream. The runtime goroutine calls it once the
// runtime has returned.
func (b *Backend) Close() {
	b.closed.Do(func() { close(b.frames) })
}

func cloneRGBA(src, dst *image.RGBA) *image.RGBA {
	if dst == nil || dst.Bounds() != src.Bounds() {
		dst = image.NewRGBA(src.Bounds())
	}
	copy(dst.Pix, src.Pix)
	return dst
}
