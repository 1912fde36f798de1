package engine

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Runtime drives one view at a time at a capped frame rate.
type Runtime struct {
	backend  Backend
	ctx      *Context
	logger   *log.Logger
	interval int64

	frames  int
	lastFPS int
	total   int64
}

// NewRuntime creates a runtime presenting ctx.Surface on backend.
// The frame interval comes from ctx.Config.Runtime.FPS.
func NewRuntime(backend Backend, ctx *Context) *Runtime {
	logger := ctx.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Runtime{
		backend:  backend,
		ctx:      ctx,
		logger:   logger,
		interval: ctx.Config.RuntimeConfig().FrameIntervalMs(),
	}
}

// FrameInterval returns the minimum milliseconds between frames.
func (r *Runtime) FrameInterval() int64 {
	return r.interval
}

// Frames returns the number of frames stepped since Run started.
func (r *Runtime) Frames() int64 {
	return r.total
}

// LastFPS returns the frame count of the most recent one-second report.
func (r *Runtime) LastFPS() int {
	return r.lastFPS
}

// Run steps initial and its successors until a view quits or something
// fails. Busy frames are skipped entirely: when less than the frame interval
// has passed, the loop sleeps for the remainder and does no work.
func (r *Runtime) Run(initial View) error {
	if initial == nil {
		return errors.New("engine: nil initial view")
	}

	active := initial
	last := r.backend.NowMs()
	lastSecond := last

	for {
		now := r.backend.NowMs()
		if wait := r.interval - (now - last); wait > 0 {
			r.backend.Delay(wait)
			continue
		}

		elapsed := float64(now-last) / 1000
		last = now

		r.frames++
		r.total++
		if now-lastSecond > 1000 {
			r.lastFPS = r.frames
			r.logger.Info("fps", "frames", r.frames)
			r.frames = 0
			lastSecond = now
		}

		if err := r.ctx.Events.Poll(); err != nil {
			return fmt.Errorf("%w: %w", ErrBackend, err)
		}

		action, err := active.Step(r.ctx, elapsed)
		if err != nil {
			return err
		}

		switch action.Kind() {
		case ActionContinue:
			if err := r.backend.Present(r.ctx.Surface); err != nil {
				return fmt.Errorf("%w: present: %w", ErrBackend, err)
			}
		case ActionReplace:
			next := action.Next()
			if next == nil {
				return errors.New("engine: replace with nil view")
			}
			r.logger.Debug("view switch", "from", fmt.Sprintf("%T", active), "to", fmt.Sprintf("%T", next))
			active = next
		case ActionQuit:
			r.logger.Debug("view quit", "view", fmt.Sprintf("%T", active), "frames", r.total)
			return nil
		default:
			return fmt.Errorf("engine: unknown action %v", action.Kind())
		}
	}
}
