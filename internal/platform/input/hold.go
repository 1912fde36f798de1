package input

import (
	"sort"
	"time"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

type hold struct {
	last    time.Time
	repeats int
}

// Tracker synthesizes key releases for terminals that only report presses.
// A key counts as held until no press for it arrived within the hold window:
// initial until the first auto-repeat, repeat afterwards. Not safe for
// concurrent use.
type Tracker struct {
	initial time.Duration
	repeat  time.Duration
	held    map[core.Key]*hold
}

// NewTracker creates a tracker with the given hold windows.
func NewTracker(initial, repeat time.Duration) *Tracker {
	return &Tracker{
		initial: initial,
		repeat:  repeat,
		held:    make(map[core.Key]*hold),
	}
}

// Press records a terminal key press at now. A fresh press yields a
// key-down. A press of a key already held is an auto-repeat: it only
// extends the hold, so a held key stays one press edge. A re-tap inside the
// hold window looks the same to a terminal and is absorbed too.
func (t *Tracker) Press(k core.Key, now time.Time) []core.Event {
	h, ok := t.held[k]
	if !ok {
		t.held[k] = &hold{last: now}
		return []core.Event{core.KeyDownEvent(k)}
	}
	h.last = now
	h.repeats++
	return nil
}

// Expire releases every key whose hold window ended before now.
// Releases are ordered by key for determinism.
func (t *Tracker) Expire(now time.Time) []core.Event {
	var released []core.Key
	for k, h := range t.held {
		window := t.initial
		if h.repeats > 0 {
			window = t.repeat
		}
		if now.Sub(h.last) > window {
			released = append(released, k)
		}
	}
	return t.release(released)
}

// ReleaseAll releases every held key, e.g. when the terminal loses focus.
func (t *Tracker) ReleaseAll() []core.Event {
	keys := make([]core.Key, 0, len(t.held))
	for k := range t.held {
		keys = append(keys, k)
	}
	return t.release(keys)
}

// Held reports whether k is currently considered down.
func (t *Tracker) Held(k core.Key) bool {
	_, ok := t.held[k]
	return ok
}

func (t *Tracker) release(keys []core.Key) []core.Event {
	if len(keys) == 0 {
		return nil
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	events := make([]core.Event, 0, len(keys))
	for _, k := range keys {
		delete(t.held, k)
		events = append(events, core.KeyUpEvent(k))
	}
	return events
}
