package core

import (
	"fmt"
	"strings"
)

// Key identifies a logical key, abstracted from backend key codes.
// Backends map terminal keys onto these through configurable bindings.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

var keyNames = map[Key]string{
	KeyUnknown: "unknown",
	KeyEscape:  "escape",
	KeySpace:   "space",
	KeyEnter:   "enter",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyLeft:    "left",
	KeyRight:   "right",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKey returns the key with the given name (as produced by String).
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name && k != KeyUnknown {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("core: unknown key %q", name)
}

// EventKind classifies a raw backend event.
type EventKind int

const (
	EventOther EventKind = iota
	EventKeyDown
	EventKeyUp
	EventQuit   // window close / session end request
	EventResize // output resized
)

// Event is one discrete input event reported by a backend.
type Event struct {
	Kind EventKind
	Key  Key // set for EventKeyDown and EventKeyUp
}

// KeyDownEvent builds a key-down event.
func KeyDownEvent(k Key) Event { return Event{Kind: EventKeyDown, Key: k} }

// KeyUpEvent builds a key-up event.
func KeyUpEvent(k Key) Event { return Event{Kind: EventKeyUp, Key: k} }

// QuitEvent builds a close-request event.
func QuitEvent() Event { return Event{Kind: EventQuit} }

// EventSource drains pending backend input. PollEvents must not block.
type EventSource interface {
	PollEvents() ([]Event, error)
}

// Edge is the per-frame transition of a tracked key.
type Edge int8

const (
	EdgeNone     Edge = iota // unchanged this frame
	EdgePressed              // went from released to held
	EdgeReleased             // went from held to released
)

// String returns a human-readable name for the edge.
func (e Edge) String() string {
	switch e {
	case EdgePressed:
		return "pressed"
	case EdgeReleased:
		return "released"
	default:
		return "none"
	}
}

// Signal names a tracked discrete event such as a close request.
type Signal string

// SignalQuit fires when the backend asks the application to close.
const SignalQuit Signal = "quit"

// Tracking configures which keys and discrete events an EventState samples.
type Tracking struct {
	Keys    []Key
	Signals map[Signal]func(Event) bool
}

// DefaultTracking tracks the navigation keys every view uses plus the close request.
func DefaultTracking() Tracking {
	return Tracking{
		Keys: []Key{KeyEscape, KeyUp, KeyDown, KeyLeft, KeyRight, KeySpace, KeyEnter},
		Signals: map[Signal]func(Event) bool{
			SignalQuit: func(ev Event) bool { return ev.Kind == EventQuit },
		},
	}
}

// EventState samples an EventSource once per frame. Raw held state persists
// across polls; the edge snapshot only describes transitions seen by the most
// recent Poll. Keys and signals outside the Tracking are ignored.
type EventState struct {
	source   EventSource
	signals  map[Signal]func(Event) bool
	raw      map[Key]bool
	edge     map[Key]Edge
	occurred map[Signal]bool
}

// NewEventState creates a sampler for the given source and tracking table.
// A nil source is allowed; events can then be fed with Inject.
func NewEventState(src EventSource, tracking Tracking) *EventState {
	s := &EventState{
		source:   src,
		signals:  make(map[Signal]func(Event) bool, len(tracking.Signals)),
		raw:      make(map[Key]bool, len(tracking.Keys)),
		edge:     make(map[Key]Edge, len(tracking.Keys)),
		occurred: make(map[Signal]bool, len(tracking.Signals)),
	}
	for _, k := range tracking.Keys {
		s.raw[k] = false
	}
	for name, match := range tracking.Signals {
		s.signals[name] = match
	}
	return s
}

// Poll discards the previous edge snapshot and drains the source exactly once.
func (s *EventState) Poll() error {
	var events []Event
	if s.source != nil {
		var err error
		events, err = s.source.PollEvents()
		if err != nil {
			return fmt.Errorf("core: poll events: %w", err)
		}
	}
	s.Inject(events...)
	return nil
}

// Inject starts a new frame and applies events as if they had been polled.
func (s *EventState) Inject(events ...Event) {
	clear(s.edge)
	clear(s.occurred)

	for _, ev := range events {
		s.apply(ev)
	}
}

func (s *EventState) apply(ev Event) {
	switch ev.Kind {
	case EventKeyDown:
		held, tracked := s.raw[ev.Key]
		if tracked {
			if !held {
				s.edge[ev.Key] = EdgePressed
			}
			s.raw[ev.Key] = true
		}
	case EventKeyUp:
		held, tracked := s.raw[ev.Key]
		if tracked {
			if held {
				s.edge[ev.Key] = EdgeReleased
			}
			s.raw[ev.Key] = false
		}
	}

	for name, match := range s.signals {
		if match(ev) {
			s.occurred[name] = true
		}
	}
}

// Held reports the raw state of a key: true while it is down.
func (s *EventState) Held(k Key) bool {
	return s.raw[k]
}

// Edge returns the transition k went through during the last Poll.
func (s *EventState) Edge(k Key) Edge {
	return s.edge[k]
}

// Pressed reports whether k was just pressed this frame.
func (s *EventState) Pressed(k Key) bool {
	return s.edge[k] == EdgePressed
}

// Released reports whether k was just released this frame.
func (s *EventState) Released(k Key) bool {
	return s.edge[k] == EdgeReleased
}

// Occurred reports whether the named signal fired this frame.
func (s *EventState) Occurred(sig Signal) bool {
	return s.occurred[sig]
}

// QuitRequested is shorthand for Occurred(SignalQuit).
func (s *EventState) QuitRequested() bool {
	return s.occurred[SignalQuit]
}
