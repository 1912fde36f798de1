package input

import (
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

func TestDefaultBindings(t *testing.T) {
	b, err := NewBindings(config.DefaultBindings())
	if err != nil {
		t.Fatalf("NewBindings() error = %v", err)
	}

	tests := []struct {
		name     string
		expected core.Key
	}{
		{"up", core.KeyUp},
		{"w", core.KeyUp},
		{"K", core.KeyUp},
		{"left", core.KeyLeft},
		{" ", core.KeySpace},
		{"space", core.KeySpace},
		{"enter", core.KeyEnter},
		{"esc", core.KeyEscape},
		{"Escape", core.KeyEscape},
		{"q", core.KeyEscape},
	}

	for _, tc := range tests {
		got, ok := b.Lookup(tc.name)
		if !ok || got != tc.expected {
			t.Errorf("Lookup(%q) = %v, %v; expected %v", tc.name, got, ok, tc.expected)
		}
	}

	if _, ok := b.Lookup("x"); ok {
		t.Error("Lookup of an unbound key should fail")
	}
	if names := b.Names(core.KeyUp); !reflect.DeepEqual(names, []string{"up", "w", "k"}) {
		t.Errorf("Names(up) = %v", names)
	}
}

func TestBindingsErrors(t *testing.T) {
	tests := []struct {
		name  string
		table map[string][]string
	}{
		{"unknown logical key", map[string][]string{"fire": {"x"}}},
		{"duplicate terminal key", map[string][]string{"up": {"w"}, "down": {"w"}}},
		{"empty name", map[string][]string{"up": {"  "}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewBindings(tc.table); err == nil {
				t.Error("NewBindings() should fail")
			}
		})
	}
}

func TestTrackerPressAndExpire(t *testing.T) {
	start := time.Unix(0, 0)
	tr := NewTracker(450*time.Millisecond, 100*time.Millisecond)

	if got := tr.Press(core.KeyUp, start); !reflect.DeepEqual(got, []core.Event{core.KeyDownEvent(core.KeyUp)}) {
		t.Errorf("first Press() = %v", got)
	}

	// Still inside the initial window (keyboard repeat delay).
	if got := tr.Expire(start.Add(400 * time.Millisecond)); got != nil {
		t.Errorf("Expire() inside initial window = %v", got)
	}
	if !tr.Held(core.KeyUp) {
		t.Fatal("key should still be held")
	}

	got := tr.Expire(start.Add(451 * time.Millisecond))
	if !reflect.DeepEqual(got, []core.Event{core.KeyUpEvent(core.KeyUp)}) {
		t.Errorf("Expire() after initial window = %v", got)
	}
	if tr.Held(core.KeyUp) {
		t.Error("key should be released")
	}
}

func TestTrackerRepeatWindow(t *testing.T) {
	start := time.Unix(0, 0)
	tr := NewTracker(450*time.Millisecond, 100*time.Millisecond)

	tr.Press(core.KeyRight, start)
	repeat := start.Add(500 * time.Millisecond)
	if got := tr.Expire(start.Add(440 * time.Millisecond)); got != nil {
		t.Fatalf("released too early: %v", got)
	}

	if got := tr.Press(core.KeyRight, repeat); got != nil {
		t.Errorf("repeat Press() = %v, expected no events", got)
	}

	// Repeats arrived, so the shorter window applies.
	if got := tr.Expire(repeat.Add(90 * time.Millisecond)); got != nil {
		t.Errorf("Expire() inside repeat window = %v", got)
	}
	if got := tr.Expire(repeat.Add(101 * time.Millisecond)); len(got) != 1 {
		t.Errorf("Expire() after repeat window = %v", got)
	}
}

func TestTrackerRepeatKeepsEventStateHeld(t *testing.T) {
	start := time.Unix(0, 0)
	tr := NewTracker(450*time.Millisecond, 100*time.Millisecond)
	s := core.NewEventState(nil, core.DefaultTracking())

	s.Inject(tr.Press(core.KeyDown, start)...)
	if !s.Pressed(core.KeyDown) {
		t.Fatal("first press should be a press edge")
	}

	for i := 1; i <= 5; i++ {
		s.Inject(tr.Press(core.KeyDown, start.Add(time.Duration(i)*30*time.Millisecond))...)
		if s.Pressed(core.KeyDown) || !s.Held(core.KeyDown) {
			t.Fatalf("repeat %d should keep the key held without a new press edge", i)
		}
	}

	s.Inject(tr.Expire(start.Add(time.Second))...)
	if !s.Released(core.KeyDown) || s.Held(core.KeyDown) {
		t.Error("expiry should release the key")
	}
}

func TestTrackerReleaseAll(t *testing.T) {
	now := time.Unix(0, 0)
	tr := NewTracker(time.Second, time.Second)
	tr.Press(core.KeyRight, now)
	tr.Press(core.KeyUp, now)

	got := tr.ReleaseAll()
	expected := []core.Event{core.KeyUpEvent(core.KeyUp), core.KeyUpEvent(core.KeyRight)}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ReleaseAll() = %v, expected %v", got, expected)
	}
	if tr.ReleaseAll() != nil {
		t.Error("second ReleaseAll() should be empty")
	}
}
