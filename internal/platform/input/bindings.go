// Package input adapts terminal keyboard input to the runtime's key model.
// Terminals report key presses (and auto-repeats) but never releases, so the
// Tracker synthesizes a release once a key stops repeating. Bindings
// translate terminal key names into logical keys for every backend.
package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Bindings resolves terminal key names ("up", "w", "space", "esc", ...)
// to logical keys.
type Bindings struct {
	byName map[string]core.Key
	names  map[core.Key][]string
}

// NewBindings builds the lookup table from logical key name to terminal names.
// A terminal name bound to two logical keys is an error.
func NewBindings(table map[string][]string) (Bindings, error) {
	b := Bindings{
		byName: make(map[string]core.Key),
		names:  make(map[core.Key][]string),
	}

	logical := make([]string, 0, len(table))
	for name := range table {
		logical = append(logical, name)
	}
	sort.Strings(logical)

	for _, name := range logical {
		k, err := core.ParseKey(name)
		if err != nil {
			return Bindings{}, fmt.Errorf("input: %w", err)
		}
		for _, raw := range table[name] {
			term := Normalize(raw)
			if term == "" {
				return Bindings{}, fmt.Errorf("input: empty key name bound to %s", k)
			}
			if prev, dup := b.byName[term]; dup && prev != k {
				return Bindings{}, fmt.Errorf("input: %q bound to both %s and %s", term, prev, k)
			}
			b.byName[term] = k
			b.names[k] = append(b.names[k], term)
		}
	}
	return b, nil
}

// Lookup returns the logical key for a terminal key name.
func (b Bindings) Lookup(name string) (core.Key, bool) {
	k, ok := b.byName[Normalize(name)]
	return k, ok
}

// Names returns the terminal names bound to k, in configuration order.
func (b Bindings) Names(k core.Key) []string {
	return b.names[k]
}

// Normalize maps the spellings used by Bubble Tea and tcell onto one
// vocabulary: lower case, "space" for the space bar, "esc" for escape.
func Normalize(name string) string {
	if name == " " {
		return "space"
	}
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "escape":
		return "esc"
	case "return":
		return "enter"
	}
	return n
}
