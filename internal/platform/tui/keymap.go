package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/platform/input"
)

// KeyMap describes the controls in Bubble Tea terms, for matching the keys
// the program handles itself and for help output.
// It implements help.KeyMap.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Select     key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// NewKeyMap builds the key map from the configured bindings.
func NewKeyMap(b input.Bindings) KeyMap {
	bind := func(desc string, keys ...core.Key) key.Binding {
		var names []string
		for _, k := range keys {
			names = append(names, b.Names(k)...)
		}
		return key.NewBinding(
			key.WithKeys(teaNames(names)...),
			key.WithHelp(strings.Join(names, "/"), desc),
		)
	}

	return KeyMap{
		Up:     bind("move up", core.KeyUp),
		Down:   bind("move down", core.KeyDown),
		Left:   bind("move left", core.KeyLeft),
		Right:  bind("move right", core.KeyRight),
		Select: bind("select", core.KeySpace, core.KeyEnter),
		Back:   bind("back / quit", core.KeyEscape),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// teaNames converts normalized key names to KeyMsg.String spellings.
func teaNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, n)
		if n == "space" {
			out = append(out, " ")
		}
	}
	return out
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Select, k.Back}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Back, k.Screenshot, k.Quit},
	}
}
