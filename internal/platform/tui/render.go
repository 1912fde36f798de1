package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/platform/cells"
)

type cellStyleKey struct {
	top, bottom core.Color
}

// Render converts a cell grid to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func Render(g *cells.Grid, r *lipgloss.Renderer) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(g.Cols*g.Rows*8 + g.Rows)

	styles := make(map[cellStyleKey]lipgloss.Style)
	glyph := string(cells.HalfBlock)

	for y := range g.Rows {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, run := range g.Runs(y) {
			key := cellStyleKey{run.Top, run.Bottom}
			style, ok := styles[key]
			if !ok {
				style = r.NewStyle().
					Foreground(lipgloss.Color(run.Top.Hex())).
					Background(lipgloss.Color(run.Bottom.Hex()))
				styles[key] = style
			}
			sb.WriteString(style.Render(strings.Repeat(glyph, run.Len)))
		}
	}
	return sb.String()
}
