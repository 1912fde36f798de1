// Package tui provides the Bubble Tea integration for the shooter: a backend
// bridging the engine runtime to a Bubble Tea program, local play, and the
// Wish SSH server.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg carries one rendered frame from the runtime.
type FrameMsg string

// framesClosedMsg reports that the runtime finished.
type framesClosedMsg struct{}

// waitForFrame returns a command that waits for the next rendered frame.
func waitForFrame(frames <-chan string) tea.Cmd {
	return func() tea.Msg {
		frame, ok := <-frames
		if !ok {
			return framesClosedMsg{}
		}
		return FrameMsg(frame)
	}
}
