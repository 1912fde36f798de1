package tui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/engine"
)

// Model is the Bubble Tea model showing frames from a Backend.
// The runtime runs elsewhere; the model only forwards input and displays
// whatever frame arrived last.
type Model struct {
	backend  *Backend
	keys     KeyMap
	frame    string
	shotDir  string
	quitting bool
}

// NewModel creates a model for b. Screenshots go to shotDir; empty disables them.
func NewModel(b *Backend, shotDir string) Model {
	return Model{
		backend: b,
		keys:    NewKeyMap(b.Bindings()),
		shotDir: shotDir,
	}
}

type screenshotMsg struct {
	path string
	err  error
}

// Init sets the window title and starts waiting for frames.
func (m Model) Init() tea.Cmd {
	wait := waitForFrame(m.backend.Frames())
	if m.backend.Title() == "" {
		return wait
	}
	return tea.Batch(tea.SetWindowTitle(m.backend.Title()), wait)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.backend.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.BlurMsg:
		m.backend.Blur()
		return m, nil

	case FrameMsg:
		m.frame = string(msg)
		return m, waitForFrame(m.backend.Frames())

	case framesClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case screenshotMsg:
		if msg.err != nil {
			m.backend.logger.Warn("screenshot failed", "error", msg.err)
		} else {
			m.backend.logger.Info("screenshot saved", "path", msg.path)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// The view sees a close request and quits; the closed frame
		// stream then ends the program.
		m.backend.Shutdown()
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		return m, m.screenshot()
	}

	m.backend.Feed(msg.String())
	return m, nil
}

func (m Model) screenshot() tea.Cmd {
	if m.shotDir == "" {
		return nil
	}
	b, dir := m.backend, m.shotDir
	return func() tea.Msg {
		img := b.Snapshot()
		if img == nil {
			return nil
		}
		path, err := SaveScreenshot(img, dir, time.Now())
		return screenshotMsg{path: path, err: err}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.frame
}

// SaveScreenshot writes img as a timestamped PNG in dir and returns its path.
func SaveScreenshot(img image.Image, dir string, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: create screenshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("shooter_%s.png", at.Format("20060102_150405.000")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("tui: create screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("tui: encode screenshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("tui: write screenshot: %w", err)
	}
	return path, nil
}

// ScreenshotDir returns the default screenshot directory, or empty if the
// home directory is unavailable.
func ScreenshotDir() string {
	dir := config.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "screenshots")
}

type playResult struct {
	stats engine.Stats
	err   error
}

// RunLocal plays on the controlling terminal: the runtime steps views from
// factory while a Bubble Tea program displays the frames.
func RunLocal(cfg config.Config, assets engine.AssetLoader, logger *log.Logger, factory engine.Factory) (engine.Stats, error) {
	b, err := NewBackend(cfg, nil, logger)
	if err != nil {
		return engine.Stats{}, err
	}

	done := make(chan playResult, 1)
	go func() {
		stats, err := play(b, cfg, assets, logger, factory)
		done <- playResult{stats, err}
	}()

	p := tea.NewProgram(
		NewModel(b, ScreenshotDir()),
		tea.WithAltScreen(),   // Use alternate screen buffer
		tea.WithReportFocus(), // Release held keys on blur
	)

	_, runErr := p.Run()
	b.Shutdown()
	res := <-done
	if runErr != nil {
		return res.stats, fmt.Errorf("tui: run program: %w", runErr)
	}
	return res.stats, res.err
}

// play runs the engine on b and closes the frame stream when it returns.
func play(b *Backend, cfg config.Config, assets engine.AssetLoader, logger *log.Logger, factory engine.Factory) (engine.Stats, error) {
	defer b.Close()
	return engine.Play(b, cfg, assets, logger, factory)
}
