package main

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/storage"
)

var (
	flagStatsLimit int
	flagStatsClear bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded play sessions",
	Long: `Shows per-view totals and the most recent sessions from the session log.
Local play and SSH sessions are both recorded.

Examples:
  shooter stats
  shooter stats --limit 50
  shooter stats --db ./sessions.db
  shooter stats --clear`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of recent sessions to show")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete the session log")
}

var (
	statsTitle = lipgloss.NewStyle().Bold(true)
	statsDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statsError = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func runStats(_ *cobra.Command, _ []string) error {
	if flagDBPath == "" {
		return errors.New("no session log: --db is empty")
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagStatsClear {
		if err := store.ClearSessions(); err != nil {
			return err
		}
		fmt.Println("Session log cleared.")
		return nil
	}

	perView, err := store.AllViewStats()
	if err != nil {
		return err
	}
	if len(perView) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	views := make([]string, 0, len(perView))
	for id := range perView {
		views = append(views, id)
	}
	sort.Strings(views)

	fmt.Println(statsTitle.Render("Views"))
	fmt.Printf("  %-10s %8s %10s %8s  %s\n", "View", "Sessions", "Frames", "Avg FPS", "Last played")
	for _, id := range views {
		vs := perView[id]
		fmt.Printf("  %-10s %8d %10d %8.1f  %s\n",
			vs.View, vs.Sessions, vs.TotalFrames, vs.AvgFPS, formatTime(vs.LastPlayed))
	}

	recent, err := store.RecentSessions(flagStatsLimit)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(statsTitle.Render("Recent sessions"))
	for _, s := range recent {
		line := fmt.Sprintf("  %s  %-10s %-8s %-6s %6d frames  %s",
			formatTime(s.CreatedAt), s.User, s.View, s.Backend, s.Frames,
			(time.Duration(s.DurationMs) * time.Millisecond).Round(time.Second))
		if s.EndReason == storage.EndError {
			fmt.Println(statsError.Render(line + "  (error)"))
			continue
		}
		fmt.Println(line)
	}
	fmt.Println(statsDim.Render(fmt.Sprintf("\n  log: %s", flagDBPath)))
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
