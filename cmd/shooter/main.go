// shooter is a terminal port of the ArcadeRS shooter: a fixed-rate view
// runtime drawing sprites, TrueType text and parallax starfields into a
// pixel canvas that is shown with half-block cells.
//
// Usage:
//
//	shooter list              - List views and controls
//	shooter play [view]       - Play locally (default view: menu)
//	shooter serve             - Start SSH server for remote play
//	shooter config            - Print the default configuration
//	shooter stats             - Show recorded play sessions
//
// Global flags:
//
//	--fps <rate>         - Override the frame rate cap
//	--config <path>      - Path to a config YAML
//	--assets <dir>       - Directory overriding builtin assets
//	--log-file <path>    - Log file (default: ~/.shooter/shooter.log for play)
//	--log-level <level>  - debug, info, warn or error
//	--db <path>          - Session log database (default: ~/.shooter/sessions.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/storage"

	// Import views to register them
	_ "github.com/vovakirdan/tui-shooter/internal/views/blank"
	_ "github.com/vovakirdan/tui-shooter/internal/views/menu"
	_ "github.com/vovakirdan/tui-shooter/internal/views/ship"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagAssets   string
	flagLogFile  string
	flagLogLevel string
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shooter",
	Short: "ArcadeRS Shooter - fly a ship through a starfield in your terminal",
	Long: `ArcadeRS Shooter renders a small pixel canvas into your terminal using
half-block characters and 24-bit color.

Available commands:
  list     - Show registered views and controls
  play     - Play locally
  serve    - Start SSH server for remote play
  config   - Print the default configuration
  stats    - Show recorded play sessions

Examples:
  shooter play
  shooter play ship --fps 30
  shooter play --backend tea
  shooter serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate cap (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Directory whose files override builtin assets")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file path")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath(), "Path to session log database (empty = do not record)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(statsCmd)
}
