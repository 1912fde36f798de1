package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/platform/input"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List views and controls",
	Long:  `Shows the views registered in the runtime and the configured key bindings.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	views := registry.List()

	if len(views) == 0 {
		fmt.Println("No views available.")
		return nil
	}

	fmt.Println("Available views:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, v := range views {
		if len(v.ID) > maxIDLen {
			maxIDLen = len(v.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print views
	for _, v := range views {
		fmt.Printf("  %-*s  %s\n", maxIDLen, v.ID, v.Title)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	bindings, err := input.NewBindings(cfg.Input.Bindings)
	if err != nil {
		return err
	}

	h := help.New()
	h.ShowAll = true

	fmt.Println()
	fmt.Println("Controls:")
	fmt.Println()
	fmt.Println(h.View(tui.NewKeyMap(bindings)))
	fmt.Println()
	fmt.Println("Run 'shooter play <id>' to start at a view.")
	return nil
}
