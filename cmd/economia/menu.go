package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chaos-economy/internal/platform/tui"
	"github.com/vovakirdan/chaos-economy/internal/session"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a game ends, Esc returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  economia menu
  economia menu --db ./results.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	a, err := setup(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	cfg := a.runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		var goBack bool
		switch menuResult.Choice {
		case tui.ChoiceNewGame:
			ctrl := session.New(a.table, cfg, a.dispatcher, a.logger)
			goBack, err = tui.RunGame(ctrl, cfg)
		case tui.ChoiceResults:
			goBack, err = tui.RunResults(a.results(), cfg.ScreenW, cfg.ScreenH)
		case tui.ChoicePeriodTable:
			goBack, err = tui.RunPeriodTable(a.table, cfg.ScreenW, cfg.ScreenH)
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if !goBack {
			break // User quit
		}
	}
}
