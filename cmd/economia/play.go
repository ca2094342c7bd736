package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chaos-economy/internal/platform/tui"
	"github.com/vovakirdan/chaos-economy/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one game",
	Long: `Start a game straight away.

You begin with $800 in savings. Each period, read the indicators, type how
much to spend and press Enter.

Controls:
  0-9        - Type the amount to spend
  Enter      - Spend it
  R          - Restart (when the input is empty or the game is over)
  Esc        - Leave
  Ctrl+C     - Quit

Examples:
  economia play
  economia play --seed 42
  economia play --table ./my-periods.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	a, err := setup(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := a.runtimeConfig()
	ctrl := session.New(a.table, cfg, a.dispatcher, a.logger)

	_, runErr := tui.RunGame(ctrl, cfg)

	// Close before potential exit so pending results are written
	a.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
