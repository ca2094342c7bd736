// economia is a terminal survival game about spending and saving through an
// economic crisis.
//
// Usage:
//
//	economia play             - Play one game
//	economia menu             - Start the interactive menu
//	economia serve            - Start SSH server for remote play
//	economia http             - Start the JSON API
//	economia results          - Show the longest-surviving games
//	economia table            - Print the period table
//
// Global flags:
//
//	--config <path>     - Path to economia.yaml
//	--table <path>      - Path to a period table YAML
//	--seed <value>      - Set RNG seed for reproducible bank draws
//	--db <path>         - Set database path (default: ~/.economia/results.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagTable    string
	flagEnvFile  string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "economia",
	Short: "Economía caótica - survive twenty periods of crisis",
	Long: `Economía caótica is a turn-based survival game. Each period you are paid
a wage and decide how much to spend. Spend less than the hidden minimum and you
pay the gap from savings plus a penalty. Banks may close and take a cut.
Run out of money and the game is over.

Available commands:
  play     - Play one game directly
  menu     - Interactive menu
  serve    - Start SSH server for remote play
  http     - Start the JSON API
  results  - View the longest-surviving games
  table    - Print the period table

Examples:
  economia play
  economia play --seed 42
  economia menu
  economia serve --ssh :2222
  economia http --addr :8080
  economia results --limit 20`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to economia.yaml (default: search ~/.economia/configs, ./configs)")
	rootCmd.PersistentFlags().StringVar(&flagTable, "table", "", "Path to a period table YAML (default: built-in)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", ".env", "Path to a .env file with ECONOMIA_* variables")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (default: ~/.economia/results.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(httpCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(tableCmd)
}
