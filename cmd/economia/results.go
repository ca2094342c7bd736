package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chaos-economy/internal/storage"
)

var (
	flagResultsLimit int
	flagClear        bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the longest-surviving games",
	Long: `Display the games that lasted the longest, best first.

Examples:
  economia results
  economia results --limit 25
  economia results --clear`,
	Args: cobra.NoArgs,
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Number of results to show")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded result")
}

func runResults(_ *cobra.Command, _ []string) {
	a, err := setup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = printResults(a.store)
	a.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printResults(store *storage.Store) error {
	if store == nil {
		return errors.New("results database is disabled or unavailable")
	}

	if flagClear {
		if err := store.ClearResults(); err != nil {
			return fmt.Errorf("clearing results: %w", err)
		}
		fmt.Println("All results cleared.")
		return nil
	}

	results, err := store.TopResults(flagResultsLimit)
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}

	fmt.Println("Longest survivors")
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'economia play' to set the bar!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-10s  %-16s  %s\n", "Rank", "Period", "Profile", "Date", "Spending")
	fmt.Printf("  %-4s  %-6s  %-10s  %-16s  %s\n", "----", "------", "-------", "----", "--------")

	for i, entry := range results {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-10s  %-16s  %s\n", i+1, entry.FinalPeriod, entry.Outcome, dateStr, joinAmounts(entry.Consumptions))
	}

	// Show totals
	fmt.Println()
	if stats, err := store.GetStats(); err == nil {
		fmt.Printf("Games: %d  Survivors: %d  Best: period %d  Average: %.1f\n",
			stats.Games, stats.Survivors, stats.BestPeriod, stats.AvgPeriod)
	}
	return nil
}

func joinAmounts(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, " ")
}
