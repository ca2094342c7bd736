package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagReveal bool

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the period table",
	Long: `Print the public figures for every period of the loaded table.

Prices are hidden during play: CPI and inflation compound into the minimum
spend. --reveal prints all three.

Examples:
  economia table
  economia table --table ./my-periods.yaml --reveal`,
	Args: cobra.NoArgs,
	Run:  runTable,
}

func init() {
	tableCmd.Flags().BoolVar(&flagReveal, "reveal", false, "Include CPI, inflation and the hidden minimum spend")
}

func runTable(_ *cobra.Command, _ []string) {
	a, err := setup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	fmt.Printf("Period table %s\n", a.table.Version())
	fmt.Println()

	// Print header
	fmt.Printf("  %-6s  %10s  %9s  %8s", "Period", "Wage", "GDP index", "Growth")
	if flagReveal {
		fmt.Printf("  %9s  %9s  %10s", "CPI", "Inflation", "Min spend")
	}
	fmt.Println()

	for _, r := range a.table.Records() {
		fmt.Printf("  %-6d  %10.2f  %9.2f  %+7.2f%%", r.Period, r.Wage, r.GDPIndex, r.GrowthPct)
		if flagReveal {
			fmt.Printf("  %9.2f  %8.2f%%  %10.2f", r.CPI, r.InflationPct, r.MinSpend)
		}
		fmt.Println()
	}
}
