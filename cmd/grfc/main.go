package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "grfc",
	Short: "Geometric Resonance Factorization Core",
	Long: `grfc searches for a balanced semiprime's factor pair by sampling an
angular/scale parameter space, gating candidates through a smooth kernel
amplitude, snapping a floating exponent back to an integer candidate, and
certifying candidates with the exact divisibility predicate N mod d == 0.

It refuses every classical fallback: trial division, Pollard rho, ECM, and
sieves are all out of scope. When the geometry exhausts its budget without
a certified factor, the search fails loudly.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "run configuration file (default ./grfc.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(factorCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
