package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cpcalc",
	Short: "Cathodic protection engineering calculators",
	Long: `cpcalc - cathodic protection calculators from the command line.

Runs the same calculations as the dashboard API. Inputs may be given in
m, cm, mm, in or ft; all results are reported in m² and ft².`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
