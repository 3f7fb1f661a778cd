package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Plan hex coverage routes offline",
	Long: `Generate a hex coverage map, assign it to a fleet and plan a greedy
nearest-neighbour route for every vehicle, benchmark route quality
against the exact optimum, or sweep a polygon with a back-and-forth path.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newPlanCmd(), newBenchCmd(), newSweepCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
