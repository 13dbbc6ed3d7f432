package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talgya/inequality-sim/internal/economy"
	"github.com/talgya/inequality-sim/internal/engine"
)

var compareFlags struct {
	policies   []string
	population int
	steps      int
	seed       int64
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run the same population under several policies side by side",
	RunE:  runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringSliceVar(&compareFlags.policies, "policies", nil, "policies to compare (default all)")
	f.IntVar(&compareFlags.population, "population", 0, "number of agents")
	f.IntVar(&compareFlags.steps, "steps", 0, "steps to run")
	f.Int64Var(&compareFlags.seed, "seed", 0, "random seed shared by every run; 0 draws a fresh one")
}

func runCompare(cmd *cobra.Command, _ []string) error {
	file, err := loadConfig()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("population") {
		file.Population = compareFlags.population
	}
	if flags.Changed("steps") {
		file.Steps = compareFlags.steps
	}
	if flags.Changed("seed") {
		file.Seed = compareFlags.seed
	}

	var names []economy.Name
	for _, p := range compareFlags.policies {
		n, err := economy.ParseName(p)
		if err != nil {
			return err
		}
		names = append(names, n)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := engine.Compare(ctx, file.Engine(), names, file.Steps)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), comparisonTable(results, file.Steps))
	return nil
}
