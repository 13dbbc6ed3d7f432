package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/inequality-sim/internal/engine"
	"github.com/talgya/inequality-sim/internal/persistence"
)

var runFlags struct {
	policy      string
	population  int
	steps       int
	seed        int64
	interval    time.Duration
	reportEvery int
	dbPath      string
	label       string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation and print its metrics",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.policy, "policy", "", "policy name or alias (see 'inequality policies')")
	f.IntVar(&runFlags.population, "population", 0, "number of agents")
	f.IntVar(&runFlags.steps, "steps", 0, "steps to run")
	f.Int64Var(&runFlags.seed, "seed", 0, "random seed; 0 draws a fresh one")
	f.DurationVar(&runFlags.interval, "interval", 0, "pause between steps, e.g. 200ms")
	f.IntVar(&runFlags.reportEvery, "report-every", engine.DefaultReportEvery, "print a table row every N steps")
	f.StringVar(&runFlags.dbPath, "db", "", "archive the finished run into this SQLite file")
	f.StringVar(&runFlags.label, "label", "", "label stored with the archived run")
}

func runRun(cmd *cobra.Command, _ []string) error {
	file, err := loadConfig()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("policy") {
		file.Policy = runFlags.policy
	}
	if flags.Changed("population") {
		file.Population = runFlags.population
	}
	if flags.Changed("steps") {
		file.Steps = runFlags.steps
	}
	if flags.Changed("seed") {
		file.Seed = runFlags.seed
	}

	sim := engine.NewSimulation()
	if err := sim.Initialize(file.Engine()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.NewEngine(sim)
	eng.Interval = runFlags.interval
	eng.ReportEvery = runFlags.reportEvery
	runErr := eng.Run(ctx, file.Steps)
	if runErr != nil && ctx.Err() == nil {
		return runErr
	}

	out := cmd.OutOrStdout()
	if err := printRun(out, sim, runFlags.reportEvery); err != nil {
		return err
	}

	if runFlags.dbPath != "" {
		db, err := persistence.Open(runFlags.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		id, err := db.SaveRun(sim, persistence.RunMeta{Label: runFlags.label})
		if err != nil {
			return fmt.Errorf("archive run: %w", err)
		}
		fmt.Fprintf(out, "Archived as run %s\n", id)
	}
	return runErr
}
