package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/talgya/inequality-sim/internal/persistence"
)

var runsFlags struct {
	dbPath string
}

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "List archived runs, or show one run's history",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRuns,
}

func init() {
	f := runsCmd.Flags()
	f.StringVar(&runsFlags.dbPath, "db", "", "SQLite archive (required)")
	_ = runsCmd.MarkFlagRequired("db")
}

func runRuns(cmd *cobra.Command, args []string) error {
	db, err := persistence.Open(runsFlags.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		id := persistence.RunID(args[0])
		run, err := db.GetRun(id)
		if err != nil {
			return err
		}
		hist, err := db.LoadHistory(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Run %s (%s, %d agents, seed %d)\n", run.ID, run.Policy, run.Population, run.Seed)
		fmt.Fprintln(out, historyTable(hist, 1))
		return nil
	}

	runs, err := db.ListRuns()
	if err != nil {
		return err
	}
	t := newTable()
	t.AppendHeader(table.Row{"Run", "Label", "Policy", "Agents", "Steps", "Gini", "Total wealth", "Archived"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.ID, r.Label, r.Policy, r.Population, r.Steps,
			fmt.Sprintf("%.4f", r.FinalGini), formatWealth(r.FinalTotal), relTime(r.Created()),
		})
	}
	fmt.Fprintln(out, t.Render())
	return nil
}
