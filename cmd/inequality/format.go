package main

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/talgya/inequality-sim/internal/agents"
	"github.com/talgya/inequality-sim/internal/engine"
	"github.com/talgya/inequality-sim/internal/metrics"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	return t
}

// rightAlign right-aligns columns from..to (1-based, inclusive).
func rightAlign(t table.Writer, from, to int) {
	var cfgs []table.ColumnConfig
	for n := from; n <= to; n++ {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	t.SetColumnConfigs(cfgs)
}

func formatWealth(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

func relTime(t time.Time) string {
	return humanize.Time(t)
}

// historyTable renders every nth data point plus the last one.
func historyTable(points []metrics.DataPoint, every int) string {
	if every < 1 {
		every = 1
	}
	t := newTable()
	t.AppendHeader(table.Row{"Step", "Gini", "Total wealth", "Mobility", "Up", "Down", "Lower", "Middle", "Upper"})
	for i, p := range points {
		if p.Step%every != 0 && i != len(points)-1 {
			continue
		}
		c := p.Churn
		t.AppendRow(table.Row{
			p.Step,
			fmt.Sprintf("%.4f", p.Gini),
			formatWealth(p.TotalWealth),
			fmt.Sprintf("%.4f", p.Mobility),
			c.MovingUp, c.MovingDown, c.Lower, c.Middle, c.Upper,
		})
	}
	rightAlign(t, 1, 9)
	return t.Render()
}

// printRun writes a finished run's summary, sampled history and per-bracket breakdown.
func printRun(out io.Writer, sim *engine.Simulation, every int) error {
	cfg, err := sim.Config()
	if err != nil {
		return err
	}
	st := sim.Status()
	hist, _ := sim.History()
	data, _ := sim.MobilityData()
	wealth, _ := sim.WealthDistribution()
	th, _ := sim.Thresholds()
	cost, _ := sim.SurvivalCost()

	fmt.Fprintf(out, "Policy:        %s\n", cfg.Policy)
	fmt.Fprintf(out, "Population:    %d\n", len(wealth))
	fmt.Fprintf(out, "Steps:         %d\n", st.StepCount)
	fmt.Fprintf(out, "Seed:          %d\n", cfg.Seed)
	fmt.Fprintf(out, "Total wealth:  %s\n", formatWealth(metrics.Total(wealth)))
	fmt.Fprintf(out, "Gini:          %.4f\n", metrics.Gini(wealth))
	if st.StepCount > 0 {
		fmt.Fprintf(out, "Survival cost: %.4f\n", cost)
		fmt.Fprintf(out, "Brackets:      lower < %.2f <= middle < %.2f <= upper\n", th.Lower, th.Upper)
	}
	if len(hist) > 0 {
		fmt.Fprintln(out, historyTable(hist, every))
	}

	var count [agents.NumBrackets]int
	var held, mobility [agents.NumBrackets]float64
	for _, d := range data {
		count[d.Bracket]++
		held[d.Bracket] += d.Wealth
		mobility[d.Bracket] += d.Mobility
	}
	total := metrics.Total(wealth)
	t := newTable()
	t.AppendHeader(table.Row{"Bracket", "Agents", "Wealth held", "Share", "Mean mobility"})
	for b := agents.Lower; b <= agents.Upper; b++ {
		share, mob := 0.0, 0.0
		if total > 0 {
			share = held[b] / total
		}
		if count[b] > 0 {
			mob = mobility[b] / float64(count[b])
		}
		t.AppendRow(table.Row{b, count[b], formatWealth(held[b]), fmt.Sprintf("%.1f%%", 100*share), fmt.Sprintf("%.3f", mob)})
	}
	rightAlign(t, 2, 5)
	fmt.Fprintln(out, t.Render())
	return nil
}

// comparisonTable renders one row per policy.
func comparisonTable(results []engine.ComparisonResult, steps int) string {
	t := newTable()
	t.SetTitle(fmt.Sprintf("Policy comparison after %d steps", steps))
	t.AppendHeader(table.Row{"Policy", "Gini", "Peak Gini", "Total wealth", "Poorest", "Richest", "Top 10% share"})
	for _, r := range results {
		gini := metrics.Gini(r.FinalWealth)
		peak := 0.0
		if len(r.Gini) > 0 {
			peak = slices.Max(r.Gini)
		}
		total := metrics.Total(r.FinalWealth)
		t.AppendRow(table.Row{
			r.Policy,
			fmt.Sprintf("%.4f", gini),
			fmt.Sprintf("%.4f", peak),
			formatWealth(total),
			formatWealth(slices.Min(r.FinalWealth)),
			formatWealth(slices.Max(r.FinalWealth)),
			fmt.Sprintf("%.1f%%", 100*topShare(r.FinalWealth, 0.1, total)),
		})
	}
	rightAlign(t, 2, 7)
	return t.Render() + "\n"
}

// topShare is the fraction of total held by the richest frac of agents.
func topShare(wealth []float64, frac, total float64) float64 {
	if len(wealth) == 0 || total <= 0 {
		return 0
	}
	sorted := slices.Clone(wealth)
	slices.Sort(sorted)
	k := max(1, int(float64(len(sorted))*frac))
	return metrics.Total(sorted[len(sorted)-k:]) / total
}
