package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/talgya/inequality-sim/internal/metrics"
)

// DefaultReportEvery is how often the engine logs a progress report.
const DefaultReportEvery = 10

// Engine drives a Simulation for a number of steps, optionally paced so a
// watcher can follow along.
type Engine struct {
	Sim         *Simulation
	Interval    time.Duration // pause between steps; 0 runs flat out
	ReportEvery int           // report every N steps; 0 disables reports

	// Callbacks, populated during setup.
	OnStep   func(p metrics.DataPoint) // every step
	OnReport func(p metrics.DataPoint) // every ReportEvery steps, defaults to a log line
}

// NewEngine creates an engine for sim with default settings.
func NewEngine(sim *Simulation) *Engine {
	return &Engine{
		Sim:         sim,
		ReportEvery: DefaultReportEvery,
	}
}

// Run advances the simulation by steps. It returns early with the context
// error when ctx is cancelled; steps already taken are kept.
func (e *Engine) Run(ctx context.Context, steps int) error {
	if e.Sim == nil || !e.Sim.Initialized() {
		return ErrNotInitialized
	}
	if steps < 0 {
		return &ConfigError{Field: "steps", Reason: "must be >= 0"}
	}

	start := e.Sim.Status().StepCount
	slog.Info("simulation engine started", "step", start, "steps", steps, "interval", e.Interval)

	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			slog.Info("simulation engine cancelled", "step", e.Sim.Status().StepCount)
			return err
		}
		began := time.Now()

		if err := e.Sim.Step(); err != nil {
			return fmt.Errorf("step %d: %w", start+i+1, err)
		}
		p, _ := e.Sim.run.history.Last()

		if e.OnStep != nil {
			e.OnStep(p)
		}
		if e.ReportEvery > 0 && p.Step%e.ReportEvery == 0 {
			e.report(p)
		}

		if e.Interval > 0 {
			// Sleep for the remainder of the interval.
			if wait := e.Interval - time.Since(began); wait > 0 {
				t := time.NewTimer(wait)
				select {
				case <-ctx.Done():
					t.Stop()
					return ctx.Err()
				case <-t.C:
				}
			}
		}
	}

	slog.Info("simulation engine stopped", "step", e.Sim.Status().StepCount)
	return nil
}

func (e *Engine) report(p metrics.DataPoint) {
	if e.OnReport != nil {
		e.OnReport(p)
		return
	}
	slog.Info("step report",
		"step", p.Step,
		"gini", fmt.Sprintf("%.4f", p.Gini),
		"total_wealth", fmt.Sprintf("%.2f", p.TotalWealth),
		"mobility", fmt.Sprintf("%.4f", p.Mobility),
		"moving_up", p.Churn.MovingUp,
		"moving_down", p.Churn.MovingDown,
		"lower", p.Churn.Lower,
		"middle", p.Churn.Middle,
		"upper", p.Churn.Upper,
	)
}
