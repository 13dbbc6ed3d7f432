package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/talgya/inequality-sim/internal/economy"
	"github.com/talgya/inequality-sim/internal/metrics"
)

func TestEngineRunsAndReports(t *testing.T) {
	sim := newSim(t, "econophysics", 20)
	eng := NewEngine(sim)
	eng.ReportEvery = 5

	var steps, reports int
	eng.OnStep = func(metrics.DataPoint) { steps++ }
	eng.OnReport = func(p metrics.DataPoint) {
		reports++
		if p.Step%5 != 0 {
			t.Fatalf("report at step %d", p.Step)
		}
	}
	if err := eng.Run(context.Background(), 12); err != nil {
		t.Fatalf("run: %v", err)
	}
	if steps != 12 || reports != 2 {
		t.Fatalf("expected 12 steps and 2 reports, got %d and %d", steps, reports)
	}
	if sim.Status().StepCount != 12 {
		t.Fatalf("step count %d", sim.Status().StepCount)
	}
}

func TestEngineStopsOnCancel(t *testing.T) {
	sim := newSim(t, "econophysics", 20)
	eng := NewEngine(sim)
	eng.Interval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	eng.OnStep = func(p metrics.DataPoint) {
		if p.Step == 3 {
			cancel()
		}
	}
	err := eng.Run(ctx, 100)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := sim.Status().StepCount; got != 3 {
		t.Fatalf("expected to stop after 3 steps, got %d", got)
	}
}

func TestEngineRequiresInitializedSim(t *testing.T) {
	if err := NewEngine(NewSimulation()).Run(context.Background(), 1); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestCycleBounds(t *testing.T) {
	flat := NewCycle(1, 0, 25)
	if flat.Factor(10) != 1 {
		t.Fatalf("flat cycle should be 1")
	}
	c := NewCycle(1, 0.3, 25)
	for step := 0; step < 500; step++ {
		f := c.Factor(step)
		if f < 0.7-1e-12 || f > 1.3+1e-12 {
			t.Fatalf("factor %v at step %d outside [0.7, 1.3]", f, step)
		}
	}
}

func TestCycleStillConservesWealth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Population = 40
	cfg.CycleAmplitude = 0.5
	sim := NewSimulation()
	if err := sim.Initialize(cfg); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	_ = sim.Run(20)
	totals, _ := sim.TotalWealthHistory()
	for i, total := range totals {
		if total < 400-1e-6 || total > 400+1e-6 {
			t.Fatalf("step %d total %v", i+1, total)
		}
	}
}

func TestCompareAllPolicies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Population = 30
	results, err := Compare(context.Background(), cfg, nil, 15)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(results) != len(economy.Names()) {
		t.Fatalf("expected %d results, got %d", len(economy.Names()), len(results))
	}
	for i, r := range results {
		if r.Policy != economy.Names()[i] {
			t.Fatalf("result %d is %s, want %s", i, r.Policy, economy.Names()[i])
		}
		if len(r.FinalWealth) != 30 || len(r.Gini) != 15 || len(r.Total) != 15 {
			t.Fatalf("%s: unexpected lengths %d/%d/%d", r.Policy, len(r.FinalWealth), len(r.Gini), len(r.Total))
		}
		if r.Policy == economy.Communism && r.Gini[14] != 0 {
			t.Fatalf("communism should end perfectly equal, gini %v", r.Gini[14])
		}
	}

	// Same seed, same policy: a comparison run matches a standalone run.
	sim := newSim(t, "econophysics", 30)
	_ = sim.Run(15)
	w, _ := sim.WealthDistribution()
	for i := range w {
		if w[i] != results[0].FinalWealth[i] {
			t.Fatalf("comparison run diverged from standalone at agent %d", i+1)
		}
	}
}

func TestCompareSurfacesConfigErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Population = 0
	if _, err := Compare(context.Background(), cfg, []economy.Name{economy.Fascism}, 5); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
