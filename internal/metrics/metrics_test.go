package metrics

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/talgya/inequality-sim/internal/agents"
	"github.com/talgya/inequality-sim/internal/entropy"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGiniDegenerate(t *testing.T) {
	for _, w := range [][]float64{nil, {5}, {3, 3, 3, 3}, {0, 0}} {
		if g := Gini(w); g != 0 {
			t.Fatalf("Gini(%v) = %v, want exactly 0", w, g)
		}
	}
}

func TestGiniKnownValues(t *testing.T) {
	if g := Gini([]float64{0, 0, 0, 1}); !near(g, 0.75) {
		t.Fatalf("Gini of single holder among four = %v, want 0.75", g)
	}
	if g := Gini([]float64{1, 2, 3, 4}); !near(g, 0.25) {
		t.Fatalf("Gini(1,2,3,4) = %v, want 0.25", g)
	}
}

func TestGiniMatchesPairwiseDefinition(t *testing.T) {
	rng := entropy.New(4)
	w := make([]float64, 60)
	for i := range w {
		w[i] = 1 + rng.Pareto(1.5)*10
	}

	// Mean absolute difference over all ordered pairs divided by twice the mean.
	var mad float64
	for _, a := range w {
		for _, b := range w {
			mad += math.Abs(a - b)
		}
	}
	n := float64(len(w))
	want := mad / (n * n) / (2 * Mean(w))

	if got := Gini(w); !near(got, want) {
		t.Fatalf("Gini = %v, pairwise definition = %v", got, want)
	}
	if g := Gini(w); g < 0 || g >= 1 {
		t.Fatalf("Gini %v outside [0,1)", g)
	}
}

func TestTotalAndMean(t *testing.T) {
	w := []float64{1, 2, 3.5}
	if Total(w) != 6.5 {
		t.Fatalf("Total = %v", Total(w))
	}
	if !near(Mean(w), 6.5/3) {
		t.Fatalf("Mean = %v", Mean(w))
	}
	if Mean(nil) != 0 {
		t.Fatalf("Mean of empty should be 0")
	}
}

func TestQuantileInterpolates(t *testing.T) {
	w := []float64{5, 1, 4, 2, 3}
	th := BracketThresholds(w, 0.33, 0.67)
	if !near(th.Lower, 2.32) || !near(th.Upper, 3.68) {
		t.Fatalf("thresholds = %+v, want {2.32 3.68}", th)
	}
	if Quantile(w, 0) != 1 || Quantile(w, 1) != 5 {
		t.Fatalf("extreme quantiles wrong")
	}
	if Quantile(nil, 0.5) != 0 {
		t.Fatalf("empty quantile should be 0")
	}
}

func TestBartholomew(t *testing.T) {
	prev := []agents.Bracket{agents.Lower, agents.Middle, agents.Upper}
	curr := []agents.Bracket{agents.Upper, agents.Middle, agents.Lower}
	if got := Bartholomew(prev, curr); !near(got, 4.0/6.0) {
		t.Fatalf("Bartholomew = %v, want 2/3", got)
	}
	if got := Bartholomew(prev, prev); got != 0 {
		t.Fatalf("no movement should score 0, got %v", got)
	}
	if got := Bartholomew(nil, nil); got != 0 {
		t.Fatalf("empty should score 0, got %v", got)
	}
}

func TestComputeChurn(t *testing.T) {
	prev := []agents.Bracket{agents.Lower, agents.Middle, agents.Upper, agents.Middle}
	curr := []agents.Bracket{agents.Middle, agents.Middle, agents.Lower, agents.Upper}
	want := Churn{MovingUp: 2, MovingDown: 1, Lower: 1, Middle: 2, Upper: 1}
	if diff := cmp.Diff(want, ComputeChurn(prev, curr)); diff != "" {
		t.Fatalf("churn mismatch (-want +got):\n%s", diff)
	}
}

func TestSturgesBinMaxima(t *testing.T) {
	got := SturgesBinMaxima([]float64{8, 1, 2, 3, 4, 5, 6, 7})
	if diff := cmp.Diff([]float64{2, 4, 6, 8}, got); diff != "" {
		t.Fatalf("bin maxima mismatch (-want +got):\n%s", diff)
	}
	if got := SturgesBinMaxima([]float64{3, 3}); len(got) != 1 || got[0] != 3 {
		t.Fatalf("flat distribution should give one bin, got %v", got)
	}
}

func TestCollectorSeries(t *testing.T) {
	var c Collector
	if len(c.GiniSeries()) != 0 || len(c.TotalSeries()) != 0 {
		t.Fatalf("expected empty series")
	}
	c.Record(DataPoint{Step: 1, Gini: 0.1, TotalWealth: 100})
	c.Record(DataPoint{Step: 2, Gini: 0.2, TotalWealth: 110})
	if diff := cmp.Diff([]float64{0.1, 0.2}, c.GiniSeries()); diff != "" {
		t.Fatalf("gini series (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{100, 110}, c.TotalSeries()); diff != "" {
		t.Fatalf("total series (-want +got):\n%s", diff)
	}
	last, ok := c.Last()
	if !ok || last.Step != 2 {
		t.Fatalf("unexpected last point %+v", last)
	}
}
