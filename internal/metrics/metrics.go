// Package metrics computes the per-step aggregate statistics of a population:
// inequality, total wealth, bracket cutoffs and class mobility.
package metrics

import (
	"math"
	"sort"

	"github.com/talgya/inequality-sim/internal/agents"
)

// Total returns the sum of w using compensated summation.
func Total(w []float64) float64 {
	sum, c := 0.0, 0.0
	for _, v := range w {
		y := v - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum
}

// Mean returns the arithmetic mean of w, or 0 for an empty slice.
func Mean(w []float64) float64 {
	if len(w) == 0 {
		return 0
	}
	return Total(w) / float64(len(w))
}

func sorted(w []float64) []float64 {
	s := make([]float64, len(w))
	copy(s, w)
	sort.Float64s(s)
	return s
}

// Gini returns the Gini coefficient of a non-negative wealth vector: the mean
// absolute difference over all pairs divided by twice the mean. Degenerate
// inputs (n <= 1, zero total, all equal) return 0.
func Gini(w []float64) float64 {
	n := len(w)
	if n <= 1 {
		return 0
	}
	s := sorted(w)
	if s[0] == s[n-1] {
		return 0
	}
	total := Total(s)
	if total <= 0 {
		return 0
	}

	// Sorted form: G = 2·Σ i·x_i / (n·Σx) − (n+1)/n, with i from 1.
	weighted := 0.0
	for i, x := range s {
		weighted += float64(i+1) * x
	}
	g := 2*weighted/(float64(n)*total) - float64(n+1)/float64(n)

	if g < 0 {
		return 0
	}
	if g >= 1 {
		return math.Nextafter(1, 0)
	}
	return g
}

// Quantile returns the q-quantile of w with linear interpolation between
// order statistics (position q·(n−1)). q is clamped to [0, 1]. Empty input returns 0.
func Quantile(w []float64, q float64) float64 {
	if len(w) == 0 {
		return 0
	}
	return quantileSorted(sorted(w), q)
}

func quantileSorted(s []float64, q float64) float64 {
	if q <= 0 {
		return s[0]
	}
	if q >= 1 {
		return s[len(s)-1]
	}
	pos := q * float64(len(s)-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= len(s) {
		return s[lo]
	}
	frac := pos - float64(lo)
	return s[lo] + frac*(s[hi]-s[lo])
}

// BracketThresholds returns the lower and upper bracket cutoffs at the given quantiles.
func BracketThresholds(w []float64, lowerQ, upperQ float64) agents.Thresholds {
	if len(w) == 0 {
		return agents.Thresholds{}
	}
	s := sorted(w)
	return agents.Thresholds{
		Lower: quantileSorted(s, lowerQ),
		Upper: quantileSorted(s, upperQ),
	}
}

// Bartholomew returns the population mobility index between two bracket
// snapshots aligned by agent: Σ|i−j| / (N·(K−1)) with K brackets. 0 means
// nobody moved, 1 means everyone jumped between the extreme classes.
func Bartholomew(prev, curr []agents.Bracket) float64 {
	n := len(curr)
	if len(prev) < n {
		n = len(prev)
	}
	if n == 0 {
		return 0
	}
	moved := 0
	for i := 0; i < n; i++ {
		d := int(curr[i]) - int(prev[i])
		if d < 0 {
			d = -d
		}
		moved += d
	}
	return float64(moved) / float64(n*(agents.NumBrackets-1))
}

// Churn summarizes class movement between two aligned snapshots and the
// current class sizes.
type Churn struct {
	MovingUp   int `json:"moving_up"`
	MovingDown int `json:"moving_down"`
	Lower      int `json:"lower"`
	Middle     int `json:"middle"`
	Upper      int `json:"upper"`
}

// ComputeChurn counts agents whose bracket rose or fell and tallies the current brackets.
func ComputeChurn(prev, curr []agents.Bracket) Churn {
	var c Churn
	for i, b := range curr {
		switch b {
		case agents.Lower:
			c.Lower++
		case agents.Middle:
			c.Middle++
		case agents.Upper:
			c.Upper++
		}
		if i >= len(prev) {
			continue
		}
		switch {
		case b > prev[i]:
			c.MovingUp++
		case b < prev[i]:
			c.MovingDown++
		}
	}
	return c
}

// SturgesBinMaxima splits the wealth range into ceil(log2 n + 1) equal-width
// bins and returns the maximum of each non-empty bin, lowest bin first.
func SturgesBinMaxima(w []float64) []float64 {
	if len(w) == 0 {
		return nil
	}
	s := sorted(w)
	lo, hi := s[0], s[len(s)-1]
	if lo == hi {
		return []float64{hi}
	}

	bins := int(math.Ceil(math.Log2(float64(len(s))) + 1))
	width := (hi - lo) / float64(bins)
	maxima := make([]float64, bins)
	filled := make([]bool, bins)
	for _, v := range s {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1 // the maximum lands on the closed upper edge
		}
		maxima[idx] = v
		filled[idx] = true
	}

	out := make([]float64, 0, bins)
	for i, ok := range filled {
		if ok {
			out = append(out, maxima[i])
		}
	}
	return out
}
