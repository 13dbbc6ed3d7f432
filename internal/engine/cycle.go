// Business cycle: smooth, seeded swings in the cost of living.
package engine

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Cycle scales the survival cost over time with 1-D simplex noise.
type Cycle struct {
	noise     opensimplex.Noise
	amplitude float64
	period    float64
}

// NewCycle creates a cycle seeded from the simulation seed. A zero amplitude
// yields a flat cycle that never touches the noise source.
func NewCycle(seed int64, amplitude, period float64) *Cycle {
	c := &Cycle{amplitude: amplitude, period: period}
	if amplitude > 0 {
		c.noise = opensimplex.NewNormalized(seed + 1)
	}
	return c
}

// Factor returns the survival-cost multiplier for step, in
// [1-amplitude, 1+amplitude].
func (c *Cycle) Factor(step int) float64 {
	if c == nil || c.noise == nil {
		return 1
	}
	// Normalized noise is in [0, 1]; recenter to [-1, 1].
	n := 2*c.noise.Eval2(float64(step)/c.period, 0) - 1
	return 1 + c.amplitude*n
}
