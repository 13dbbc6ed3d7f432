package engine

import (
	"fmt"

	"github.com/talgya/inequality-sim/internal/agents"
	"github.com/talgya/inequality-sim/internal/economy"
)

// Config holds everything Initialize needs.
type Config struct {
	Policy     string // policy name or dashboard alias; empty selects econophysics
	Population int
	Seed       int64 // 0 draws a fresh seed from crypto/rand

	// SurvivalQuantile sets the cost of living: the q-quantile of an
	// exponential distribution whose mean is the current mean wealth.
	SurvivalQuantile float64

	// Bracket cutoffs as quantiles of the wealth distribution.
	LowerQuantile float64
	UpperQuantile float64

	// Business cycle: survival cost is scaled by 1 ± CycleAmplitude following
	// simplex noise with the given period in steps. Amplitude 0 disables it.
	CycleAmplitude float64
	CyclePeriod    float64

	Spawn  agents.SpawnConfig
	Params economy.Params
}

// DefaultConfig returns an econophysics run of 200 agents with seed 42.
func DefaultConfig() Config {
	return Config{
		Policy:           string(economy.Econophysics),
		Population:       200,
		Seed:             42,
		SurvivalQuantile: 0.1,
		LowerQuantile:    0.33,
		UpperQuantile:    0.67,
		CycleAmplitude:   0,
		CyclePeriod:      25,
		Spawn:            agents.DefaultSpawnConfig(),
		Params:           economy.DefaultParams(),
	}
}

// validate checks everything except policy parameters, which economy.New checks.
func (c Config) validate() error {
	bad := func(field, format string, args ...any) error {
		return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
	}
	sp := c.Spawn
	switch {
	case c.Population <= 0:
		return bad("population", "must be > 0, got %d", c.Population)
	case c.SurvivalQuantile < 0 || c.SurvivalQuantile >= 1:
		return bad("survival_quantile", "must be in [0, 1), got %v", c.SurvivalQuantile)
	case c.LowerQuantile < 0 || c.UpperQuantile > 1 || c.LowerQuantile > c.UpperQuantile:
		return bad("bracket_quantiles", "need 0 <= lower <= upper <= 1, got %v/%v", c.LowerQuantile, c.UpperQuantile)
	case c.CycleAmplitude < 0 || c.CycleAmplitude >= 1:
		return bad("cycle_amplitude", "must be in [0, 1), got %v", c.CycleAmplitude)
	case c.CycleAmplitude > 0 && c.CyclePeriod <= 0:
		return bad("cycle_period", "must be > 0 when the cycle is enabled, got %v", c.CyclePeriod)
	case sp.StartingWealth < agents.MinWealth:
		return bad("starting_wealth", "must be >= %v, got %v", agents.MinWealth, sp.StartingWealth)
	case sp.GrowthSD < 0 || sp.GrowthMin > sp.GrowthMax || sp.GrowthMin < 0:
		return bad("growth", "need sd >= 0 and 0 <= min <= max")
	case sp.InnovationAlpha <= 0:
		return bad("innovation_alpha", "must be > 0, got %v", sp.InnovationAlpha)
	case sp.InnovationMin < 1 || sp.InnovationMin > sp.InnovationMax:
		return bad("innovation", "need 1 <= min <= max, got %v/%v", sp.InnovationMin, sp.InnovationMax)
	}
	return nil
}
