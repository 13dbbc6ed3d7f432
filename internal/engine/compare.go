// Policy comparison: the same population run once under each policy.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/talgya/inequality-sim/internal/economy"
	"github.com/talgya/inequality-sim/internal/entropy"
)

// ComparisonResult is the outcome of one policy in a comparison.
type ComparisonResult struct {
	Policy      economy.Name `json:"policy"`
	FinalWealth []float64    `json:"final_wealth"`
	Gini        []float64    `json:"gini"`
	Total       []float64    `json:"total"`
}

// Compare runs cfg once per policy for steps steps. Every run shares the same
// seed, so each policy starts from an identical population. Runs are
// independent Simulations and execute concurrently; results come back in the
// order of policies. An empty policies list compares all of them.
func Compare(ctx context.Context, cfg Config, policies []economy.Name, steps int) ([]ComparisonResult, error) {
	if len(policies) == 0 {
		policies = economy.Names()
	}
	if steps < 0 {
		return nil, &ConfigError{Field: "steps", Reason: "must be >= 0"}
	}
	if cfg.Seed == 0 {
		cfg.Seed = entropy.Seed()
	}

	results := make([]ComparisonResult, len(policies))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range policies {
		i, name := i, name
		g.Go(func() error {
			c := cfg
			c.Policy = string(name)
			sim := NewSimulation()
			if err := sim.Initialize(c); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			for s := 0; s < steps; s++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := sim.Step(); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}

			wealth, _ := sim.WealthDistribution()
			gini, _ := sim.GiniHistory()
			total, _ := sim.TotalWealthHistory()
			results[i] = ComparisonResult{
				Policy:      name,
				FinalWealth: wealth,
				Gini:        gini,
				Total:       total,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("comparison complete", "policies", len(policies), "steps", steps, "seed", cfg.Seed)
	return results, nil
}
