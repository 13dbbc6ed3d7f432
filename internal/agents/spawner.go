// Agent spawning: creates the initial population with starting wealth,
// growth rates and innovation factors.
package agents

import (
	"math"
	"sort"

	"github.com/talgya/inequality-sim/internal/entropy"
)

// SpawnConfig controls initial population generation.
type SpawnConfig struct {
	StartingWealth float64 `yaml:"starting_wealth"`

	// Growth rate W ~ N(GrowthMean, GrowthSD), rounded to two decimals,
	// clamped to [GrowthMin, GrowthMax].
	GrowthMean float64 `yaml:"growth_mean"`
	GrowthSD   float64 `yaml:"growth_sd"`
	GrowthMin  float64 `yaml:"growth_min"`
	GrowthMax  float64 `yaml:"growth_max"`

	// Innovation I = 1 + Pareto(InnovationAlpha), clamped to [InnovationMin, InnovationMax].
	InnovationAlpha float64 `yaml:"innovation_alpha"`
	InnovationMin   float64 `yaml:"innovation_min"`
	InnovationMax   float64 `yaml:"innovation_max"`
}

// DefaultSpawnConfig returns the population defaults: mean growth 0.2 with
// sd 0.05·√2, Pareto(2.5) innovation bounded to [1.1, 3.0].
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		StartingWealth:  StartingWealth,
		GrowthMean:      0.2,
		GrowthSD:        0.05 * math.Sqrt2,
		GrowthMin:       0.01,
		GrowthMax:       0.5,
		InnovationAlpha: 2.5,
		InnovationMin:   1.1,
		InnovationMax:   3.0,
	}
}

// Spawner creates agents for the simulation.
type Spawner struct {
	rng    *entropy.Source
	nextID AgentID
}

// NewSpawner creates an agent spawner drawing from rng.
func NewSpawner(rng *entropy.Source) *Spawner {
	return &Spawner{
		rng:    rng,
		nextID: 1,
	}
}

// SpawnPopulation creates count agents with ids assigned in order.
func (s *Spawner) SpawnPopulation(count int, cfg SpawnConfig) []*Agent {
	pop := make([]*Agent, 0, count)
	for i := 0; i < count; i++ {
		pop = append(pop, s.spawnOne(cfg))
	}
	return pop
}

func (s *Spawner) spawnOne(cfg SpawnConfig) *Agent {
	id := s.nextID
	s.nextID++

	w := math.Round(s.rng.Gaussian(cfg.GrowthMean, cfg.GrowthSD)*100) / 100
	if w < cfg.GrowthMin {
		w = cfg.GrowthMin
	}
	if w > cfg.GrowthMax {
		w = cfg.GrowthMax
	}

	return &Agent{
		ID:         id,
		Wealth:     cfg.StartingWealth,
		Growth:     w,
		BaseGrowth: w,
		Innovation: s.rng.Innovation(cfg.InnovationAlpha, cfg.InnovationMin, cfg.InnovationMax),
		Bracket:    Middle,
		Previous:   Middle,
	}
}

// PromoteElite marks the top fraction of pop by growth rate as party elite,
// at least one agent. Ties go to the lower id. Returns the number promoted.
func PromoteElite(pop []*Agent, fraction float64) int {
	if len(pop) == 0 || fraction <= 0 {
		return 0
	}
	count := int(float64(len(pop)) * fraction)
	if count < 1 {
		count = 1
	}
	if count > len(pop) {
		count = len(pop)
	}

	ranked := make([]*Agent, len(pop))
	copy(ranked, pop)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Growth != ranked[j].Growth {
			return ranked[i].Growth > ranked[j].Growth
		}
		return ranked[i].ID < ranked[j].ID
	})
	for _, a := range ranked[:count] {
		a.PartyElite = true
	}
	return count
}
