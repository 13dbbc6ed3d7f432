// Package engine owns a simulation run: the population, the active policy,
// the per-step schedule and the metrics history.
package engine

import (
	"errors"
	"log/slog"
	"math"

	"github.com/talgya/inequality-sim/internal/agents"
	"github.com/talgya/inequality-sim/internal/economy"
	"github.com/talgya/inequality-sim/internal/entropy"
	"github.com/talgya/inequality-sim/internal/metrics"
)

// Simulation is a single wealth-exchange model. It starts uninitialized;
// Initialize moves it to ready, and only a later Initialize replaces the run.
// A Simulation is not safe for concurrent use. Independent Simulations are.
type Simulation struct {
	run *state
}

// state is one initialized run. It implements economy.Market.
type state struct {
	cfg    Config
	policy economy.Policy
	rng    *entropy.Source
	cycle  *Cycle

	agents []*agents.Agent // ordered by id; agent i has id i+1
	order  []int           // iteration order, reshuffled every step

	thresholds   agents.Thresholds
	survivalCost float64
	stepCount    int
	history      metrics.Collector
}

// Status is the summary exposed to callers.
type Status struct {
	Initialized bool    `json:"initialized"`
	Policy      *string `json:"policy"`
	Population  *int    `json:"population"`
	StepCount   int     `json:"step_count"`
}

// MobilityPoint is one agent's class, mobility and wealth.
type MobilityPoint struct {
	ID       agents.AgentID `json:"id"`
	Bracket  agents.Bracket `json:"bracket"`
	Mobility float64        `json:"mobility"`
	Wealth   float64        `json:"wealth"`
}

// NewSimulation returns an uninitialized simulation.
func NewSimulation() *Simulation {
	return &Simulation{}
}

// Initialize builds a fresh run from cfg. On error the simulation keeps its
// previous run (or stays uninitialized) and the error is a *ConfigError.
func (s *Simulation) Initialize(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	name, err := economy.ParseName(cfg.Policy)
	if err != nil {
		return &ConfigError{Field: "policy", Reason: "not a recognized policy", Err: err}
	}
	policy, err := economy.New(name, cfg.Params)
	if err != nil {
		var pe *economy.ParamError
		if errors.As(err, &pe) {
			return &ConfigError{Field: string(pe.Policy) + "." + pe.Field, Reason: pe.Reason, Err: err}
		}
		return &ConfigError{Field: "policy", Reason: "cannot build policy", Err: err}
	}
	cfg.Policy = string(name)

	if cfg.Seed == 0 {
		cfg.Seed = entropy.Seed()
	}
	rng := entropy.New(cfg.Seed)

	st := &state{
		cfg:    cfg,
		policy: policy,
		rng:    rng,
		cycle:  NewCycle(cfg.Seed, cfg.CycleAmplitude, cfg.CyclePeriod),
		agents: agents.NewSpawner(rng).SpawnPopulation(cfg.Population, cfg.Spawn),
		order:  make([]int, cfg.Population),
	}
	for i := range st.order {
		st.order[i] = i
	}
	policy.Setup(st)

	s.run = st
	slog.Info("simulation initialized",
		"policy", cfg.Policy,
		"population", cfg.Population,
		"seed", cfg.Seed,
	)
	return nil
}

// Initialized reports whether the simulation is ready to step.
func (s *Simulation) Initialized() bool {
	return s.run != nil
}

// Step advances the simulation by one step.
func (s *Simulation) Step() error {
	if s.run == nil {
		return ErrNotInitialized
	}
	s.run.step()
	return nil
}

// Run advances the simulation by n steps, one after another.
func (s *Simulation) Run(n int) error {
	if s.run == nil {
		return ErrNotInitialized
	}
	if n < 0 {
		return &ConfigError{Field: "steps", Reason: "must be >= 0"}
	}
	for i := 0; i < n; i++ {
		s.run.step()
	}
	return nil
}

func (st *state) step() {
	wealths := agents.Wealths(st.agents)

	// Cost of living tracks mean wealth: the q-quantile of Exp(mean).
	mean := metrics.Mean(wealths)
	st.survivalCost = -mean * math.Log1p(-st.cfg.SurvivalQuantile) * st.cycle.Factor(st.stepCount)

	st.thresholds = metrics.BracketThresholds(wealths, st.cfg.LowerQuantile, st.cfg.UpperQuantile)

	// A fresh order every step so nobody is systematically the later party.
	st.rng.Shuffle(len(st.order), func(i, j int) {
		st.order[i], st.order[j] = st.order[j], st.order[i]
	})

	st.policy.Prepare(st)
	body := func(a *agents.Agent) { st.policy.Execute(a, st) }
	for _, i := range st.order {
		st.agents[i].Step(st.thresholds, body)
	}
	st.policy.Redistribute(st)

	st.stepCount++
	st.record()
}

func (st *state) record() {
	wealths := agents.Wealths(st.agents)
	prev := agents.PreviousBrackets(st.agents)
	curr := agents.Brackets(st.agents)

	p := metrics.DataPoint{
		Step:        st.stepCount,
		Gini:        metrics.Gini(wealths),
		TotalWealth: metrics.Total(wealths),
		Mobility:    metrics.Bartholomew(prev, curr),
		Churn:       metrics.ComputeChurn(prev, curr),
	}
	st.history.Record(p)

	slog.Debug("step",
		"step", p.Step,
		"gini", p.Gini,
		"total_wealth", p.TotalWealth,
		"survival_cost", st.survivalCost,
		"mobility", p.Mobility,
	)
}

// economy.Market

func (st *state) Agents() []*agents.Agent { return st.agents }
func (st *state) SurvivalCost() float64   { return st.survivalCost }
func (st *state) Rand() *entropy.Source   { return st.rng }

func (st *state) IndexOf(id agents.AgentID) int {
	i := int(id) - 1
	if i >= 0 && i < len(st.agents) && st.agents[i].ID == id {
		return i
	}
	for j, a := range st.agents {
		if a.ID == id {
			return j
		}
	}
	return -1
}

// Status returns the current summary. It never fails.
func (s *Simulation) Status() Status {
	if s.run == nil {
		return Status{}
	}
	policy := s.run.cfg.Policy
	pop := len(s.run.agents)
	return Status{
		Initialized: true,
		Policy:      &policy,
		Population:  &pop,
		StepCount:   s.run.stepCount,
	}
}

// Config returns the resolved configuration of the current run, including
// the canonical policy name and the seed actually used.
func (s *Simulation) Config() (Config, error) {
	if s.run == nil {
		return Config{}, ErrNotInitialized
	}
	return s.run.cfg, nil
}

// WealthDistribution returns every agent's wealth ordered by agent id.
func (s *Simulation) WealthDistribution() ([]float64, error) {
	if s.run == nil {
		return nil, ErrNotInitialized
	}
	return agents.Wealths(s.run.agents), nil
}

// MobilityData returns bracket, mobility and wealth per agent ordered by agent id.
func (s *Simulation) MobilityData() ([]MobilityPoint, error) {
	if s.run == nil {
		return nil, ErrNotInitialized
	}
	out := make([]MobilityPoint, len(s.run.agents))
	for i, a := range s.run.agents {
		out[i] = MobilityPoint{
			ID:       a.ID,
			Bracket:  a.Bracket,
			Mobility: a.Mobility,
			Wealth:   a.Wealth,
		}
	}
	return out, nil
}

// GiniHistory returns the Gini coefficient after each step.
func (s *Simulation) GiniHistory() ([]float64, error) {
	if s.run == nil {
		return nil, ErrNotInitialized
	}
	return s.run.history.GiniSeries(), nil
}

// TotalWealthHistory returns total wealth after each step.
func (s *Simulation) TotalWealthHistory() ([]float64, error) {
	if s.run == nil {
		return nil, ErrNotInitialized
	}
	return s.run.history.TotalSeries(), nil
}

// History returns every recorded data point.
func (s *Simulation) History() ([]metrics.DataPoint, error) {
	if s.run == nil {
		return nil, ErrNotInitialized
	}
	return s.run.history.Points(), nil
}

// Agents returns a copy of every agent ordered by id.
func (s *Simulation) Agents() ([]agents.Agent, error) {
	if s.run == nil {
		return nil, ErrNotInitialized
	}
	out := make([]agents.Agent, len(s.run.agents))
	for i, a := range s.run.agents {
		out[i] = *a
	}
	return out, nil
}

// Thresholds returns the bracket cutoffs used by the last step.
func (s *Simulation) Thresholds() (agents.Thresholds, error) {
	if s.run == nil {
		return agents.Thresholds{}, ErrNotInitialized
	}
	return s.run.thresholds, nil
}

// SurvivalCost returns the cost of living used by the last step.
func (s *Simulation) SurvivalCost() (float64, error) {
	if s.run == nil {
		return 0, ErrNotInitialized
	}
	return s.run.survivalCost, nil
}
