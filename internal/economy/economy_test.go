package economy

import (
	"errors"
	"math"
	"testing"

	"github.com/talgya/inequality-sim/internal/agents"
	"github.com/talgya/inequality-sim/internal/entropy"
)

type testMarket struct {
	pop      []*agents.Agent
	survival float64
	rng      *entropy.Source
}

func newTestMarket(n int, seed int64) *testMarket {
	rng := entropy.New(seed)
	pop := agents.NewSpawner(rng).SpawnPopulation(n, agents.DefaultSpawnConfig())
	return &testMarket{pop: pop, survival: 1.0, rng: rng}
}

func (m *testMarket) Agents() []*agents.Agent { return m.pop }
func (m *testMarket) SurvivalCost() float64   { return m.survival }
func (m *testMarket) Rand() *entropy.Source   { return m.rng }
func (m *testMarket) IndexOf(id agents.AgentID) int {
	for i, a := range m.pop {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (m *testMarket) total() float64 {
	return agents.TotalWealth(m.pop)
}

// runStep drives p the way the engine does, without brackets.
func runStep(p Policy, m *testMarket) {
	p.Prepare(m)
	for _, i := range m.rng.Perm(len(m.pop)) {
		p.Execute(m.pop[i], m)
	}
	p.Redistribute(m)
}

func conserved(t *testing.T, before, after float64) {
	t.Helper()
	if math.Abs(before-after) > 1e-9*before {
		t.Fatalf("total wealth changed: before=%v after=%v", before, after)
	}
}

func floorHeld(t *testing.T, pop []*agents.Agent) {
	t.Helper()
	for _, a := range pop {
		if a.Wealth < agents.MinWealth-1e-12 {
			t.Fatalf("agent %d below floor: %v", a.ID, a.Wealth)
		}
	}
}

func TestParseName(t *testing.T) {
	cases := map[string]Name{
		"":                          Econophysics,
		"Econophysics":              Econophysics,
		"powerful leaders":          Fascism,
		"equal wealth distribution": Communism,
		"innovation":                Capitalism,
		"UBI":                       UBI,
		"patron_system":             Patron,
	}
	for in, want := range cases {
		got, err := ParseName(in)
		if err != nil || got != want {
			t.Fatalf("ParseName(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseName("not_a_policy"); !errors.Is(err, ErrUnknownPolicy) {
		t.Fatalf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestAliasesAndSummaries(t *testing.T) {
	for _, n := range Names() {
		if Summary(n) == "" {
			t.Errorf("%s has no summary", n)
		}
		for _, alias := range Aliases(n) {
			got, err := ParseName(alias)
			if err != nil || got != n {
				t.Errorf("alias %q resolves to %q, %v; want %q", alias, got, err, n)
			}
		}
	}
	want := []string{"powerful leaders"}
	if got := Aliases(Fascism); len(got) != 1 || got[0] != want[0] {
		t.Fatalf("fascism aliases %v, want %v", got, want)
	}
}

func TestNewRejectsBadParams(t *testing.T) {
	params := DefaultParams()
	params.Fascism.TaxRate = 1.5
	_, err := New(Fascism, params)
	var pe *ParamError
	if !errors.As(err, &pe) || pe.Field != "tax_rate" {
		t.Fatalf("expected tax_rate ParamError, got %v", err)
	}

	// Another policy's bad block does not matter.
	if _, err := New(Econophysics, params); err != nil {
		t.Fatalf("econophysics should ignore fascism params: %v", err)
	}
	if _, err := New(Name("barter"), params); !errors.Is(err, ErrUnknownPolicy) {
		t.Fatalf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestExchangeConservesAndHoldsFloor(t *testing.T) {
	m := newTestMarket(100, 1)
	m.survival = 3
	p, _ := New(Econophysics, DefaultParams())
	p.Setup(m)
	for step := 0; step < 50; step++ {
		before := m.total()
		runStep(p, m)
		conserved(t, before, m.total())
		floorHeld(t, m.pop)
	}
}

func TestFascismElitesNeverLose(t *testing.T) {
	m := newTestMarket(50, 2)
	p, _ := New(Fascism, DefaultParams())
	p.Setup(m)

	elites := p.(*FascismPolicy).Elites()
	if len(elites) != 10 {
		t.Fatalf("expected 10 elites out of 50, got %d", len(elites))
	}
	for step := 0; step < 10; step++ {
		prev := make(map[agents.AgentID]float64)
		for _, e := range elites {
			prev[e.ID] = e.Wealth
		}
		before := m.total()
		runStep(p, m)
		conserved(t, before, m.total())
		for _, e := range elites {
			if e.Wealth < prev[e.ID] {
				t.Fatalf("elite %d lost wealth: %v -> %v", e.ID, prev[e.ID], e.Wealth)
			}
		}
	}
}

func TestCommunismLevelsEveryone(t *testing.T) {
	m := newTestMarket(20, 3)
	p, _ := New(Communism, DefaultParams())
	runStep(p, m)
	want := m.total() / 20
	for _, a := range m.pop {
		if math.Abs(a.Wealth-want) > 1e-9 {
			t.Fatalf("agent %d has %v, want %v", a.ID, a.Wealth, want)
		}
	}
}

func TestPatronTransfersFromRichToPool(t *testing.T) {
	m := newTestMarket(10, 4)
	for i, a := range m.pop {
		a.Wealth = float64(10 + i*10) // agent 10 is richest with 100
	}
	p, _ := New(Patron, DefaultParams())
	before := m.total()
	p.Redistribute(m)
	conserved(t, before, m.total())

	// 20% of 10 agents: the two richest donate 10% each.
	if got := m.pop[9].Wealth; math.Abs(got-90) > 1e-9 {
		t.Fatalf("richest patron should hold 90, got %v", got)
	}
	if got := m.pop[8].Wealth; math.Abs(got-81) > 1e-9 {
		t.Fatalf("second patron should hold 81, got %v", got)
	}
}

func TestUBIPureTransferWithoutExternalFunding(t *testing.T) {
	m := newTestMarket(30, 5)
	for i, a := range m.pop {
		a.Wealth = 1 + float64(i*i)
	}
	p, _ := New(UBI, DefaultParams())
	before := m.total()
	poorest := m.pop[0].Wealth
	p.Redistribute(m)
	conserved(t, before, m.total())
	if m.pop[0].Wealth <= poorest {
		t.Fatalf("poorest agent did not receive income: %v -> %v", poorest, m.pop[0].Wealth)
	}
	floorHeld(t, m.pop)
}

func TestUBIExternalFundingCreatesWealth(t *testing.T) {
	m := newTestMarket(10, 6) // everyone equal: nothing to tax
	params := DefaultParams()
	params.UBI.ExternalFunding = true
	params.UBI.SurvivalAmount = 2
	p, _ := New(UBI, params)
	before := m.total()
	p.Redistribute(m)
	if got := m.total(); math.Abs(got-(before+20)) > 1e-9 {
		t.Fatalf("expected 20 injected, total %v -> %v", before, got)
	}
}

func TestCapitalismInnovationIsOneWay(t *testing.T) {
	m := newTestMarket(40, 7)
	p, _ := New(Capitalism, DefaultParams())
	cp := p.(*CapitalismPolicy)

	started := map[agents.AgentID]bool{}
	for step := 0; step < 30; step++ {
		runStep(p, m)
		if cp.StartupCapital() < DefaultCapitalismParams().MinStartupCapital {
			t.Fatalf("startup capital %v below floor", cp.StartupCapital())
		}
		for _, a := range m.pop {
			if started[a.ID] && !a.Innovating {
				t.Fatalf("agent %d stopped innovating", a.ID)
			}
			if a.Innovating {
				started[a.ID] = true
				if a.Growth < a.BaseGrowth {
					t.Fatalf("agent %d growth fell below base after boost", a.ID)
				}
			}
		}
		floorHeld(t, m.pop)
	}
	if len(started) == 0 {
		t.Fatalf("expected some agents to start innovating")
	}
}

func TestStartupCapitalLevels(t *testing.T) {
	w := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	params := DefaultCapitalismParams()
	for level, want := range map[int]float64{1: 2, 2: 6, 3: 8} {
		params.StartupLevel = level
		if got := startupCapital(w, params); got != want {
			t.Fatalf("level %d: got %v, want %v", level, got, want)
		}
	}
	params.StartupLevel = 1
	if got := startupCapital([]float64{1, 1.1}, params); got != params.MinStartupCapital {
		t.Fatalf("expected floor %v, got %v", params.MinStartupCapital, got)
	}
}
