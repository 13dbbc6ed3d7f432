package economy

import (
	"github.com/talgya/inequality-sim/internal/agents"
	"github.com/talgya/inequality-sim/internal/metrics"
)

// CapitalismPolicy lets agents who accumulate the startup capital become
// innovators: their growth rate is boosted by their innovation factor for
// good, they fund the venture once, and from then on earn a return on wealth.
// The return is the one place this policy creates wealth.
type CapitalismPolicy struct {
	noop
	params         CapitalismParams
	startupCapital float64
}

func (*CapitalismPolicy) Name() Name { return Capitalism }

// StartupCapital returns the threshold computed for the current step.
func (p *CapitalismPolicy) StartupCapital() float64 {
	return p.startupCapital
}

// Prepare recomputes the startup capital from the current wealth distribution.
func (p *CapitalismPolicy) Prepare(m Market) {
	p.startupCapital = startupCapital(agents.Wealths(m.Agents()), p.params)
}

func startupCapital(wealths []float64, params CapitalismParams) float64 {
	bins := metrics.SturgesBinMaxima(wealths)
	capital := 0.0
	if len(bins) > 0 {
		switch params.StartupLevel {
		case 1:
			capital = bins[0]
		case 2:
			capital = bins[len(bins)/2]
		default:
			capital = bins[len(bins)-1]
		}
	}
	if capital < params.MinStartupCapital {
		capital = params.MinStartupCapital
	}
	return capital
}

func (p *CapitalismPolicy) Execute(a *agents.Agent, m Market) {
	trade(a, m)

	if !a.Innovating && a.Wealth > p.startupCapital {
		a.Innovating = true
		a.Growth *= a.Innovation
		if a.Growth > p.params.GrowthCeiling {
			a.Growth = p.params.GrowthCeiling
		}

		// Funding the venture pays suppliers: a transfer, not a loss.
		pop := m.Agents()
		if j := m.Rand().PickOther(len(pop), m.IndexOf(a.ID)); j >= 0 {
			agents.Transfer(a, pop[j], p.params.FundingShare*p.startupCapital)
		}
	}

	if a.Innovating {
		a.Wealth += a.Wealth * a.Growth * p.params.ReturnRate
	}
}
