package economy

import (
	"github.com/talgya/inequality-sim/internal/agents"
	"github.com/talgya/inequality-sim/internal/metrics"
)

// UBIPolicy pays every agent a basic income after the exchange. The income is
// funded by taxing the excess of agents above mean·(1+RedistributionPct). With
// ExternalFunding any shortfall is injected from outside the economy; without
// it the payout is whatever the tax raised, split evenly.
type UBIPolicy struct {
	noop
	params UBIParams
}

func (*UBIPolicy) Name() Name { return UBI }

func (*UBIPolicy) Execute(a *agents.Agent, m Market) {
	trade(a, m)
}

func (p *UBIPolicy) Redistribute(m Market) {
	pop := m.Agents()
	if len(pop) == 0 {
		return
	}
	n := float64(len(pop))
	need := n * p.params.SurvivalAmount

	threshold := metrics.Mean(agents.Wealths(pop)) * (1 + p.params.RedistributionPct)
	levies := make([]float64, len(pop))
	capacity := 0.0
	for i, a := range pop {
		if a.Wealth > threshold {
			levies[i] = (a.Wealth - threshold) * p.params.RedistributionPct
			capacity += levies[i]
		}
	}

	// Raise no more than the payout needs.
	scale := 1.0
	if capacity > need {
		scale = need / capacity
	}
	pool := 0.0
	for i, a := range pop {
		if levies[i] > 0 {
			levy := levies[i] * scale
			a.Wealth -= levy
			pool += levy
		}
	}

	share := pool / n
	if p.params.ExternalFunding {
		share = p.params.SurvivalAmount
	}
	for _, a := range pop {
		a.Wealth += share
	}
}
