package economy

import (
	"sort"

	"github.com/talgya/inequality-sim/internal/agents"
)

// PatronPolicy has the wealthiest agents sponsor clients. After the exchange,
// each patron picks a client from a random slice of the non-patron population
// (its network) and hands over a share of its wealth.
type PatronPolicy struct {
	noop
	params PatronParams
}

func (*PatronPolicy) Name() Name { return Patron }

func (*PatronPolicy) Execute(a *agents.Agent, m Market) {
	trade(a, m)
}

func (p *PatronPolicy) Redistribute(m Market) {
	pop := m.Agents()
	if len(pop) < 2 {
		return
	}

	ranked := make([]*agents.Agent, len(pop))
	copy(ranked, pop)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Wealth != ranked[j].Wealth {
			return ranked[i].Wealth > ranked[j].Wealth
		}
		return ranked[i].ID < ranked[j].ID
	})

	top := int(float64(len(pop)) * p.params.PatronFraction)
	if top < 1 {
		top = 1
	}
	if top >= len(pop) {
		top = len(pop) - 1
	}
	patrons, pool := ranked[:top], ranked[top:]

	network := int(float64(len(pool)) * p.params.NetworkShare)
	if network < 1 {
		network = 1
	}

	rng := m.Rand()
	for _, patron := range patrons {
		sample := rng.Sample(len(pool), network)
		client := pool[sample[rng.Intn(len(sample))]]
		agents.Transfer(patron, client, patron.Wealth*p.params.DonationShare)
	}
}
