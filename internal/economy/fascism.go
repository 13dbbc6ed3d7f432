package economy

import "github.com/talgya/inequality-sim/internal/agents"

// FascismPolicy splits the population into a fixed party elite and everyone
// else. Elites sit out the exchange; everyone else trades and then pays the
// party tax to a random elite.
type FascismPolicy struct {
	noop
	params FascismParams
	elites []*agents.Agent
}

func (*FascismPolicy) Name() Name { return Fascism }

// Setup promotes the elite. Membership never changes afterwards.
func (p *FascismPolicy) Setup(m Market) {
	agents.PromoteElite(m.Agents(), p.params.EliteFraction)
	p.elites = p.elites[:0]
	for _, a := range m.Agents() {
		if a.PartyElite {
			p.elites = append(p.elites, a)
		}
	}
}

// Elites returns the party elite in id order.
func (p *FascismPolicy) Elites() []*agents.Agent {
	return p.elites
}

func (p *FascismPolicy) Execute(a *agents.Agent, m Market) {
	if a.PartyElite {
		return
	}
	trade(a, m)

	if len(p.elites) == 0 {
		return
	}
	elite := p.elites[m.Rand().Intn(len(p.elites))]
	agents.Transfer(a, elite, a.Wealth*p.params.TaxRate)
}
