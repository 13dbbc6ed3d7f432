// Econophysics wealth exchange: the standard per-agent trade every policy builds on.
package economy

import "github.com/talgya/inequality-sim/internal/agents"

// Exchange is the econophysics policy. Each step an agent pays the survival
// cost to one random other agent, then buys a "thrive" good from a second
// random other agent priced at that seller's growth rate times the buyer's wealth.
type Exchange struct {
	noop
}

func (*Exchange) Name() Name { return Econophysics }

func (*Exchange) Execute(a *agents.Agent, m Market) {
	trade(a, m)
}

// trade runs the survival and thrive payments for a. Both go through
// agents.Transfer, so a pays what it can above the floor and never more.
func trade(a *agents.Agent, m Market) {
	pop := m.Agents()
	rng := m.Rand()
	self := m.IndexOf(a.ID)

	// Survival: bread and shelter, due whether or not a can afford it.
	if j := rng.PickOther(len(pop), self); j >= 0 {
		agents.Transfer(a, pop[j], m.SurvivalCost())
	}

	// Thrive: discretionary, skipped when a cannot cover it.
	if j := rng.PickOther(len(pop), self); j >= 0 {
		seller := pop[j]
		cost := seller.Growth * a.Wealth
		if a.Wealth > cost {
			agents.Transfer(a, seller, cost)
		}
	}
}
