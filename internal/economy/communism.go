package economy

import (
	"github.com/talgya/inequality-sim/internal/agents"
	"github.com/talgya/inequality-sim/internal/metrics"
)

// CommunismPolicy lets agents trade as usual, then levels every agent to the
// population mean at the end of the step.
type CommunismPolicy struct {
	noop
}

func (*CommunismPolicy) Name() Name { return Communism }

func (*CommunismPolicy) Execute(a *agents.Agent, m Market) {
	trade(a, m)
}

func (*CommunismPolicy) Redistribute(m Market) {
	pop := m.Agents()
	if len(pop) == 0 {
		return
	}
	each := metrics.Mean(agents.Wealths(pop))
	for _, a := range pop {
		a.Wealth = each
	}
}
