// Package economy provides the economic policies that move wealth between agents.
// Each policy is resolved once when a simulation is initialized and then invoked
// per agent and per step by the engine.
package economy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/talgya/inequality-sim/internal/agents"
	"github.com/talgya/inequality-sim/internal/entropy"
)

// Name identifies a policy.
type Name string

const (
	Econophysics Name = "econophysics"
	Capitalism   Name = "capitalism"
	Fascism      Name = "fascism"
	Communism    Name = "communism"
	Patron       Name = "patron"
	UBI          Name = "ubi"
)

// ErrUnknownPolicy is returned for a policy name that is not recognized.
var ErrUnknownPolicy = errors.New("unknown policy")

// Names returns every policy in display order.
func Names() []Name {
	return []Name{Econophysics, Capitalism, Fascism, Communism, Patron, UBI}
}

// Dashboard labels and long forms that map onto the canonical names.
var aliases = map[string]Name{
	"wealth_exchange":           Econophysics,
	"wealth exchange":           Econophysics,
	"innovation":                Capitalism,
	"powerful leaders":          Fascism,
	"equal wealth distribution": Communism,
	"patron_system":             Patron,
	"patron system":             Patron,
	"universal_basic_income":    UBI,
	"universal basic income":    UBI,
}

var summaries = map[Name]string{
	Econophysics: "random pairwise exchange: survival cost plus a growth-priced purchase",
	Capitalism:   "exchange plus innovators who pay a startup cost and earn returns",
	Fascism:      "a fixed party elite taxes everyone else",
	Communism:    "exchange, then every agent is levelled to the mean",
	Patron:       "the wealthiest donate to clients drawn from their network",
	UBI:          "excess wealth above the mean is taxed and paid out evenly",
}

// Summary returns a one-line description of n.
func Summary(n Name) string {
	return summaries[n]
}

// Aliases returns the alternate spellings ParseName accepts for n, sorted.
func Aliases(n Name) []string {
	var out []string
	for alias, target := range aliases {
		if target == n {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// ParseName resolves s to a policy name. Matching is case-insensitive and
// accepts the dashboard aliases. An empty string selects Econophysics.
func ParseName(s string) (Name, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return Econophysics, nil
	}
	for _, n := range Names() {
		if key == string(n) {
			return n, nil
		}
	}
	if n, ok := aliases[key]; ok {
		return n, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Market is the view of the simulation a policy acts on. All values are
// fixed for the duration of a step except agent wealth.
type Market interface {
	// Agents returns the population ordered by agent id.
	Agents() []*agents.Agent
	// IndexOf returns the position of id in Agents(), or -1.
	IndexOf(id agents.AgentID) int
	// SurvivalCost is this step's cost of living.
	SurvivalCost() float64
	// Rand is the simulation's shared random source.
	Rand() *entropy.Source
}

// Policy is one economic regime. The engine calls Setup once after the
// population is built, then each step: Prepare, Execute for every agent in
// shuffled order, and Redistribute.
type Policy interface {
	Name() Name
	Setup(m Market)
	Prepare(m Market)
	Execute(a *agents.Agent, m Market)
	Redistribute(m Market)
}

// New resolves name into a ready policy using params. Only the selected
// policy's parameters are validated.
func New(name Name, params Params) (Policy, error) {
	switch name {
	case Econophysics:
		return &Exchange{}, nil
	case Capitalism:
		if err := params.Capitalism.Validate(); err != nil {
			return nil, err
		}
		return &CapitalismPolicy{params: params.Capitalism}, nil
	case Fascism:
		if err := params.Fascism.Validate(); err != nil {
			return nil, err
		}
		return &FascismPolicy{params: params.Fascism}, nil
	case Communism:
		return &CommunismPolicy{}, nil
	case Patron:
		if err := params.Patron.Validate(); err != nil {
			return nil, err
		}
		return &PatronPolicy{params: params.Patron}, nil
	case UBI:
		if err := params.UBI.Validate(); err != nil {
			return nil, err
		}
		return &UBIPolicy{params: params.UBI}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, string(name))
	}
}

// noop supplies the hooks a policy does not need.
type noop struct{}

func (noop) Setup(Market)        {}
func (noop) Prepare(Market)      {}
func (noop) Redistribute(Market) {}
