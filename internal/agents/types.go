// Package agents provides the economic actor model: wealth, wealth bracket,
// bounded bracket history and the mobility score derived from it.
package agents

// AgentID is a unique identifier for an agent.
type AgentID uint64

// Bracket is a coarse wealth class.
type Bracket uint8

const (
	Lower Bracket = iota
	Middle
	Upper
)

// NumBrackets is the number of wealth classes.
const NumBrackets = 3

var bracketNames = [NumBrackets]string{"Lower", "Middle", "Upper"}

func (b Bracket) String() string {
	if int(b) < len(bracketNames) {
		return bracketNames[b]
	}
	return "Unknown"
}

// MarshalText renders the bracket by name so JSON consumers see "Lower", not 0.
func (b Bracket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

const (
	// MinWealth is the floor no transfer may push an agent below.
	MinWealth = 1.0

	// StartingWealth is every agent's wealth at initialization.
	StartingWealth = 10.0
)

// Thresholds are the global bracket cutoffs for one step.
type Thresholds struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Classify maps a wealth value to its bracket.
func (t Thresholds) Classify(wealth float64) Bracket {
	switch {
	case wealth < t.Lower:
		return Lower
	case wealth >= t.Upper:
		return Upper
	default:
		return Middle
	}
}

// Agent is one economic actor in the simulation.
type Agent struct {
	ID AgentID `json:"id"`

	// Economic
	Wealth     float64 `json:"wealth"`
	Growth     float64 `json:"growth"`      // W: idiosyncratic rate, sets the thrive price others pay this agent
	BaseGrowth float64 `json:"base_growth"` // W at spawn
	Innovation float64 `json:"innovation"`  // I: drawn once, multiplies W when innovating

	// Class
	Bracket  Bracket        `json:"bracket"`
	Previous Bracket        `json:"previous_bracket"`
	History  BracketHistory `json:"-"`
	Mobility float64        `json:"mobility"` // 0.0–1.0

	// Policy flags
	PartyElite bool `json:"party_elite"` // Fascism only, fixed at initialization
	Innovating bool `json:"is_innovating"` // Capitalism only, one-way
}

// Step runs one tick for the agent: snapshot the bracket, run the policy body,
// reclassify against th, record the bracket and recompute mobility.
func (a *Agent) Step(th Thresholds, body func(*Agent)) {
	a.Previous = a.Bracket
	if body != nil {
		body(a)
	}
	a.Bracket = th.Classify(a.Wealth)
	a.History.Push(a.Bracket)
	a.Mobility = a.History.Mobility()
}

// Wealths returns the wealth of each agent in slice order.
func Wealths(pop []*Agent) []float64 {
	out := make([]float64, len(pop))
	for i, a := range pop {
		out[i] = a.Wealth
	}
	return out
}

// Brackets returns the current bracket of each agent in slice order.
func Brackets(pop []*Agent) []Bracket {
	out := make([]Bracket, len(pop))
	for i, a := range pop {
		out[i] = a.Bracket
	}
	return out
}

// PreviousBrackets returns each agent's bracket as of the start of its last step.
func PreviousBrackets(pop []*Agent) []Bracket {
	out := make([]Bracket, len(pop))
	for i, a := range pop {
		out[i] = a.Previous
	}
	return out
}
