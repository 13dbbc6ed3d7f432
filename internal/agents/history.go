// Bracket history: the bounded window of recent classes that mobility is computed from.
package agents

// HistoryCapacity is the number of brackets an agent remembers.
const HistoryCapacity = 20

// BracketHistory is a fixed-capacity ring buffer of brackets. When full, the
// oldest entry is evicted. The zero value is an empty history.
//
// The running change count keeps Mobility O(1): it is adjusted on every push
// and every eviction instead of rescanning the window.
type BracketHistory struct {
	buf     [HistoryCapacity]Bracket
	start   int
	n       int
	changes int
}

// Len returns the number of recorded brackets.
func (h *BracketHistory) Len() int {
	return h.n
}

// at returns the i-th oldest entry.
func (h *BracketHistory) at(i int) Bracket {
	return h.buf[(h.start+i)%HistoryCapacity]
}

// Push appends b, evicting the oldest entry when full.
func (h *BracketHistory) Push(b Bracket) {
	if h.n == HistoryCapacity {
		// Evicting the oldest drops the transition between it and its successor.
		if h.at(0) != h.at(1) {
			h.changes--
		}
		h.start = (h.start + 1) % HistoryCapacity
		h.n--
	}
	if h.n > 0 && h.at(h.n-1) != b {
		h.changes++
	}
	h.buf[(h.start+h.n)%HistoryCapacity] = b
	h.n++
}

// Changes returns the number of class changes between consecutive entries.
func (h *BracketHistory) Changes() int {
	return h.changes
}

// Mobility returns the fraction of observed transitions that changed class:
// 0 means the agent never moved, 1 means it moved every step. Fewer than two
// entries have no transitions and score 0.
func (h *BracketHistory) Mobility() float64 {
	if h.n < 2 {
		return 0
	}
	return float64(h.changes) / float64(h.n-1)
}

// Slice returns the history oldest first.
func (h *BracketHistory) Slice() []Bracket {
	out := make([]Bracket, h.n)
	for i := 0; i < h.n; i++ {
		out[i] = h.at(i)
	}
	return out
}

// Last returns the most recent bracket and whether there is one.
func (h *BracketHistory) Last() (Bracket, bool) {
	if h.n == 0 {
		return 0, false
	}
	return h.at(h.n - 1), true
}
