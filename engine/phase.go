package engine

// Phase is a state of the round state machine.
type Phase int

const (
	Placement  Phase = iota // players place workers in seat order
	Resolution              // occupied spaces resolve in declared order
	Feeding                 // tribes eat, then the round ends
	Terminal                // final scores computed, state frozen
)

var phaseNames = map[Phase]string{
	Placement:  "placement",
	Resolution: "resolution",
	Feeding:    "feeding",
	Terminal:   "terminal",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// next lists the legal transitions out of each phase.
var next = map[Phase][]Phase{
	Placement:  {Resolution},
	Resolution: {Feeding},
	Feeding:    {Placement, Terminal},
}

func canTransition(from, to Phase) bool {
	for _, p := range next[from] {
		if p == to {
			return true
		}
	}
	return false
}

// Transition is one recorded phase change.
type Transition struct {
	Round int   `json:"round"`
	From  Phase `json:"from"`
	To    Phase `json:"to"`
}
