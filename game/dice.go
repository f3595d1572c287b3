package game

import "golang.org/x/exp/rand"

// Roller is the single source of randomness for dice and deck shuffles.
type Roller interface {
	// Roll returns a value in [1, sides].
	Roll(sides int) int
	Shuffle(n int, swap func(i, j int))
}

type randomRoller struct {
	r *rand.Rand
}

// NewRandomRoller returns a Roller whose whole sequence is fixed by seed.
func NewRandomRoller(seed uint64) Roller {
	return &randomRoller{r: rand.New(rand.NewSource(seed))}
}

func (rr *randomRoller) Roll(sides int) int {
	if sides < 1 {
		return 0
	}
	return rr.r.Intn(sides) + 1
}

func (rr *randomRoller) Shuffle(n int, swap func(i, j int)) {
	rr.r.Shuffle(n, swap)
}

// SequenceRoller replays fixed rolls in a loop and never shuffles. Rolls
// larger than the die are wrapped into range.
type SequenceRoller struct {
	rolls []int
	next  int
}

func NewSequenceRoller(rolls ...int) *SequenceRoller {
	if len(rolls) == 0 {
		rolls = []int{1}
	}
	return &SequenceRoller{rolls: rolls}
}

func (s *SequenceRoller) Roll(sides int) int {
	if sides < 1 {
		return 0
	}
	v := s.rolls[s.next%len(s.rolls)]
	s.next++
	if v < 1 {
		v = 1
	}
	return (v-1)%sides + 1
}

func (s *SequenceRoller) Shuffle(n int, swap func(i, j int)) {}
