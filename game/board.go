package game

// Occupant is one placement group on an action space. Groups keep placement
// order, which is also their resolution order.
type Occupant struct {
	Player int `json:"player"`
	Count  int `json:"count"`
}

// Board holds the action-space occupancy and both market offers.
type Board struct {
	Rules         Rules
	Occupants     [NumActionSpaces][]Occupant
	Civilizations *Offer[CivilizationCard]
	Buildings     *Offer[Building]
}

// NewBoard builds an empty board and deals both offers with roller.
func NewBoard(rules Rules, roller Roller) *Board {
	return &Board{
		Rules:         rules,
		Civilizations: NewOffer(StandardCivilizationCards(), rules.OfferSize, roller),
		Buildings:     NewOffer(StandardBuildings(), rules.OfferSize, roller),
	}
}

// Occupancy is the number of workers on space.
func (b *Board) Occupancy(space ActionSpace) int {
	n := 0
	for _, o := range b.Occupants[space] {
		n += o.Count
	}
	return n
}

func (b *Board) Capacity(space ActionSpace) int {
	return b.Rules.Capacity(space)
}

// IsOpen reports whether at least one more worker fits on space.
func (b *Board) IsOpen(space ActionSpace) bool {
	return b.Occupancy(space) < b.Capacity(space)
}

// CanPlace reports whether count more workers fit on space.
func (b *Board) CanPlace(space ActionSpace, count int) bool {
	return count > 0 && b.Occupancy(space)+count <= b.Capacity(space)
}

// WorkersOf counts the workers player has on space.
func (b *Board) WorkersOf(space ActionSpace, player int) int {
	n := 0
	for _, o := range b.Occupants[space] {
		if o.Player == player {
			n += o.Count
		}
	}
	return n
}

func (b *Board) place(space ActionSpace, player, count int) {
	b.Occupants[space] = append(b.Occupants[space], Occupant{Player: player, Count: count})
}

func (b *Board) clear() {
	for i := range b.Occupants {
		b.Occupants[i] = nil
	}
}
