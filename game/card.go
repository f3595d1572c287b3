package game

// CivilizationCard is worth Points at the end of the game. It has no cost.
type CivilizationCard struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Building is bought with resources and is worth Points at the end of the game.
type Building struct {
	Name   string    `json:"name"`
	Cost   Resources `json:"cost"`
	Points int       `json:"points"`
}

// StandardCivilizationCards returns the unshuffled civilization deck.
func StandardCivilizationCards() []CivilizationCard {
	return []CivilizationCard{
		{Name: "Agriculture", Points: 14},
		{Name: "Art", Points: 12},
		{Name: "Medicine", Points: 10},
		{Name: "Pottery", Points: 8},
		{Name: "Music", Points: 15},
		{Name: "Writing", Points: 13},
		{Name: "Weaving", Points: 9},
		{Name: "Transport", Points: 11},
	}
}

// StandardBuildings returns the unshuffled building tiles.
func StandardBuildings() []Building {
	return []Building{
		{Name: "Simple Hut", Cost: NewCost(map[ResourceType]int{Wood: 3}), Points: 6},
		{Name: "Field", Cost: NewCost(map[ResourceType]int{Wood: 2, Brick: 2}), Points: 8},
		{Name: "Shelter", Cost: NewCost(map[ResourceType]int{Stone: 3}), Points: 10},
		{Name: "House", Cost: NewCost(map[ResourceType]int{Wood: 2, Stone: 2}), Points: 11},
		{Name: "Lodge", Cost: NewCost(map[ResourceType]int{Brick: 3, Stone: 2}), Points: 14},
		{Name: "Palace", Cost: NewCost(map[ResourceType]int{Stone: 4, Gold: 2}), Points: 18},
	}
}

// Offer is a face-up window drawn from a face-down deck. Taking a slot
// refills the window from the top of the deck while cards remain.
type Offer[T any] struct {
	Window []T
	Deck   []T
	size   int
}

// NewOffer shuffles a copy of cards with roller and deals the window.
func NewOffer[T any](cards []T, size int, roller Roller) *Offer[T] {
	deck := make([]T, len(cards))
	copy(deck, cards)
	roller.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	o := &Offer[T]{Deck: deck, size: size}
	o.refill()
	return o
}

// Peek returns the card in slot without removing it.
func (o *Offer[T]) Peek(slot int) (T, bool) {
	var zero T
	if slot < 0 || slot >= len(o.Window) {
		return zero, false
	}
	return o.Window[slot], true
}

// Take removes the card in slot and refills the window.
func (o *Offer[T]) Take(slot int) (T, bool) {
	card, ok := o.Peek(slot)
	if !ok {
		return card, false
	}
	o.Window = append(o.Window[:slot], o.Window[slot+1:]...)
	o.refill()
	return card, true
}

func (o *Offer[T]) refill() {
	for len(o.Window) < o.size && len(o.Deck) > 0 {
		o.Window = append(o.Window, o.Deck[0])
		o.Deck = o.Deck[1:]
	}
}

// Visible returns a copy of the window.
func (o *Offer[T]) Visible() []T {
	out := make([]T, len(o.Window))
	copy(out, o.Window)
	return out
}

func (o *Offer[T]) DeckLen() int {
	return len(o.Deck)
}
