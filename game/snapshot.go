package game

import "fmt"

// SpaceView is the read-only state of one action space.
type SpaceView struct {
	Space     ActionSpace `json:"space"`
	Class     string      `json:"class"`
	Capacity  int         `json:"capacity"`
	DieSize   int         `json:"die_size,omitempty"`
	Occupancy int         `json:"occupancy"`
	Occupants []Occupant  `json:"occupants"`
}

// Remaining is the number of workers that still fit.
func (v SpaceView) Remaining() int {
	return max(0, v.Capacity-v.Occupancy)
}

// PlayerView is the read-only state of one player.
type PlayerView struct {
	Name           string             `json:"name"`
	Workers        int                `json:"workers"`
	Placed         int                `json:"placed"`
	Free           int                `json:"free"`
	Resources      Resources          `json:"resources"`
	Tools          []int              `json:"tools"`
	FoodProduction int                `json:"food_production"`
	Score          int                `json:"score"`
	Cards          []CivilizationCard `json:"cards"`
	Buildings      []Building         `json:"buildings"`
}

// Snapshot is a deep copy of the game handed to the AI and to every
// renderer. Mutating it never affects the game.
type Snapshot struct {
	GameID            string             `json:"game_id"`
	Round             int                `json:"round"`
	MaxRounds         int                `json:"max_rounds"`
	Phase             string             `json:"phase"`
	Terminal          bool               `json:"terminal"`
	Spaces            []SpaceView        `json:"spaces"`
	Players           []PlayerView       `json:"players"`
	CivilizationOffer []CivilizationCard `json:"civilization_offer"`
	BuildingOffer     []Building         `json:"building_offer"`
	CivilizationDeck  int                `json:"civilization_deck"`
	BuildingDeck      int                `json:"building_deck"`
	Scores            []ScoreBreakdown   `json:"scores"`
	Winner            int                `json:"winner"`
	Rules             Rules              `json:"rules"`
}

// Snapshot copies the current state. Phase is left for the engine to fill.
// Scores hold the final-score projection of every player; Winner is set once
// the game is over and is -1 before that.
func (gs *GameState) Snapshot() Snapshot {
	s := Snapshot{
		GameID:            gs.ID,
		Round:             gs.Round,
		MaxRounds:         gs.MaxRounds,
		Terminal:          gs.IsOver(),
		Spaces:            make([]SpaceView, NumActionSpaces),
		Players:           make([]PlayerView, len(gs.Players)),
		CivilizationOffer: gs.Board.Civilizations.Visible(),
		BuildingOffer:     gs.Board.Buildings.Visible(),
		CivilizationDeck:  gs.Board.Civilizations.DeckLen(),
		BuildingDeck:      gs.Board.Buildings.DeckLen(),
		Scores:            gs.FinalScores(),
		Winner:            -1,
		Rules:             gs.Rules,
	}
	for i, space := range ActionSpaces {
		s.Spaces[i] = SpaceView{
			Space:     space,
			Class:     space.Class().String(),
			Capacity:  gs.Board.Capacity(space),
			DieSize:   gs.Rules.DieSize(space),
			Occupancy: gs.Board.Occupancy(space),
			Occupants: append([]Occupant{}, gs.Board.Occupants[space]...),
		}
	}
	for i, p := range gs.Players {
		c := p.Copy()
		s.Players[i] = PlayerView{
			Name:           c.Name,
			Workers:        c.Workers,
			Placed:         c.Placed,
			Free:           c.Free(),
			Resources:      c.Resources,
			Tools:          c.Tools,
			FoodProduction: c.FoodProduction,
			Score:          c.Score,
			Cards:          c.Cards,
			Buildings:      c.Buildings,
		}
	}
	if s.Terminal {
		s.Winner = winnerOf(s.Scores)
	}
	return s
}

// Space returns the view of one action space, or a zero view when the
// snapshot does not hold it.
func (s Snapshot) Space(space ActionSpace) SpaceView {
	if space < 0 || int(space) >= len(s.Spaces) {
		return SpaceView{Space: space}
	}
	return s.Spaces[space]
}

// Player returns the view of one seat, or a zero view for an unknown seat.
func (s Snapshot) Player(index int) PlayerView {
	if index < 0 || index >= len(s.Players) {
		return PlayerView{}
	}
	return s.Players[index]
}

// Validate checks that a snapshot received from outside has the shape
// GameState.Snapshot produces: every action space in declared order,
// occupants and winner pointing at real seats.
func (s Snapshot) Validate() error {
	if len(s.Spaces) != NumActionSpaces {
		return fmt.Errorf("%w: %d action spaces, want %d", ErrInvalidSnapshot, len(s.Spaces), NumActionSpaces)
	}
	for i, v := range s.Spaces {
		if v.Space != ActionSpaces[i] {
			return fmt.Errorf("%w: space %d is %s, want %s", ErrInvalidSnapshot, i, v.Space, ActionSpaces[i])
		}
		for _, o := range v.Occupants {
			if o.Player < 0 || o.Player >= len(s.Players) {
				return fmt.Errorf("%w: %s occupied by unknown player %d", ErrInvalidSnapshot, v.Space, o.Player)
			}
			if o.Count < 1 {
				return fmt.Errorf("%w: %s holds a group of %d workers", ErrInvalidSnapshot, v.Space, o.Count)
			}
		}
	}
	if s.Winner < -1 || s.Winner >= len(s.Players) {
		return fmt.Errorf("%w: winner %d with %d players", ErrInvalidSnapshot, s.Winner, len(s.Players))
	}
	if len(s.Scores) != 0 && len(s.Scores) != len(s.Players) {
		return fmt.Errorf("%w: %d scores for %d players", ErrInvalidSnapshot, len(s.Scores), len(s.Players))
	}
	return nil
}
