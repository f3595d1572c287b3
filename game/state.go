package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Setup holds the parameters of a new game.
type Setup struct {
	ID              string
	Players         int
	PlayerNames     []string
	MaxRounds       int
	StartingWorkers int
	Rules           Rules
}

// DefaultSetup is two players, ten rounds and five workers each.
func DefaultSetup() Setup {
	return Setup{
		Players:         2,
		MaxRounds:       10,
		StartingWorkers: 5,
		Rules:           NewStandardRules(),
	}
}

// GameState owns the board and every player. The engine is its only writer.
type GameState struct {
	ID        string
	Round     int
	MaxRounds int
	Players   []*Player
	Board     *Board
	Rules     Rules
	Frozen    bool
	roller    Roller
}

// NewGameState builds the board, shuffles and deals both decks and seats
// players with the starting workers and no resources.
func NewGameState(setup Setup, roller Roller) (*GameState, error) {
	if setup.Players < 1 {
		return nil, fmt.Errorf("%w: need at least one player, got %d", ErrConfiguration, setup.Players)
	}
	if setup.MaxRounds < 1 {
		return nil, fmt.Errorf("%w: need at least one round, got %d", ErrConfiguration, setup.MaxRounds)
	}
	if setup.Rules.OfferSize == 0 {
		setup.Rules = NewStandardRules()
	}
	if err := setup.Rules.Validate(); err != nil {
		return nil, err
	}
	if setup.StartingWorkers < 1 || setup.StartingWorkers > setup.Rules.MaxWorkers {
		return nil, fmt.Errorf("%w: starting workers must be in [1, %d], got %d",
			ErrConfiguration, setup.Rules.MaxWorkers, setup.StartingWorkers)
	}
	if len(setup.PlayerNames) > 0 && len(setup.PlayerNames) != setup.Players {
		return nil, fmt.Errorf("%w: %d names for %d players", ErrConfiguration, len(setup.PlayerNames), setup.Players)
	}
	if roller == nil {
		return nil, fmt.Errorf("%w: no random source", ErrConfiguration)
	}
	if setup.ID == "" {
		setup.ID = uuid.NewString()
	}

	gs := &GameState{
		ID:        setup.ID,
		Round:     1,
		MaxRounds: setup.MaxRounds,
		Rules:     setup.Rules,
		Board:     NewBoard(setup.Rules, roller),
		roller:    roller,
	}
	for i := 0; i < setup.Players; i++ {
		name := fmt.Sprintf("Player %d", i+1)
		if len(setup.PlayerNames) > 0 {
			name = setup.PlayerNames[i]
		}
		gs.Players = append(gs.Players, NewPlayer(name, setup.StartingWorkers))
	}
	return gs, nil
}

func (gs *GameState) player(index int) (*Player, error) {
	if index < 0 || index >= len(gs.Players) {
		return nil, fmt.Errorf("%w: no player %d", ErrInvalidPlacement, index)
	}
	return gs.Players[index], nil
}

// PlaceWorker puts count free workers of a player on space.
func (gs *GameState) PlaceWorker(playerIndex int, space ActionSpace, count int) error {
	if gs.Frozen {
		return ErrFrozen
	}
	p, err := gs.player(playerIndex)
	if err != nil {
		return err
	}
	if !space.Valid() {
		return fmt.Errorf("%w: unknown action space %d", ErrInvalidPlacement, int(space))
	}
	if count < 1 {
		return fmt.Errorf("%w: %s cannot place %d workers", ErrInvalidPlacement, p.Name, count)
	}
	if p.Free() < count {
		return fmt.Errorf("%w: %s has %d free workers, wants %d on %s",
			ErrInvalidPlacement, p.Name, p.Free(), count, space)
	}
	if !gs.Board.CanPlace(space, count) {
		return fmt.Errorf("%w: %s holds %d/%d workers, cannot take %d more",
			ErrInvalidPlacement, space, gs.Board.Occupancy(space), gs.Board.Capacity(space), count)
	}
	gs.Board.place(space, playerIndex, count)
	p.Placed += count
	return nil
}

// GatherResult is the outcome of one occupant group on a gathering space.
type GatherResult struct {
	Player    int          `json:"player"`
	Space     ActionSpace  `json:"space"`
	Resource  ResourceType `json:"resource"`
	Workers   int          `json:"workers"`
	Rolls     []int        `json:"rolls"`
	ToolBonus int          `json:"tool_bonus"`
	Yield     int          `json:"yield"`
}

// ResolveGathering rolls one die of the space's size per worker for every
// occupant group in placement order. The group's owner spends their best
// tool on the roll when they have one. Yield is floor(sum/dieSize), at
// least 1, credited to the space's resource.
func (gs *GameState) ResolveGathering(space ActionSpace) ([]GatherResult, error) {
	if gs.Frozen {
		return nil, ErrFrozen
	}
	if !space.Valid() || space.Class() != Gathering {
		return nil, fmt.Errorf("%s is not a gathering space", space)
	}
	rule := gs.Rules.Spaces[space]
	var results []GatherResult
	for _, o := range gs.Board.Occupants[space] {
		p := gs.Players[o.Player]
		res := GatherResult{
			Player:   o.Player,
			Space:    space,
			Resource: rule.Yield,
			Workers:  o.Count,
			Rolls:    make([]int, o.Count),
		}
		sum := 0
		for i := range res.Rolls {
			res.Rolls[i] = gs.roller.Roll(rule.DieSize)
			sum += res.Rolls[i]
		}
		res.ToolBonus = p.UseBestTool()
		res.Yield = max(1, (sum+res.ToolBonus)/rule.DieSize)
		p.Resources.Add(rule.Yield, res.Yield)
		results = append(results, res)
	}
	return results, nil
}

// SpecialResult is the outcome of one occupant group on a special space.
type SpecialResult struct {
	Player  int         `json:"player"`
	Space   ActionSpace `json:"space"`
	Workers int         `json:"workers"`
	Amount  int         `json:"amount"`
}

type specialEffect func(gs *GameState, p *Player, o Occupant) int

var specialEffects = map[ActionSpace]specialEffect{
	Farm: func(gs *GameState, p *Player, o Occupant) int {
		p.FoodProduction += gs.Rules.FarmYield
		return gs.Rules.FarmYield
	},
	ToolMaker: func(gs *GameState, p *Player, o Occupant) int {
		value := gs.roller.Roll(gs.Rules.ToolDie)
		if !p.AddTool(value, gs.Rules.MaxTools) {
			return 0
		}
		return value
	},
	Hut: func(gs *GameState, p *Player, o Occupant) int {
		return p.AddWorkers(o.Count, gs.Rules.MaxWorkers)
	},
}

// ResolveSpecial applies the fixed effect of a special space to every
// occupant group: the farm raises food production, the tool maker grants a
// tool worth one tool-die roll and the hut adds one worker per occupying
// worker. Amount reports the production gained, the tool value or the
// workers added.
func (gs *GameState) ResolveSpecial(space ActionSpace) ([]SpecialResult, error) {
	if gs.Frozen {
		return nil, ErrFrozen
	}
	effect, ok := specialEffects[space]
	if !ok {
		return nil, fmt.Errorf("%s is not a special space", space)
	}
	var results []SpecialResult
	for _, o := range gs.Board.Occupants[space] {
		amount := effect(gs, gs.Players[o.Player], o)
		results = append(results, SpecialResult{Player: o.Player, Space: space, Workers: o.Count, Amount: amount})
	}
	return results, nil
}

// Purchase records a bought civilization card or building.
type Purchase struct {
	Player int         `json:"player"`
	Space  ActionSpace `json:"space"`
	Slot   int         `json:"slot"`
	Name   string      `json:"name"`
	Points int         `json:"points"`
	Cost   Resources   `json:"cost"`
}

// Purchase buys the offer in slot of the market space for a player, paying
// its cost and refilling the offer from the deck.
func (gs *GameState) Purchase(playerIndex int, space ActionSpace, slot int) (Purchase, error) {
	if gs.Frozen {
		return Purchase{}, ErrFrozen
	}
	p, err := gs.player(playerIndex)
	if err != nil {
		return Purchase{}, err
	}
	out := Purchase{Player: playerIndex, Space: space, Slot: slot}

	switch space {
	case CivilizationCardSlot:
		card, ok := gs.Board.Civilizations.Peek(slot)
		if !ok {
			return out, fmt.Errorf("%w: no civilization card in slot %d", ErrInvalidPlacement, slot)
		}
		gs.Board.Civilizations.Take(slot)
		p.Cards = append(p.Cards, card)
		out.Name, out.Points = card.Name, card.Points

	case BuildingSlot:
		b, ok := gs.Board.Buildings.Peek(slot)
		if !ok {
			return out, fmt.Errorf("%w: no building in slot %d", ErrInvalidPlacement, slot)
		}
		if err := p.Resources.Spend(b.Cost); err != nil {
			return out, fmt.Errorf("%s cannot build %s: %w", p.Name, b.Name, err)
		}
		gs.Board.Buildings.Take(slot)
		p.Buildings = append(p.Buildings, b)
		out.Name, out.Points, out.Cost = b.Name, b.Points, b.Cost

	default:
		return out, fmt.Errorf("%w: %s is not a market", ErrInvalidPlacement, space)
	}
	return out, nil
}

// FeedPlayers feeds every player in seat order. A shortfall is a scored
// outcome, never an error.
func (gs *GameState) FeedPlayers() ([]FeedResult, error) {
	if gs.Frozen {
		return nil, ErrFrozen
	}
	results := make([]FeedResult, len(gs.Players))
	for i, p := range gs.Players {
		results[i] = p.feed(gs.Rules.ShortfallPenalty)
		results[i].Player = i
	}
	return results, nil
}

// ResetRoundOccupancy clears the board and returns every worker home.
func (gs *GameState) ResetRoundOccupancy() error {
	if gs.Frozen {
		return ErrFrozen
	}
	gs.Board.clear()
	for _, p := range gs.Players {
		p.Placed = 0
	}
	return nil
}

// NextRound advances the round counter and reports whether the game is over.
func (gs *GameState) NextRound() bool {
	if !gs.Frozen {
		gs.Round++
	}
	return gs.IsOver()
}

// IsOver reports whether every round has been played.
func (gs *GameState) IsOver() bool {
	return gs.Round > gs.MaxRounds
}

// Freeze makes the state read-only. Final scores stay available.
func (gs *GameState) Freeze() {
	gs.Frozen = true
}
