package engine

import (
	"context"
	"fmt"

	"stoneage/experiments/metrics"
	"stoneage/game"
	"stoneage/player"

	"github.com/rs/zerolog/log"
)

// Observer receives a fresh snapshot after every phase.
type Observer func(game.Snapshot)

// Engine runs one game locally. It is the only writer of its state.
type Engine struct {
	State       *game.GameState
	Agents      []player.Agent
	phase       Phase
	records     []Record
	transitions []Transition
	observers   []Observer
	collector   metrics.Collector
	lastFeeding []game.FeedResult
}

type Option func(*Engine)

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(e *Engine) {
		e.collector = c
	}
}

// LocalEngine seats one agent per player and starts in Placement.
func LocalEngine(state *game.GameState, agents []player.Agent, opts ...Option) (*Engine, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: no game state", game.ErrConfiguration)
	}
	if len(agents) != len(state.Players) {
		return nil, fmt.Errorf("%w: %d agents for %d players", game.ErrConfiguration, len(agents), len(state.Players))
	}
	e := &Engine{
		State:     state,
		Agents:    agents,
		phase:     Placement,
		collector: metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.collector.Start(state.ID, len(state.Players))
	return e, nil
}

func (e *Engine) Phase() Phase {
	return e.phase
}

// Step runs exactly one phase and moves to the next one.
func (e *Engine) Step() error {
	var err error
	switch e.phase {
	case Placement:
		e.placement()
		err = e.transition(Resolution)
	case Resolution:
		e.resolution()
		err = e.transition(Feeding)
	case Feeding:
		err = e.feeding()
	case Terminal:
		return ErrGameOver
	default:
		return fmt.Errorf("unknown phase %d", int(e.phase))
	}
	if err != nil {
		return err
	}
	e.publish()
	return nil
}

// Run steps until Terminal and returns the summary.
func (e *Engine) Run(ctx context.Context) (Summary, error) {
	log.Info().Msgf("game %s: %d players, %d rounds", e.State.ID, len(e.State.Players), e.State.MaxRounds)
	e.publish()
	for e.phase != Terminal {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		if err := e.Step(); err != nil {
			return Summary{}, err
		}
	}
	return e.Summary(), nil
}

func (e *Engine) transition(to Phase) error {
	if !canTransition(e.phase, to) {
		return fmt.Errorf("illegal transition %s -> %s", e.phase, to)
	}
	e.transitions = append(e.transitions, Transition{Round: e.State.Round, From: e.phase, To: to})
	log.Debug().Msgf("round %d: %s -> %s", e.State.Round, e.phase, to)
	e.phase = to
	return nil
}

func (e *Engine) record(r Record) {
	r.Round = e.State.Round
	r.Phase = e.phase
	e.records = append(e.records, r)
}

// placement asks every seat for a plan against the current state and applies
// it entry by entry. Rejected entries are dropped; the rest still apply.
func (e *Engine) placement() {
	for i, agent := range e.Agents {
		plan := agent.ChoosePlacements(e.Snapshot(), i)
		for _, p := range plan {
			if err := e.State.PlaceWorker(i, p.Space, p.Count); err != nil {
				log.Warn().Err(err).Msgf("%s: placement on %s dropped", e.State.Players[i].Name, p.Space)
				e.record(Record{Type: EventPlacementRejected, Player: i, Space: p.Space, Amount: p.Count, Detail: err.Error()})
				e.collector.AddRejected()
				continue
			}
			e.record(Record{Type: EventPlacement, Player: i, Space: p.Space, Amount: p.Count})
		}
	}
}

// resolution resolves every occupied space once, in declared order.
func (e *Engine) resolution() {
	for _, space := range game.ActionSpaces {
		if e.State.Board.Occupancy(space) == 0 {
			continue
		}
		switch space.Class() {
		case game.Gathering:
			results, err := e.State.ResolveGathering(space)
			if err != nil {
				log.Error().Err(err).Msgf("resolving %s", space)
				continue
			}
			for _, r := range results {
				log.Debug().Msgf("%s gathered %d %s on %s (rolls %v, tool %d)",
					e.State.Players[r.Player].Name, r.Yield, r.Resource, space, r.Rolls, r.ToolBonus)
				e.record(Record{Type: EventGather, Player: r.Player, Space: space, Amount: r.Yield})
			}
		case game.Special:
			results, err := e.State.ResolveSpecial(space)
			if err != nil {
				log.Error().Err(err).Msgf("resolving %s", space)
				continue
			}
			for _, r := range results {
				e.record(Record{Type: EventSpecial, Player: r.Player, Space: space, Amount: r.Amount})
			}
		case game.Market:
			for _, o := range append([]game.Occupant{}, e.State.Board.Occupants[space]...) {
				e.purchase(o.Player, space)
			}
		}
	}
}

func (e *Engine) purchase(playerIndex int, space game.ActionSpace) {
	view := e.Snapshot()
	agent := e.Agents[playerIndex]
	var slot int
	switch space {
	case game.CivilizationCardSlot:
		slot = agent.ChooseCivilizationCard(view, playerIndex)
	case game.BuildingSlot:
		slot = agent.ChooseBuilding(view, playerIndex)
	default:
		return
	}
	if slot < 0 {
		e.record(Record{Type: EventPurchaseSkipped, Player: playerIndex, Space: space})
		return
	}
	bought, err := e.State.Purchase(playerIndex, space, slot)
	if err != nil {
		log.Warn().Err(err).Msgf("%s: purchase on %s skipped", e.State.Players[playerIndex].Name, space)
		e.record(Record{Type: EventPurchaseFailed, Player: playerIndex, Space: space, Amount: slot, Detail: err.Error()})
		e.collector.AddFailedPurchase()
		return
	}
	log.Info().Msgf("%s took %s (%d points)", e.State.Players[playerIndex].Name, bought.Name, bought.Points)
	e.record(Record{Type: EventPurchase, Player: playerIndex, Space: space, Amount: bought.Points, Detail: bought.Name})
}

// feeding feeds every tribe and closes the round.
func (e *Engine) feeding() error {
	results, err := e.State.FeedPlayers()
	if err != nil {
		return err
	}
	e.lastFeeding = results
	for _, r := range results {
		e.record(Record{Type: EventFeeding, Player: r.Player, Amount: r.FromProduction + r.FromStore})
		if r.Shortfall > 0 {
			log.Warn().Msgf("%s is short %d food, loses %d points", e.State.Players[r.Player].Name, r.Shortfall, r.Penalty)
			e.record(Record{Type: EventFoodShortfall, Player: r.Player, Amount: r.Shortfall})
		}
	}
	e.collector.EndRound(e.Snapshot(), results)
	e.logRoundSummary()

	if err := e.State.ResetRoundOccupancy(); err != nil {
		return err
	}
	if !e.State.NextRound() {
		return e.transition(Placement)
	}
	return e.finish()
}

// finish computes the final scores once and freezes the state.
func (e *Engine) finish() error {
	if err := e.transition(Terminal); err != nil {
		return err
	}
	e.State.Freeze()
	e.record(Record{Type: EventGameOver, Player: e.State.Winner()})
	for _, s := range e.State.FinalScores() {
		log.Info().Msgf("%s: %d (base %d, cards %d, buildings %d, resources %d)",
			s.Name, s.Total, s.Base, s.Cards, s.Buildings, s.ResourceBonus)
	}
	log.Info().Msgf("winner: %s", e.State.Players[e.State.Winner()].Name)
	return nil
}

func (e *Engine) logRoundSummary() {
	for _, p := range e.State.Players {
		log.Info().Msgf("round %d | %s: score %d, workers %d, food %d (+%d/round), tools %v, %s",
			e.State.Round, p.Name, p.Score, p.Workers, p.Resources.Get(game.Food), p.FoodProduction, p.Tools, p.Resources)
	}
}

func (e *Engine) publish() {
	if len(e.observers) == 0 {
		return
	}
	s := e.Snapshot()
	for _, o := range e.observers {
		o(s)
	}
}

// Snapshot copies the state and tags it with the current phase.
func (e *Engine) Snapshot() game.Snapshot {
	s := e.State.Snapshot()
	s.Phase = e.phase.String()
	return s
}

// Summary reports the final standings. Before Terminal it reports the
// projection of the current state.
func (e *Engine) Summary() Summary {
	scores := e.State.FinalScores()
	winner := e.State.Winner()
	rounds := min(e.State.Round, e.State.MaxRounds)
	if e.phase != Terminal {
		rounds = e.State.Round - 1
	}
	s := Summary{
		GameID: e.State.ID,
		Rounds: rounds,
		Scores: scores,
		Winner: winner,
	}
	if winner >= 0 {
		s.WinnerName = e.State.Players[winner].Name
	}
	if e.phase == Terminal {
		s.Metric = e.collector.Complete(scores, winner)
		s.RoundMetrics = e.collector.Rounds()
	}
	return s
}

// Records returns every event so far.
func (e *Engine) Records() []Record {
	out := make([]Record, len(e.records))
	copy(out, e.records)
	return out
}

// Transitions returns every phase change so far.
func (e *Engine) Transitions() []Transition {
	out := make([]Transition, len(e.transitions))
	copy(out, e.transitions)
	return out
}

// LastFeeding returns the feeding results of the latest round.
func (e *Engine) LastFeeding() []game.FeedResult {
	return append([]game.FeedResult{}, e.lastFeeding...)
}
