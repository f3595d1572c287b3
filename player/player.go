package player

import (
	"stoneage/game"
	"stoneage/meta"
	"stoneage/utils"
)

// Agent makes every decision of one seat. Implementations must be pure
// functions of the snapshot they are given.
type Agent interface {
	// ChoosePlacements returns the worker placements for this round, in the
	// order they should be applied. An empty plan is not an error.
	ChoosePlacements(view game.Snapshot, playerIndex int) []game.Placement
	// ChooseCivilizationCard returns the offer slot to take, or -1.
	ChooseCivilizationCard(view game.Snapshot, playerIndex int) int
	// ChooseBuilding returns the offer slot to buy, or -1.
	ChooseBuilding(view game.Snapshot, playerIndex int) int
}

// Heuristic is a greedy utility player.
type Heuristic struct {
	weights  Weights
	order    []game.ActionSpace
	maxSteps int
}

type Option func(*Heuristic)

// WithWeights replaces the utility constants.
func WithWeights(w Weights) Option {
	return func(h *Heuristic) {
		h.weights = w
	}
}

// WithTieBreak sets the order that decides between equal utilities. Spaces
// missing from order are never chosen.
func WithTieBreak(order []game.ActionSpace) Option {
	return func(h *Heuristic) {
		h.order = order
	}
}

func WithMaxSteps(n int) Option {
	return func(h *Heuristic) {
		h.maxSteps = n
	}
}

func NewHeuristic(opts ...Option) *Heuristic {
	h := &Heuristic{
		weights:  DefaultWeights(),
		order:    game.ActionSpaces[:],
		maxSteps: meta.MAX_PLAN_STEPS,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ChoosePlacements repeatedly picks the open space with the highest utility
// and commits a batch of workers to it, until no worker is free or nothing
// left is worth a worker.
func (h *Heuristic) ChoosePlacements(view game.Snapshot, playerIndex int) []game.Placement {
	if playerIndex < 0 || playerIndex >= len(view.Players) {
		return nil
	}
	proj := newProjection(view, playerIndex)
	var plan []game.Placement

	for step := 0; step < h.maxSteps && proj.free > 0; step++ {
		space, utility, ok := h.best(view, playerIndex, proj)
		if !ok || utility <= 0 {
			break
		}
		count := h.weights.batch(view, proj, space)
		h.weights.commit(view, proj, space, count)
		plan = append(plan, game.Placement{Space: space, Count: count})
	}
	return plan
}

// best returns the open space with the highest utility. Equal utilities go
// to the space ranked first in the tie-break order.
func (h *Heuristic) best(view game.Snapshot, playerIndex int, proj *projection) (game.ActionSpace, float64, bool) {
	var (
		bestSpace   game.ActionSpace
		bestUtility float64
		found       bool
	)
	for _, space := range game.ActionSpaces {
		rank := utils.FindIndex(h.order, space)
		if rank < 0 || proj.open(view, space) <= 0 {
			continue
		}
		u := h.weights.utility(view, playerIndex, proj, space)
		if !found || u > bestUtility ||
			(u == bestUtility && rank < utils.FindIndex(h.order, bestSpace)) {
			bestSpace, bestUtility, found = space, u, true
		}
	}
	return bestSpace, bestUtility, found
}

func (h *Heuristic) ChooseCivilizationCard(view game.Snapshot, playerIndex int) int {
	return bestCard(view)
}

func (h *Heuristic) ChooseBuilding(view game.Snapshot, playerIndex int) int {
	if playerIndex < 0 || playerIndex >= len(view.Players) {
		return -1
	}
	return bestBuilding(view, playerIndex)
}
