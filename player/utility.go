package player

import (
	"stoneage/game"
	"stoneage/utils"
)

// Weights are the constants of the utility function.
type Weights struct {
	NeedPerBuilding    float64 // need bonus per offered building still missing a resource
	HuntUrgency        float64
	HuntDeficit        float64 // per missing food unit
	FoodValue          float64
	FarmEarly          float64
	FarmLate           float64
	FarmRound          int // farm is early before this round
	HutBase            float64
	HutProductionBonus float64
	HutProduction      int // production that earns the bonus
	HutRound           int // huts are only worth it before this round
	ToolFew            float64
	ToolSome           float64
	ToolFull           float64
	BuildingBonus      float64
	GatherBatch        int
	HutBatch           int
}

// DefaultWeights is the tuned heuristic every simulated player uses.
func DefaultWeights() Weights {
	return Weights{
		NeedPerBuilding:    0.5,
		HuntUrgency:        100,
		HuntDeficit:        10,
		FoodValue:          2,
		FarmEarly:          20,
		FarmLate:           5,
		FarmRound:          5,
		HutBase:            18,
		HutProductionBonus: 10,
		HutProduction:      2,
		HutRound:           4,
		ToolFew:            8,
		ToolSome:           4,
		ToolFull:           1,
		BuildingBonus:      30,
		GatherBatch:        3,
		HutBatch:           2,
	}
}

// projection is the player as the plan expects them to be after resolution.
type projection struct {
	free       int
	workers    int
	production int
	tools      []int // strongest first
	toolsUsed  int
	toolCount  int
	resources  [game.NumResources]float64
	planned    [game.NumActionSpaces]int
}

func newProjection(view game.Snapshot, playerIndex int) *projection {
	p := view.Player(playerIndex)
	proj := &projection{
		free:       p.Free,
		workers:    p.Workers,
		production: p.FoodProduction,
		tools:      p.Tools,
		toolCount:  len(p.Tools),
	}
	for i, n := range p.Resources {
		proj.resources[i] = float64(n)
	}
	return proj
}

// open is the number of workers the plan can still put on space.
func (proj *projection) open(view game.Snapshot, space game.ActionSpace) int {
	return view.Space(space).Remaining() - proj.planned[space]
}

func (proj *projection) nextTool() int {
	if proj.toolsUsed < len(proj.tools) {
		return proj.tools[proj.toolsUsed]
	}
	return 0
}

// batch is how many workers one commit puts on space.
func (w Weights) batch(view game.Snapshot, proj *projection, space game.ActionSpace) int {
	n := 1
	switch {
	case space.Class() == game.Gathering:
		n = w.GatherBatch
	case space == game.Hut:
		n = w.HutBatch
	}
	return min(n, proj.free, proj.open(view, space))
}

// expectedYield is the mean of count dice of size d plus a tool, divided by
// d, and never below one.
func expectedYield(count, d, tool int) float64 {
	if d < 1 {
		return 0
	}
	df := float64(d)
	y := float64(count)*(df+1)/(2*df) + float64(tool)/df
	return max(1, y)
}

// need grows with every offered building whose cost the projected inventory
// does not yet cover for r.
func (w Weights) need(view game.Snapshot, proj *projection, r game.ResourceType) float64 {
	missing := 0
	for _, b := range view.BuildingOffer {
		if float64(b.Cost.Get(r)) > proj.resources[r] {
			missing++
		}
	}
	return 1 + w.NeedPerBuilding*float64(missing)
}

func (w Weights) utility(view game.Snapshot, playerIndex int, proj *projection, space game.ActionSpace) float64 {
	count := w.batch(view, proj, space)
	if count <= 0 {
		return 0
	}
	rule := view.Rules.Spaces[space]

	switch space {
	case game.HuntingGrounds:
		fed := proj.resources[game.Food] + float64(proj.production)
		if deficit := float64(proj.workers) - fed; deficit > 0 {
			return w.HuntUrgency + w.HuntDeficit*deficit
		}
		return expectedYield(count, rule.DieSize, proj.nextTool()) * w.FoodValue

	case game.Forest, game.ClayPit, game.Quarry, game.River:
		y := expectedYield(count, rule.DieSize, proj.nextTool())
		return y * float64(rule.DieSize) * w.need(view, proj, rule.Yield)

	case game.Farm:
		if view.Round < w.FarmRound {
			return w.FarmEarly
		}
		return w.FarmLate

	case game.Hut:
		if view.Round >= w.HutRound || proj.workers >= view.Rules.MaxWorkers {
			return 0
		}
		u := w.HutBase
		if proj.production >= w.HutProduction {
			u += w.HutProductionBonus
		}
		return u

	case game.ToolMaker:
		switch {
		case proj.toolCount < 2:
			return w.ToolFew
		case proj.toolCount < view.Rules.MaxTools:
			return w.ToolSome
		default:
			return w.ToolFull
		}

	case game.CivilizationCardSlot:
		slot := bestCard(view)
		if slot < 0 {
			return 0
		}
		return float64(view.CivilizationOffer[slot].Points)

	case game.BuildingSlot:
		slot := bestBuilding(view, playerIndex)
		if slot < 0 {
			return 0
		}
		return w.BuildingBonus + float64(view.BuildingOffer[slot].Points)
	}
	return 0
}

// commit books count workers on space into the projection.
func (w Weights) commit(view game.Snapshot, proj *projection, space game.ActionSpace, count int) {
	proj.free -= count
	proj.planned[space] += count
	rule := view.Rules.Spaces[space]

	switch space.Class() {
	case game.Gathering:
		proj.resources[rule.Yield] += expectedYield(count, rule.DieSize, proj.nextTool())
		proj.toolsUsed++
	case game.Special:
		switch space {
		case game.Farm:
			proj.production += view.Rules.FarmYield
		case game.ToolMaker:
			proj.toolCount++
		case game.Hut:
			proj.workers = min(view.Rules.MaxWorkers, proj.workers+count)
		}
	}
}

// Utility scores one action space for a player straight from a snapshot,
// with nothing planned yet.
func Utility(view game.Snapshot, playerIndex int, space game.ActionSpace) float64 {
	w := DefaultWeights()
	return w.utility(view, playerIndex, newProjection(view, playerIndex), space)
}

// bestCard is the offered civilization card with the most points, lowest
// slot on ties, or -1 when the offer is empty.
func bestCard(view game.Snapshot) int {
	return utils.ArgMax(view.CivilizationOffer, func(c game.CivilizationCard) int { return c.Points }, nil)
}

// bestBuilding is the affordable offered building with the most points,
// lowest slot on ties, or -1 when none is affordable.
func bestBuilding(view game.Snapshot, playerIndex int) int {
	have := view.Player(playerIndex).Resources
	return utils.ArgMax(view.BuildingOffer,
		func(b game.Building) int { return b.Points },
		func(b game.Building) bool { return have.Covers(b.Cost) })
}
