package player

import (
	"testing"

	"stoneage/game"

	"github.com/stretchr/testify/require"
)

// newView returns a fresh two player game with unshuffled decks, so the
// building offer is Simple Hut, Field, Shelter, House.
func newView(t *testing.T, edit func(gs *game.GameState)) game.Snapshot {
	t.Helper()
	gs, err := game.NewGameState(game.DefaultSetup(), game.NewSequenceRoller())
	require.NoError(t, err)
	if edit != nil {
		edit(gs)
	}
	return gs.Snapshot()
}

func TestChoosePlacements(t *testing.T) {
	t.Run("hungry tribe hunts first", func(t *testing.T) {
		view := newView(t, nil)

		plan := NewHeuristic().ChoosePlacements(view, 0)

		require.Equal(t, []game.Placement{
			{Space: game.HuntingGrounds, Count: 3},
			{Space: game.HuntingGrounds, Count: 2},
		}, plan, "Food urgency should dominate while projected food is short")
	})

	t.Run("fed tribe takes the early farm and places every worker", func(t *testing.T) {
		view := newView(t, func(gs *game.GameState) {
			gs.Players[0].Resources.Add(game.Food, 10)
		})

		plan := NewHeuristic().ChoosePlacements(view, 0)

		require.NotEmpty(t, plan)
		require.Equal(t, game.Placement{Space: game.Farm, Count: 1}, plan[0])
		placed := 0
		perSpace := map[game.ActionSpace]int{}
		for _, p := range plan {
			require.Positive(t, p.Count)
			placed += p.Count
			perSpace[p.Space] += p.Count
		}
		require.Equal(t, 5, placed)
		for space, n := range perSpace {
			require.LessOrEqual(t, n, view.Space(space).Remaining(), "Plan should respect capacity on %s", space)
		}
	})

	t.Run("plan can be applied to the state it was made from", func(t *testing.T) {
		gs, err := game.NewGameState(game.DefaultSetup(), game.NewRandomRoller(7))
		require.NoError(t, err)
		gs.Players[1].Resources.Add(game.Food, 6)
		h := NewHeuristic()

		for i := range gs.Players {
			for _, p := range h.ChoosePlacements(gs.Snapshot(), i) {
				require.NoError(t, gs.PlaceWorker(i, p.Space, p.Count))
			}
			require.Equal(t, 0, gs.Players[i].Free())
		}
	})

	t.Run("no free workers gives an empty plan", func(t *testing.T) {
		view := newView(t, func(gs *game.GameState) {
			require.NoError(t, gs.PlaceWorker(0, game.Forest, 5))
		})

		require.Empty(t, NewHeuristic().ChoosePlacements(view, 0))
		require.Empty(t, NewHeuristic().ChoosePlacements(view, 5), "Unknown seat should give an empty plan")
	})

	t.Run("same view gives the same plan", func(t *testing.T) {
		view := newView(t, func(gs *game.GameState) {
			gs.Players[1].Resources.Add(game.Food, 4)
			gs.Players[1].Tools = []int{3}
		})
		h := NewHeuristic()

		require.Equal(t, h.ChoosePlacements(view, 1), h.ChoosePlacements(view, 1))
	})

	t.Run("ties go to the earlier space in the tie-break order", func(t *testing.T) {
		view := newView(t, nil)
		w := DefaultWeights()
		w.FarmEarly = w.ToolFew

		plan := NewHeuristic(
			WithWeights(w),
			WithTieBreak([]game.ActionSpace{game.Farm, game.ToolMaker}),
		).ChoosePlacements(view, 0)
		require.Equal(t, []game.Placement{{Space: game.Farm, Count: 1}, {Space: game.ToolMaker, Count: 1}}, plan)

		plan = NewHeuristic(
			WithWeights(w),
			WithTieBreak([]game.ActionSpace{game.ToolMaker, game.Farm}),
		).ChoosePlacements(view, 0)
		require.Equal(t, []game.Placement{{Space: game.ToolMaker, Count: 1}, {Space: game.Farm, Count: 1}}, plan)
	})
}

func TestUtility(t *testing.T) {
	t.Run("gathering weighs expected yield by die size and need", func(t *testing.T) {
		view := newView(t, nil)

		// 3 workers on a d3: 2 wood expected, value 3, three buildings lack wood.
		require.InDelta(t, 15.0, Utility(view, 0, game.Forest), 1e-9)
		// Nothing offered costs gold.
		require.InDelta(t, 10.5, Utility(view, 0, game.River), 1e-9)
	})

	t.Run("need decays as the plan gathers", func(t *testing.T) {
		view := newView(t, nil)
		w := DefaultWeights()
		proj := newProjection(view, 0)

		require.InDelta(t, 2.5, w.need(view, proj, game.Wood), 1e-9)
		w.commit(view, proj, game.Forest, 3)
		require.InDelta(t, 1.5, w.need(view, proj, game.Wood), 1e-9, "Only the Simple Hut still lacks wood")
		require.Equal(t, 2, proj.free)
		require.Equal(t, 4, proj.open(view, game.Forest))
	})

	t.Run("tools raise the expected yield", func(t *testing.T) {
		require.InDelta(t, 2.0, expectedYield(3, 3, 0), 1e-9)
		require.InDelta(t, 3.0, expectedYield(3, 3, 3), 1e-9)
		require.InDelta(t, 1.0, expectedYield(1, 6, 0), 1e-9, "Expected yield should be at least one")
	})

	t.Run("hunting urgency grows with the deficit", func(t *testing.T) {
		view := newView(t, func(gs *game.GameState) {
			gs.Players[0].Resources.Add(game.Food, 2)
		})
		require.InDelta(t, 130.0, Utility(view, 0, game.HuntingGrounds), 1e-9)

		view = newView(t, func(gs *game.GameState) {
			gs.Players[0].FoodProduction = 5
		})
		require.InDelta(t, 4.5, Utility(view, 0, game.HuntingGrounds), 1e-9)
	})

	t.Run("special spaces follow the round and the kit", func(t *testing.T) {
		early := newView(t, nil)
		late := newView(t, func(gs *game.GameState) { gs.Round = 6 })
		full := newView(t, func(gs *game.GameState) {
			gs.Players[0].Tools = []int{2, 2, 2}
			gs.Players[0].FoodProduction = 2
		})

		require.Equal(t, 20.0, Utility(early, 0, game.Farm))
		require.Equal(t, 5.0, Utility(late, 0, game.Farm))
		require.Equal(t, 18.0, Utility(early, 0, game.Hut))
		require.Equal(t, 28.0, Utility(full, 0, game.Hut))
		require.Equal(t, 0.0, Utility(late, 0, game.Hut))
		require.Equal(t, 8.0, Utility(early, 0, game.ToolMaker))
		require.Equal(t, 1.0, Utility(full, 0, game.ToolMaker))
	})

	t.Run("markets score the best offer", func(t *testing.T) {
		view := newView(t, nil)
		require.Equal(t, 14.0, Utility(view, 0, game.CivilizationCardSlot))
		require.Equal(t, 0.0, Utility(view, 0, game.BuildingSlot), "Nothing is affordable")

		rich := newView(t, func(gs *game.GameState) {
			gs.Players[0].Resources = game.NewCost(map[game.ResourceType]int{game.Stone: 3})
		})
		require.Equal(t, 40.0, Utility(rich, 0, game.BuildingSlot))
	})

	t.Run("occupied spaces score zero", func(t *testing.T) {
		view := newView(t, func(gs *game.GameState) {
			require.NoError(t, gs.PlaceWorker(1, game.Farm, 1))
		})
		require.Equal(t, 0.0, Utility(view, 0, game.Farm))
	})
}

func TestMarketChoices(t *testing.T) {
	h := NewHeuristic()

	t.Run("civilization card with the most points", func(t *testing.T) {
		view := newView(t, nil)
		require.Equal(t, 0, h.ChooseCivilizationCard(view, 0))

		view.CivilizationOffer = nil
		require.Equal(t, -1, h.ChooseCivilizationCard(view, 0))
	})

	t.Run("most valuable affordable building", func(t *testing.T) {
		view := newView(t, func(gs *game.GameState) {
			gs.Players[0].Resources = game.NewCost(map[game.ResourceType]int{game.Wood: 3, game.Stone: 3})
		})
		require.Equal(t, 3, h.ChooseBuilding(view, 0), "House should beat the Shelter and the Simple Hut")
		require.Equal(t, -1, h.ChooseBuilding(view, 1))
		require.Equal(t, -1, h.ChooseBuilding(view, 9))
	})

	t.Run("ties go to the lowest slot", func(t *testing.T) {
		view := newView(t, nil)
		view.CivilizationOffer = []game.CivilizationCard{{Name: "a", Points: 3}, {Name: "b", Points: 9}, {Name: "c", Points: 9}}
		require.Equal(t, 1, h.ChooseCivilizationCard(view, 0))
	})
}
