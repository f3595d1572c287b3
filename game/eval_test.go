package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFinalScore(t *testing.T) {
	t.Run("score decomposes into base, cards, buildings and resources", func(t *testing.T) {
		gs := newTestState(t)
		p := gs.Players[0]
		p.Score = -10
		p.Cards = []CivilizationCard{{"Art", 12}}
		p.Buildings = []Building{{Name: "Shelter", Points: 10}}
		p.Resources = NewCost(map[ResourceType]int{Wood: 2, Stone: 1, Food: 7})

		got := gs.FinalScore(0)

		require.Equal(t, ScoreBreakdown{
			Player:        0,
			Name:          "Player 1",
			Base:          -10,
			Cards:         12,
			Buildings:     10,
			ResourceBonus: 3,
			Total:         15,
		}, got, "Food should not count towards the resource bonus")
	})

	t.Run("winner is the highest total and ties go to the earlier seat", func(t *testing.T) {
		gs := newTestState(t)
		gs.Players[0].Score = 5
		gs.Players[1].Score = 5
		require.Equal(t, 0, gs.Winner())

		gs.Players[1].Resources.Add(Gold, 1)
		require.Equal(t, 1, gs.Winner())
	})
}

func TestSnapshot(t *testing.T) {
	t.Run("snapshot mirrors the state", func(t *testing.T) {
		gs := newTestState(t)
		require.NoError(t, gs.PlaceWorker(1, Quarry, 3))

		s := gs.Snapshot()

		require.Equal(t, "test", s.GameID)
		require.Equal(t, 1, s.Round)
		require.False(t, s.Terminal)
		require.Equal(t, -1, s.Winner)
		require.Len(t, s.Spaces, NumActionSpaces)
		require.Equal(t, 3, s.Space(Quarry).Occupancy)
		require.Equal(t, 4, s.Space(Quarry).Remaining())
		require.Equal(t, 5, s.Space(Quarry).DieSize)
		require.Equal(t, "gathering", s.Space(Quarry).Class)
		require.Equal(t, 2, s.Player(1).Free)
		require.Len(t, s.CivilizationOffer, 4)
		require.Len(t, s.Scores, 2)
	})

	t.Run("snapshot is a deep copy", func(t *testing.T) {
		gs := newTestState(t)
		gs.Players[0].Tools = []int{3}
		require.NoError(t, gs.PlaceWorker(0, Forest, 1))

		s := gs.Snapshot()
		s.Players[0].Tools[0] = 1
		s.Players[0].Resources.Add(Wood, 9)
		s.Spaces[Forest].Occupants[0].Count = 7
		s.BuildingOffer[0].Points = 99

		require.Equal(t, []int{3}, gs.Players[0].Tools)
		require.Equal(t, 0, gs.Players[0].Resources.Get(Wood))
		require.Equal(t, 1, gs.Board.Occupancy(Forest))
		require.NotEqual(t, 99, gs.Board.Buildings.Window[0].Points)
	})

	t.Run("terminal snapshot names the winner", func(t *testing.T) {
		setup := DefaultSetup()
		setup.MaxRounds = 1
		gs, err := NewGameState(setup, NewSequenceRoller())
		require.NoError(t, err)
		gs.Players[1].Score = 3
		gs.NextRound()

		s := gs.Snapshot()

		require.True(t, s.Terminal)
		require.Equal(t, 1, s.Winner)
	})
}
