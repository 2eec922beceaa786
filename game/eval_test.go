package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiceProbability(t *testing.T) {
	require.Equal(t, 6.0/36, DiceProbability(7), "Seven has six combinations")
	require.Equal(t, 1.0/36, DiceProbability(2), "Two has one combination")
	require.Equal(t, DiceProbability(6), DiceProbability(8), "The distribution is symmetric")
	require.Zero(t, DiceProbability(1), "Impossible sums have zero probability")
	require.Zero(t, DiceProbability(13), "Impossible sums have zero probability")

	total := 0.0
	for sum := 2; sum <= 12; sum++ {
		total += DiceProbability(sum)
	}
	require.InDelta(t, 1.0, total, 1e-9, "The distribution should sum to one")
}

func TestFeatures(t *testing.T) {
	t.Run("a fresh game projects to zeros", func(t *testing.T) {
		gs := newTestGame(t, 2)
		f := gs.Features(Red)
		require.Len(t, f, NumFeatures, "The vector has a fixed width")
		require.Zero(t, f[FeatProduction], "No buildings means no production")
		require.Zero(t, f[FeatPublicVP], "No buildings means no points")
		require.Equal(t, float64(MaxRoads), f[FeatRoadsLeft], "Full stock at the start")
	})

	t.Run("pure and deterministic", func(t *testing.T) {
		gs := finishPlacement(t, newTestGame(t, 2))
		before := gs.Hash()
		first := gs.Features(Red)
		second := gs.Features(Red)
		require.Equal(t, first, second, "Identical states produce identical vectors")
		require.Equal(t, before, gs.Hash(), "Feature extraction must not mutate the state")
	})

	t.Run("production tracks buildings", func(t *testing.T) {
		gs := finishPlacement(t, newTestGame(t, 2))
		f := gs.Features(Red)
		require.Greater(t, f[FeatProduction], 0.0, "Placed settlements produce")
		require.Equal(t, 2.0, f[FeatPublicVP], "Two settlements score two")

		// Upgrading a settlement doubles its share.
		var node int
		for n, owner := range gs.NodeOwner {
			if owner == 0 {
				node = n
				break
			}
		}
		single := gs.nodeProduction(node)
		gs.NodeKind[node] = CityBuilding
		upgraded := gs.Features(Red)
		require.InDelta(t, f[FeatProduction]+single, upgraded[FeatProduction], 1e-9,
			"A city doubles the node's production")
	})

	t.Run("unknown colors project to zeros", func(t *testing.T) {
		gs := newTestGame(t, 2)
		require.Equal(t, make([]float64, NumFeatures), gs.Features("PINK"),
			"An unseated color has an all-zero vector")
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("a symmetric start scores zero", func(t *testing.T) {
		gs := newTestGame(t, 2)
		require.Zero(t, EvaluatePosition(gs), "No assets on either side is even")
	})

	t.Run("bounded between -1 and 1", func(t *testing.T) {
		gs := finishPlacement(t, newTestGame(t, 3))
		for _, color := range SeatColors[:3] {
			v := EvaluateFor(gs, color)
			require.GreaterOrEqual(t, v, -1.0, "Evaluation is bounded below")
			require.LessOrEqual(t, v, 1.0, "Evaluation is bounded above")
		}
	})

	t.Run("an extra city favors its owner", func(t *testing.T) {
		gs := finishPlacement(t, newTestGame(t, 2))
		var node int
		for n, owner := range gs.NodeOwner {
			if owner == 0 {
				node = n
				break
			}
		}
		base := EvaluateFor(gs, Red)
		gs.NodeKind[node] = CityBuilding
		gs.Players[0].CitiesLeft--
		gs.Players[0].SettlementsLeft++
		require.Greater(t, EvaluateFor(gs, Red), base, "A city improves the owner's score")
		require.Less(t, EvaluateFor(gs, Blue), EvaluateFor(gs, Red), "The opponent sees the mirror image")
	})

	t.Run("the actor view follows the player to act", func(t *testing.T) {
		gs := finishPlacement(t, newTestGame(t, 2))
		gs.Current = 1
		gs.Phase = MainPhase
		require.Equal(t, EvaluateFor(gs, Blue), EvaluatePosition(gs),
			"The actor view follows the player to act")
	})
}
