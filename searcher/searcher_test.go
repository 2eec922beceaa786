package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dmi3yy/catanatron/game"
)

// startedGame builds a fixed-layout game past initial placement,
// driving every placement with the first legal move.
func startedGame(t *testing.T, players, victoryPoints int) *game.GameState {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.ShuffleBoard = false
	if victoryPoints > 0 {
		cfg.VictoryPoints = victoryPoints
	}
	gs, err := game.NewGameState(game.SeatColors[:players], cfg)
	require.NoError(t, err)
	for gs.Phase == game.InitialPlacement1 || gs.Phase == game.InitialPlacement2 {
		gs = gs.Play(gs.LegalMoves()[0]).(*game.GameState)
	}
	return gs
}

// winInOne sets up a state where the player to act wins by upgrading
// a settlement to a city.
func winInOne(t *testing.T, players int) *game.GameState {
	t.Helper()
	gs := startedGame(t, players, 3)
	gs.Phase = game.MainPhase
	gs.Players[0].Hand = game.CityCost
	return gs
}

func isWinningCity(t *testing.T, gs *game.GameState, move game.Move) {
	t.Helper()
	gm, ok := move.(*game.GameMove)
	require.True(t, ok, "Agents should return game moves")
	require.Equal(t, game.BuildCityAction, gm.Action, "The winning upgrade should be chosen")
	next := gs.Play(move)
	require.Equal(t, string(game.SeatColors[0]), next.Winner(), "The chosen move should win outright")
}

func TestRandomAgent(t *testing.T) {
	gs := startedGame(t, 2, 0)
	agent := NewRandom()

	move := agent.FindMove(gs)
	_, err := gs.Apply(move)
	require.NoError(t, err, "A random agent should return a legal move")
}

func TestWeightedAgent(t *testing.T) {
	t.Run("returns a legal move", func(t *testing.T) {
		gs := startedGame(t, 2, 0)
		gs.Phase = game.MainPhase
		gs.Players[0].Hand = game.Hand{game.Wood: 2, game.Brick: 2, game.Sheep: 1, game.Wheat: 1}

		agent := NewWeighted()
		for i := 0; i < 20; i++ {
			move := agent.FindMove(gs)
			_, err := gs.Apply(move)
			require.NoError(t, err, "A weighted agent should return a legal move")
		}
	})

	t.Run("zero-weight moves are never picked when alternatives exist", func(t *testing.T) {
		gs := startedGame(t, 2, 0)
		gs.Phase = game.MainPhase
		agent := NewWeightedWith(map[game.ActionType]float64{
			game.EndTurnAction:      1,
			game.OfferTradeAction:   0,
			game.CounterTradeAction: 0,
			game.BankTradeAction:    0,
		})
		gs.Players[0].Hand = game.Hand{game.Wood: 4}

		for i := 0; i < 50; i++ {
			move := agent.FindMove(gs)
			require.Equal(t, game.EndTurnAction, move.(*game.GameMove).Action,
				"Zero-weight actions should never win the draw")
		}
	})
}
