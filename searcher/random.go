package searcher

import (
	"golang.org/x/exp/rand"

	"github.com/Dmi3yy/catanatron/game"
)

// Random picks uniformly from the legal set. No search.
type Random struct{}

func NewRandom() *Random { return &Random{} }

func (a *Random) FindMove(state game.State) game.Move {
	moves := state.LegalMoves()
	return moves[rand.Intn(len(moves))]
}

// Weighted picks from the legal set weighted by a static per-action
// heuristic. No search.
type Weighted struct {
	policy Policy
}

func NewWeighted() *Weighted {
	return &Weighted{policy: WeightedPolicy(DefaultWeights)}
}

func NewWeightedWith(weights map[game.ActionType]float64) *Weighted {
	return &Weighted{policy: WeightedPolicy(weights)}
}

func (a *Weighted) FindMove(state game.State) game.Move {
	return a.policy(state, state.LegalMoves())
}
