package searcher

import "github.com/Dmi3yy/catanatron/game"

// Hyperparameters for MCTS.

const CSquared = 2.0 // Exploration constant (squared)

const Win = 1.0   // Reward for a winning outcome
const Loss = -Win // Reward for a losing outcome

// MaxCutoff bounds rollout length when no cutoff is configured.
const MaxCutoff = 300

// Agent chooses one move given a state. Implementations never mutate
// the state they are handed; exploration happens on private copies
// through State.Play.
type Agent interface {
	FindMove(state game.State) game.Move
}

// computeReward converts a playout result into a reward for a node
// owned by nodePlayer. score is from player's perspective: the full
// Win at a terminal state, or an evaluation at a rollout cutoff.
// Opposing seats are treated as adversaries of one another.
func computeReward(player string, score float64, nodePlayer string) float64 {
	if player == nodePlayer {
		return score
	}
	return -score
}
