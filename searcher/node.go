package searcher

import (
	"math"

	"github.com/Dmi3yy/catanatron/game"
)

// Node is one search-tree position: a decision node where a player
// picks a move, or a chance node where a stochastic move resolves.
type Node interface {
	// SelectOrExpand descends one level: it selects an explored child
	// (selected=true) or expands a new one (selected=false). Terminal
	// nodes return themselves.
	SelectOrExpand(state game.State) (child Node, childState game.State, selected bool)
	// Backup propagates a playout result and returns the parent.
	Backup(player string, score float64) Node
	Visits() float64
	applyLoss()
	stats() (player string, rewards, visits float64)
}

// ucb1 is the UCT selection score: exploitation plus exploration.
func ucb1(rewards, visits, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}
	return rewards/visits + math.Sqrt(c2LnN/visits)
}
