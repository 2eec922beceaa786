package searcher

import (
	"sync"

	"github.com/Dmi3yy/catanatron/game"
)

// chance is a node whose outgoing branches are stochastic outcomes of
// one move (a dice roll, a robber steal). Outcomes are keyed by the
// hash of the state they produce; re-sampling the move on each
// descent weights the branches by their natural frequency.
type chance struct {
	sync.RWMutex
	parent   *decision
	player   string
	children []*decision
	hashes   []game.StateHash
	rewards  float64
	visits   float64
}

func newChance(parent *decision) *chance {
	return &chance{
		parent: parent,
		player: parent.player,
	}
}

func (c *chance) SelectOrExpand(state game.State) (Node, game.State, bool) {
	c.Lock()
	defer c.Unlock()

	selected := true
	child := c.selects(state.Hash())
	if child == nil { // Unexplored outcome
		child = newDecision(c, state)
		c.children = append(c.children, child)
		c.hashes = append(c.hashes, state.Hash())
		selected = false
	}
	child.applyLoss()
	return child, state, selected
}

func (c *chance) selects(expected game.StateHash) *decision {
	for i, h := range c.hashes {
		if h == expected {
			return c.children[i]
		}
	}
	return nil
}

func (c *chance) applyLoss() {
	c.Lock()
	defer c.Unlock()

	c.rewards += Loss
	c.visits++
}

func (c *chance) Backup(player string, score float64) Node {
	c.Lock()
	defer c.Unlock()

	c.rewards -= Loss // Reverse the virtual loss
	c.visits--
	c.rewards += computeReward(player, score, c.player)
	c.visits++
	return c.parent
}

func (c *chance) Visits() float64 {
	c.RLock()
	defer c.RUnlock()

	return c.visits
}

func (c *chance) stats() (string, float64, float64) {
	c.RLock()
	defer c.RUnlock()

	return c.player, c.rewards, c.visits
}
