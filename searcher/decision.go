package searcher

import (
	"math"
	"sync"

	"golang.org/x/exp/rand"

	"github.com/Dmi3yy/catanatron/game"
)

// decision is a node where one player chooses among legal moves.
type decision struct {
	sync.RWMutex
	parent     Node
	player     string
	unexplored []game.Move
	explored   []game.Move
	children   []Node
	rewards    float64
	visits     float64
}

func newDecision(parent Node, state game.State) *decision {
	moves := state.LegalMoves()
	// Shuffle so expansion order does not bias toward enumeration order
	rand.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})
	return &decision{
		parent:     parent,
		player:     state.Player(),
		unexplored: moves,
	}
}

func (d *decision) SelectOrExpand(state game.State) (Node, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		child, childState := d.expand(state)
		child.applyLoss()
		return child, childState, false
	}

	ith := d.pickChild()
	child := d.children[ith]
	move := d.explored[ith]
	child.applyLoss()
	return child, state.Play(move), true
}

func (d *decision) expand(state game.State) (Node, game.State) {
	move := d.unexplored[len(d.unexplored)-1]
	d.unexplored = d.unexplored[:len(d.unexplored)-1]
	d.explored = append(d.explored, move)

	childState := state.Play(move)
	var child Node
	if move.IsDeterministic() {
		child = newDecision(d, childState)
	} else {
		child = newChance(d)
	}
	d.children = append(d.children, child)
	return child, childState
}

// pickChild returns the index of the max-UCT child. Rewards tracked
// from a different player's perspective count against the child.
func (d *decision) pickChild() int {
	if d.visits == 0 {
		panic("node has children but no visits")
	}
	normalizer := CSquared * math.Log(d.visits)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		player, rewards, visits := child.stats()
		if player != "" && player != d.player {
			rewards = -rewards
		}
		score := ucb1(rewards, visits, normalizer)
		if score == math.Inf(1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) Backup(player string, score float64) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node carries a virtual loss
		d.reverseLoss()
	}
	d.rewards += computeReward(player, score, d.player)
	d.visits++
	return d.parent
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

func (d *decision) stats() (string, float64, float64) {
	d.RLock()
	defer d.RUnlock()

	return d.player, d.rewards, d.visits
}

// findBestMove picks the most visited child, the robust choice.
func (d *decision) findBestMove() game.Move {
	if len(d.children) == 0 {
		panic("node has no children")
	}
	bestIndex := 0
	maxVisits := d.children[0].Visits()
	for i, child := range d.children[1:] {
		if v := child.Visits(); v > maxVisits {
			maxVisits = v
			bestIndex = i + 1
		}
	}
	return d.explored[bestIndex]
}
