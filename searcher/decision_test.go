package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dmi3yy/catanatron/game"
)

func TestDecisionExpansion(t *testing.T) {
	gs := startedGame(t, 2, 0)
	gs.Phase = game.MainPhase
	root := newDecision(nil, gs)

	require.Len(t, root.unexplored, len(gs.LegalMoves()), "Every legal move starts unexplored")
	require.Equal(t, gs.Player(), root.player, "The node records the player to act")

	child, childState, selected := root.SelectOrExpand(gs)

	require.False(t, selected, "An expandable node expands")
	require.NotEqual(t, root, child, "Expansion produces a new child")
	require.Len(t, root.explored, 1, "The expanded move is recorded")
	require.Len(t, root.children, 1, "The child is attached")
	require.NotEqual(t, gs.Hash(), childState.Hash(), "The child state reflects the move")

	_, _, visits := child.stats()
	require.Equal(t, 1.0, visits, "The new child carries a virtual loss")
}

func TestDecisionTerminal(t *testing.T) {
	gs := winInOne(t, 2)
	final := gs.Play(NewMinimax(1).FindMove(gs))
	node := newDecision(nil, final)

	child, state, selected := node.SelectOrExpand(final)

	require.Equal(t, node, child, "A terminal node returns itself")
	require.Equal(t, final, state, "A terminal node leaves the state alone")
	require.False(t, selected, "A terminal node selects nothing")
}

func TestBackupPropagation(t *testing.T) {
	gs := startedGame(t, 2, 0)
	gs.Phase = game.MainPhase
	root := newDecision(nil, gs)

	child, _, _ := root.SelectOrExpand(gs)
	backup(child, gs.Player(), Win)

	_, rewards, visits := child.stats()
	require.Equal(t, 1.0, visits, "The virtual loss is reversed before the real visit")
	player, _, _ := child.stats()
	if player == root.player {
		require.Equal(t, Win, rewards, "The reward lands from the node player's perspective")
	} else {
		require.Equal(t, Loss, rewards, "An opponent's win counts against the node")
	}

	require.Equal(t, 1.0, root.visits, "The root visit is counted")
	require.Equal(t, Win, root.rewards, "The root accumulates from its own perspective")
}

func TestConcurrentSimulations(t *testing.T) {
	gs := startedGame(t, 2, 0)
	agent := NewMCTS(8, WithEpisodes(200), WithCutoff(20))
	gs.Phase = game.MainPhase
	gs.Players[0].Hand = game.Hand{game.Wood: 2, game.Brick: 2, game.Sheep: 1, game.Wheat: 1}

	move := agent.FindMove(gs)

	_, err := gs.Apply(move)
	require.NoError(t, err, "A parallel search should return a legal move")

	total := 0.0
	for _, child := range agent.root.children {
		total += child.Visits()
	}
	require.Equal(t, agent.root.Visits(), total,
		"After the search every virtual loss is reversed and visits add up")
}
