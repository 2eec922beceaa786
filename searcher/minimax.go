package searcher

import (
	"math"
	"sort"

	"github.com/Dmi3yy/catanatron/game"
)

// ChanceModel decides how a dice-roll transition is expanded during
// depth-limited search.
type ChanceModel int

const (
	// ExpectationModel expands all 11 sums weighted by the two-die
	// distribution. Exact but 11x the work per roll node.
	ExpectationModel ChanceModel = iota
	// SampleModel applies the roll once with a sampled outcome, a
	// cheap approximation.
	SampleModel
)

// WinValue dominates any heuristic leaf value.
const WinValue = 1000.0

// Minimax searches the move tree to a fixed ply depth. Seats other
// than the searcher are assumed adversarial (they minimize the
// searcher's value); dice rolls become chance nodes. With pruning on
// it is alpha-beta: the chosen move is provably the same, pruning
// only cuts nodes visited.
type Minimax struct {
	depth    int
	prune    bool
	order    bool
	chance   ChanceModel
	evaluate func(game.State, game.Color) float64
}

type MinimaxOption func(m *Minimax)

func WithPruning() MinimaxOption {
	return func(m *Minimax) { m.prune = true }
}

// WithMoveOrdering sorts children by static evaluation before
// recursing, improving cut rates under pruning.
func WithMoveOrdering() MinimaxOption {
	return func(m *Minimax) { m.order = true }
}

func WithChanceModel(model ChanceModel) MinimaxOption {
	return func(m *Minimax) { m.chance = model }
}

func WithLeafEvaluation(evaluate func(game.State, game.Color) float64) MinimaxOption {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func NewMinimax(depth int, options ...MinimaxOption) *Minimax {
	if depth < 1 {
		depth = 1
	}
	m := &Minimax{
		depth:    depth,
		chance:   ExpectationModel,
		evaluate: game.EvaluateFor,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// NewAlphaBeta is minimax with pruning and move ordering on.
func NewAlphaBeta(depth int, options ...MinimaxOption) *Minimax {
	m := NewMinimax(depth, options...)
	m.prune = true
	m.order = true
	return m
}

func (m *Minimax) FindMove(state game.State) game.Move {
	moves := state.LegalMoves()
	if len(moves) == 1 {
		return moves[0]
	}
	root := game.Color(state.Player())

	if m.order {
		moves = m.orderMoves(state, moves, true, root)
	}

	alpha, beta := math.Inf(-1), math.Inf(1)
	best := moves[0]
	bestValue := math.Inf(-1)
	for _, move := range moves {
		v := m.moveValue(state, move, m.depth-1, alpha, beta, root)
		if v > bestValue {
			best = move
			bestValue = v
		}
		if m.prune && v > alpha {
			alpha = v
		}
	}
	return best
}

// moveValue values one move from a state. An unforced roll is a
// chance node: under the expectation model it expands the 11 sums
// with the canonical probabilities and a full pruning window, so the
// expectation is exact.
func (m *Minimax) moveValue(state game.State, move game.Move, depth int, alpha, beta float64, root game.Color) float64 {
	if gm, ok := move.(*game.GameMove); ok && gm.Action == game.RollAction && gm.Forced == 0 && m.chance == ExpectationModel {
		expected := 0.0
		for sum := 2; sum <= 12; sum++ {
			forced := *gm
			forced.Forced = sum
			outcome := m.value(state.Play(&forced), depth, math.Inf(-1), math.Inf(1), root)
			expected += game.DiceProbability(sum) * outcome
		}
		return expected
	}
	return m.value(state.Play(move), depth, alpha, beta, root)
}

func (m *Minimax) value(state game.State, depth int, alpha, beta float64, root game.Color) float64 {
	if winner := state.Winner(); winner != "" {
		if winner == string(root) {
			return WinValue
		}
		return -WinValue
	}
	if depth <= 0 {
		return m.evaluate(state, root)
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return m.evaluate(state, root)
	}

	maximizing := state.Player() == string(root)
	if m.order {
		moves = m.orderMoves(state, moves, maximizing, root)
	}

	if maximizing {
		best := math.Inf(-1)
		for _, move := range moves {
			v := m.moveValue(state, move, depth-1, alpha, beta, root)
			if v > best {
				best = v
			}
			if m.prune {
				if best > alpha {
					alpha = best
				}
				if alpha >= beta {
					break
				}
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, move := range moves {
		v := m.moveValue(state, move, depth-1, alpha, beta, root)
		if v < best {
			best = v
		}
		if m.prune {
			if best < beta {
				beta = best
			}
			if alpha >= beta {
				break
			}
		}
	}
	return best
}

// orderMoves sorts children by static evaluation, best-first for the
// side to move. Chance moves keep their place by scoring the
// pre-move state.
func (m *Minimax) orderMoves(state game.State, moves []game.Move, maximizing bool, root game.Color) []game.Move {
	type scored struct {
		move  game.Move
		score float64
	}
	scoredMoves := make([]scored, len(moves))
	for i, move := range moves {
		s := m.evaluate(m.previewState(state, move), root)
		scoredMoves[i] = scored{move, s}
	}
	sort.SliceStable(scoredMoves, func(i, j int) bool {
		if maximizing {
			return scoredMoves[i].score > scoredMoves[j].score
		}
		return scoredMoves[i].score < scoredMoves[j].score
	})
	ordered := make([]game.Move, len(moves))
	for i, sm := range scoredMoves {
		ordered[i] = sm.move
	}
	return ordered
}

// previewState applies a move for ordering purposes; stochastic moves
// are not applied, to keep ordering deterministic.
func (m *Minimax) previewState(state game.State, move game.Move) game.State {
	if !move.IsDeterministic() {
		return state
	}
	return state.Play(move)
}
